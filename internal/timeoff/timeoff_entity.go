package timeoff

import (
	"time"

	timeofferrors "github.com/deke-r/senseHrm/internal/timeoff/errors"
)

// Kind discriminates the three request tables. It is an enum at every
// boundary; caller-supplied type strings are parsed once in ParseKind and
// never used to select a table directly.
type Kind string

const (
	KindLeave      Kind = "leave"
	KindWFH        Kind = "wfh"
	KindPartialDay Kind = "partial_day"
)

// ParseKind maps the wire-level type labels to a Kind.
func ParseKind(label string) (Kind, error) {
	switch label {
	case "Leave":
		return KindLeave, nil
	case "Work From Home":
		return KindWFH, nil
	case "Partial Day":
		return KindPartialDay, nil
	default:
		return "", timeofferrors.ErrUnknownKind
	}
}

// Title is the human label used in notification subjects, e.g.
// "Leave Request approved".
func (k Kind) Title() string {
	switch k {
	case KindLeave:
		return "Leave"
	case KindWFH:
		return "WFH"
	case KindPartialDay:
		return "Partial Day"
	}
	return string(k)
}

// Category is the label used in history rows and cancel payloads.
func (k Kind) Category() string {
	switch k {
	case KindLeave:
		return "Leave"
	case KindWFH:
		return "Work From Home"
	case KindPartialDay:
		return "Partial Day"
	}
	return string(k)
}

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	HalfFirst  = "First Half"
	HalfSecond = "Second Half"
)

// Request is the unified view over the three kind tables. Kind-specific
// columns are zero for the other kinds.
type Request struct {
	ID     uint
	UserID uint
	Kind   Kind

	// Leave only.
	LeaveCategory string
	LeaveType     string
	HalfDay       string

	// Leave and WFH.
	FromDate time.Time
	ToDate   time.Time

	// WFH only.
	HalfType string

	// Partial day only.
	RequestDate time.Time
	Half        string

	TotalDays float64
	Note      string
	Status    string

	CancellationReason *string
	RejectionReason    *string

	CreatedAt time.Time
}

// ResolutionReason returns whichever reason the request carries, the way
// the single overloaded column used to read.
func (r *Request) ResolutionReason() string {
	if r.CancellationReason != nil {
		return *r.CancellationReason
	}
	if r.RejectionReason != nil {
		return *r.RejectionReason
	}
	return ""
}
