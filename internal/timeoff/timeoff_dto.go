package timeoff

import (
	"time"

	timeofferrors "github.com/deke-r/senseHrm/internal/timeoff/errors"
)

const dateLayout = "2006-01-02"

type ApplyLeaveRequest struct {
	LeaveCategory string  `json:"leave_category" binding:"required"`
	LeaveType     string  `json:"leave_type" binding:"required"`
	HalfDay       string  `json:"half_day"`
	FromDate      string  `json:"from_date" binding:"required"`
	ToDate        string  `json:"to_date" binding:"required"`
	TotalDays     float64 `json:"total_days" binding:"required"`
	Note          string  `json:"note" binding:"required"`
}

type ApplyWFHRequest struct {
	FromDate  string  `json:"from_date" binding:"required"`
	ToDate    string  `json:"to_date" binding:"required"`
	TotalDays float64 `json:"total_days" binding:"required"`
	HalfType  string  `json:"half_type"`
	Note      string  `json:"note" binding:"required"`
}

type ApplyPartialDayRequest struct {
	Date string `json:"date" binding:"required"`
	Half string `json:"half" binding:"required,oneof='First Half' 'Second Half'"`
	Note string `json:"note" binding:"required"`
}

type CancelRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type UpdateStatusRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Reason string `json:"reason"`
}

// ApplyInput is the normalized payload handed to the service once the
// per-kind DTO has been bound and its dates parsed.
type ApplyInput struct {
	Kind Kind

	LeaveCategory string
	LeaveType     string
	HalfDay       string

	FromDate time.Time
	ToDate   time.Time

	HalfType string

	RequestDate time.Time
	Half        string

	TotalDays float64
	Note      string
}

func (r ApplyLeaveRequest) ToInput() (ApplyInput, error) {
	from, err := time.Parse(dateLayout, r.FromDate)
	if err != nil {
		return ApplyInput{}, timeofferrors.ErrInvalidDateRange
	}
	to, err := time.Parse(dateLayout, r.ToDate)
	if err != nil {
		return ApplyInput{}, timeofferrors.ErrInvalidDateRange
	}
	return ApplyInput{
		Kind:          KindLeave,
		LeaveCategory: r.LeaveCategory,
		LeaveType:     r.LeaveType,
		HalfDay:       r.HalfDay,
		FromDate:      from,
		ToDate:        to,
		TotalDays:     r.TotalDays,
		Note:          r.Note,
	}, nil
}

func (r ApplyWFHRequest) ToInput() (ApplyInput, error) {
	from, err := time.Parse(dateLayout, r.FromDate)
	if err != nil {
		return ApplyInput{}, timeofferrors.ErrInvalidDateRange
	}
	to, err := time.Parse(dateLayout, r.ToDate)
	if err != nil {
		return ApplyInput{}, timeofferrors.ErrInvalidDateRange
	}
	return ApplyInput{
		Kind:      KindWFH,
		FromDate:  from,
		ToDate:    to,
		HalfType:  r.HalfType,
		TotalDays: r.TotalDays,
		Note:      r.Note,
	}, nil
}

func (r ApplyPartialDayRequest) ToInput() (ApplyInput, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return ApplyInput{}, timeofferrors.ErrInvalidDateRange
	}
	return ApplyInput{
		Kind:        KindPartialDay,
		RequestDate: date,
		Half:        r.Half,
		TotalDays:   0.5,
		Note:        r.Note,
	}, nil
}

// HistoryEntry is one row of the caller's own unified request history.
type HistoryEntry struct {
	Category    string    `json:"category"`
	ID          uint      `json:"id"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Note        string    `json:"note"`
	ActionOn    time.Time `json:"actionOn"`
	RequestedBy string    `json:"requestedBy"`
	Reason      string    `json:"reason,omitempty"`
}

// QueueEntry is one row of the HR/admin adjudication queue.
type QueueEntry struct {
	ID            uint      `json:"id"`
	Type          string    `json:"type"`
	EmployeeName  string    `json:"employeeName"`
	EmployeeEmail string    `json:"employeeEmail"`
	Date          string    `json:"date"`
	TotalDays     float64   `json:"totalDays"`
	Status        string    `json:"status"`
	Note          string    `json:"note"`
	AppliedOn     string    `json:"appliedOn"`
	AppliedAt     time.Time `json:"-"`
	Reason        string    `json:"reason,omitempty"`
}
