package timeoff

import (
	"strconv"
	"time"

	"github.com/deke-r/senseHrm/internal/events"
)

const (
	labelLayout     = "02 Jan 2006"
	appliedOnLayout = "02 Jan 2006 03:04 PM"
	summaryLayout   = "02-01-2006"
)

// dateLabel renders the history date column: single dates collapse, ranges
// join with " - ", and a half-day designator is appended in parentheses.
func dateLabel(req *Request) string {
	var label string

	switch req.Kind {
	case KindPartialDay:
		label = req.RequestDate.Format(labelLayout)
		if req.Half != "" {
			label += " (" + req.Half + ")"
		}
	default:
		label = req.FromDate.Format(labelLayout)
		if !req.ToDate.Equal(req.FromDate) {
			label += " - " + req.ToDate.Format(labelLayout)
		}
		if half := halfOf(req); half != "" {
			label += " (" + half + ")"
		}
	}
	return label
}

// summaryDates renders the notification-table date column (DD-MM-YYYY).
func summaryDates(req *Request) string {
	if req.Kind == KindPartialDay {
		return req.RequestDate.Format(summaryLayout)
	}
	if req.ToDate.Equal(req.FromDate) {
		return req.FromDate.Format(summaryLayout)
	}
	return req.FromDate.Format(summaryLayout) + " to " + req.ToDate.Format(summaryLayout)
}

func halfOf(req *Request) string {
	switch req.Kind {
	case KindLeave:
		return req.HalfDay
	case KindWFH:
		return req.HalfType
	case KindPartialDay:
		return req.Half
	}
	return ""
}

// typeLabel is the classification column of a history row: the leave
// category for leaves, fixed labels for the other kinds.
func typeLabel(req *Request) string {
	switch req.Kind {
	case KindLeave:
		return req.LeaveCategory
	case KindWFH:
		return "WFH Request"
	case KindPartialDay:
		return "Partial Day (" + req.Half + ")"
	}
	return string(req.Kind)
}

func totalDaysLabel(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64) + " day(s)"
}

// requestSummary is the key/value table attached to every lifecycle email.
func requestSummary(req *Request) []events.SummaryRow {
	rows := []events.SummaryRow{
		{Label: "Request Type", Value: req.Kind.Category()},
	}
	if req.Kind == KindLeave {
		rows = append(rows,
			events.SummaryRow{Label: "Category", Value: req.LeaveCategory},
			events.SummaryRow{Label: "Type", Value: req.LeaveType},
		)
	}
	if half := halfOf(req); half != "" && req.Kind != KindLeave {
		rows = append(rows, events.SummaryRow{Label: "Half", Value: half})
	}
	rows = append(rows,
		events.SummaryRow{Label: "Date(s)", Value: summaryDates(req)},
		events.SummaryRow{Label: "Total Days", Value: totalDaysLabel(req.TotalDays)},
		events.SummaryRow{Label: "Note", Value: req.Note},
		events.SummaryRow{Label: "Status", Value: req.Status},
	)
	return rows
}

func appliedOn(t time.Time) string {
	return t.Format(appliedOnLayout)
}
