package notification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deke-r/senseHrm/internal/events"
	"github.com/deke-r/senseHrm/internal/notification"
)

func TestRenderHTMLIncludesSummaryRows(t *testing.T) {
	html, err := notification.RenderHTML(events.EmailRequested{
		Heading: "Leave Request Submitted",
		Message: "Hi Asha, your Leave request has been submitted and is pending approval.",
		Summary: []events.SummaryRow{
			{Label: "Request Type", Value: "Leave"},
			{Label: "Date(s)", Value: "10-01-2025 to 12-01-2025"},
			{Label: "Total Days", Value: "3 day(s)"},
		},
	})

	assert.NoError(t, err)
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "Leave Request Submitted")
	assert.Contains(t, html, "Request Type")
	assert.Contains(t, html, "10-01-2025 to 12-01-2025")
	assert.Contains(t, html, "3 day(s)")
}

func TestRenderHTMLWithoutSummaryOmitsTable(t *testing.T) {
	html, err := notification.RenderHTML(events.EmailRequested{
		Heading: "Reminder",
		Message: "Please complete your timesheet.",
	})

	assert.NoError(t, err)
	assert.NotContains(t, html, "<table")
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	html, err := notification.RenderHTML(events.EmailRequested{
		Heading: "Note",
		Message: `<script>alert("x")</script>`,
	})

	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
