package events

// Topics carried by the outbox/Kafka pipeline.
const (
	TopicNotificationEmail = "hr.notification.email.v1"
)

// Event types stored on outbox rows.
const (
	TypeNotificationEmail = "notification.email"
)

// SummaryRow is one label/value pair in the email summary table.
type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EmailRequested is the payload published for every lifecycle
// notification. The consumer renders and delivers it.
type EmailRequested struct {
	To      string       `json:"to"`
	Subject string       `json:"subject"`
	Heading string       `json:"heading"`
	Message string       `json:"message"`
	Summary []SummaryRow `json:"summary,omitempty"`
}
