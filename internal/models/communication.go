package models

// Delivery channels as recorded in communication history.
const (
	MethodWhatsApp = "WhatsApp"
	MethodSMS      = "SMS"
	MethodEmail    = "Email"
)

// Per-channel delivery outcomes.
const (
	DeliverySent   = "Sent"
	DeliveryFailed = "Failed"
)

// Aggregate outcomes for one communication event.
const (
	StatusCompleted = "Completed"
	StatusPartial   = "Partial"
	StatusFailed    = "Failed"
)

// Communication event types.
const (
	EventReminder     = "Reminder"
	EventAnnouncement = "Announcement"
	EventIssueAlert   = "Issue Notification"
)

// CommunicationDetail is one delivery attempt on one channel.
type CommunicationDetail struct {
	Recipient string `json:"recipient"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Content   string `json:"content"`
}

// CommunicationEntry is one notification event with all its delivery attempts.
type CommunicationEntry struct {
	ID        string                `json:"id"`
	Type      string                `json:"type"`
	Subject   string                `json:"subject"`
	Timestamp string                `json:"timestamp"`
	Status    string                `json:"status"`
	Details   []CommunicationDetail `json:"details"`
}
