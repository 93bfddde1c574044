package notify

import (
	"context"
	"log/slog"
)

// MockSender logs every send and always succeeds. It is the default sender so
// the system runs end to end without provider credentials.
type MockSender struct{}

func NewMockSender() *MockSender { return &MockSender{} }

func (m *MockSender) SendWhatsApp(ctx context.Context, number, recipientName, campaign string, params []string) error {
	slog.Info("mock whatsapp send", "to", number, "recipient", recipientName, "campaign", campaign, "params", params)
	return nil
}

func (m *MockSender) SendSMS(ctx context.Context, number, body string) error {
	slog.Info("mock sms send", "to", number, "body", body)
	return nil
}

func (m *MockSender) SendEmail(ctx context.Context, address, subject, htmlBody string) error {
	slog.Info("mock email send", "to", address, "subject", subject)
	return nil
}
