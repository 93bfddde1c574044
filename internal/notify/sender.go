// Package notify fans notification events out across WhatsApp, SMS and email
// and classifies the aggregate outcome. Channel failures are converted into
// audit detail rows and never reach the caller.
package notify

import "context"

// Sender is the external delivery capability. Implementations must return an
// error for a failed send and never panic across this boundary.
type Sender interface {
	SendWhatsApp(ctx context.Context, number, recipientName, campaign string, params []string) error
	SendSMS(ctx context.Context, number, body string) error
	SendEmail(ctx context.Context, address, subject, htmlBody string) error
}
