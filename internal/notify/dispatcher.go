package notify

import (
	"context"
	"sync"

	"github.com/hallmoor/binduty/internal/models"
)

// Message carries the per-channel payloads for one recipient. WhatsApp sends a
// provider-side template, so WhatsAppContent is only the note recorded in the
// audit trail.
type Message struct {
	Campaign        string
	Params          []string
	WhatsAppContent string
	SMSBody         string
	EmailSubject    string
	EmailHTML       string
}

// Recipient is one fan-out target; channels are attempted for every populated
// contact field.
type Recipient struct {
	Name    string
	Contact models.Contact
	Message Message
}

type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

type attempt struct {
	recipient string
	method    string
	content   string
	send      func(ctx context.Context) error
}

// Dispatch attempts every populated channel for every recipient. Channels are
// independent: one failure never blocks the rest. All attempts complete before
// the results are returned, and detail rows keep a stable WhatsApp/SMS/Email
// order per recipient regardless of completion order. The aggregate status is
// Completed when every attempt succeeded (or nothing was attempted), Failed
// when every attempt failed, and Partial otherwise.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []Recipient) ([]models.CommunicationDetail, string) {
	var attempts []attempt
	for _, r := range recipients {
		r := r
		if r.Contact.WhatsApp != "" {
			attempts = append(attempts, attempt{
				recipient: r.Name,
				method:    models.MethodWhatsApp,
				content:   r.Message.WhatsAppContent,
				send: func(ctx context.Context) error {
					return d.sender.SendWhatsApp(ctx, r.Contact.WhatsApp, r.Name, r.Message.Campaign, r.Message.Params)
				},
			})
		}
		if r.Contact.SMS != "" {
			attempts = append(attempts, attempt{
				recipient: r.Name,
				method:    models.MethodSMS,
				content:   r.Message.SMSBody,
				send: func(ctx context.Context) error {
					return d.sender.SendSMS(ctx, r.Contact.SMS, r.Message.SMSBody)
				},
			})
		}
		if r.Contact.Email != "" {
			attempts = append(attempts, attempt{
				recipient: r.Name,
				method:    models.MethodEmail,
				content:   "Subject: " + r.Message.EmailSubject,
				send: func(ctx context.Context) error {
					return d.sender.SendEmail(ctx, r.Contact.Email, r.Message.EmailSubject, r.Message.EmailHTML)
				},
			})
		}
	}

	details := make([]models.CommunicationDetail, len(attempts))
	var wg sync.WaitGroup
	for i, a := range attempts {
		i, a := i, a
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := models.DeliverySent
			if err := a.send(ctx); err != nil {
				status = models.DeliveryFailed
			}
			details[i] = models.CommunicationDetail{
				Recipient: a.recipient,
				Method:    a.method,
				Status:    status,
				Content:   a.content,
			}
		}()
	}
	wg.Wait()

	return details, Aggregate(details)
}

// Aggregate classifies a set of delivery outcomes.
func Aggregate(details []models.CommunicationDetail) string {
	sent, failed := 0, 0
	for _, d := range details {
		if d.Status == models.DeliverySent {
			sent++
		} else {
			failed++
		}
	}
	switch {
	case failed == 0:
		return models.StatusCompleted
	case sent == 0:
		return models.StatusFailed
	default:
		return models.StatusPartial
	}
}
