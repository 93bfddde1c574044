package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/notify"
)

// recordingSender counts sends per channel and fails the configured ones.
type recordingSender struct {
	mu            sync.Mutex
	whatsappCalls int
	smsCalls      int
	emailCalls    int
	failWhatsApp  bool
	failSMS       bool
	failEmail     bool
}

func (r *recordingSender) SendWhatsApp(ctx context.Context, number, recipientName, campaign string, params []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.whatsappCalls++
	if r.failWhatsApp {
		return errors.New("whatsapp down")
	}
	return nil
}

func (r *recordingSender) SendSMS(ctx context.Context, number, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.smsCalls++
	if r.failSMS {
		return errors.New("sms down")
	}
	return nil
}

func (r *recordingSender) SendEmail(ctx context.Context, address, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emailCalls++
	if r.failEmail {
		return errors.New("email down")
	}
	return nil
}

func recipient(contact models.Contact) notify.Recipient {
	return notify.Recipient{
		Name:    "Alice Smith",
		Contact: contact,
		Message: notify.Message{
			Campaign:        "bin_reminder",
			Params:          []string{"Alice Smith"},
			WhatsAppContent: "Sent template bin_reminder",
			SMSBody:         "Reminder: Alice, bin duty.",
			EmailSubject:    "Bin Duty Reminder",
			EmailHTML:       "<html></html>",
		},
	}
}

func TestDispatch_OnlyPopulatedChannelsAttempted(t *testing.T) {
	sender := &recordingSender{}
	d := notify.NewDispatcher(sender)

	details, status := d.Dispatch(context.Background(), []notify.Recipient{
		recipient(models.Contact{Email: "alice@example.com"}),
	})

	require.Equal(t, 0, sender.whatsappCalls)
	require.Equal(t, 0, sender.smsCalls)
	require.Equal(t, 1, sender.emailCalls)
	require.Len(t, details, 1)
	require.Equal(t, models.MethodEmail, details[0].Method)
	require.Equal(t, models.DeliverySent, details[0].Status)
	require.Equal(t, models.StatusCompleted, status)
}

func TestDispatch_DetailRowOrderIsStable(t *testing.T) {
	sender := &recordingSender{}
	d := notify.NewDispatcher(sender)

	details, _ := d.Dispatch(context.Background(), []notify.Recipient{
		recipient(models.Contact{WhatsApp: "+441234", SMS: "+441234", Email: "alice@example.com"}),
	})

	require.Len(t, details, 3)
	require.Equal(t, models.MethodWhatsApp, details[0].Method)
	require.Equal(t, models.MethodSMS, details[1].Method)
	require.Equal(t, models.MethodEmail, details[2].Method)
}

func TestDispatch_PartialWhenOneOfTwoChannelsFails(t *testing.T) {
	sender := &recordingSender{failSMS: true}
	d := notify.NewDispatcher(sender)

	details, status := d.Dispatch(context.Background(), []notify.Recipient{
		recipient(models.Contact{SMS: "+441234", Email: "alice@example.com"}),
	})

	require.Equal(t, models.StatusPartial, status)
	require.Equal(t, models.DeliveryFailed, details[0].Status)
	require.Equal(t, models.DeliverySent, details[1].Status)
}

func TestDispatch_FailedWhenAllChannelsFail(t *testing.T) {
	sender := &recordingSender{failWhatsApp: true, failSMS: true, failEmail: true}
	d := notify.NewDispatcher(sender)

	_, status := d.Dispatch(context.Background(), []notify.Recipient{
		recipient(models.Contact{WhatsApp: "+441234", SMS: "+441234", Email: "alice@example.com"}),
	})

	require.Equal(t, models.StatusFailed, status)
}

func TestDispatch_FailureDoesNotBlockOtherRecipients(t *testing.T) {
	sender := &recordingSender{failEmail: true}
	d := notify.NewDispatcher(sender)

	first := recipient(models.Contact{Email: "alice@example.com"})
	second := recipient(models.Contact{SMS: "+441234"})
	second.Name = "Bob Jones"

	details, status := d.Dispatch(context.Background(), []notify.Recipient{first, second})

	require.Equal(t, 1, sender.emailCalls)
	require.Equal(t, 1, sender.smsCalls)
	require.Len(t, details, 2)
	require.Equal(t, models.StatusPartial, status)
}

func TestDispatch_NoAttemptsIsCompleted(t *testing.T) {
	sender := &recordingSender{}
	d := notify.NewDispatcher(sender)

	details, status := d.Dispatch(context.Background(), []notify.Recipient{
		recipient(models.Contact{}),
	})

	require.Empty(t, details)
	require.Equal(t, models.StatusCompleted, status)
}

func TestDispatch_ContentPerChannel(t *testing.T) {
	sender := &recordingSender{}
	d := notify.NewDispatcher(sender)

	details, _ := d.Dispatch(context.Background(), []notify.Recipient{
		recipient(models.Contact{WhatsApp: "+441234", SMS: "+441234", Email: "alice@example.com"}),
	})

	require.Equal(t, "Sent template bin_reminder", details[0].Content)
	require.Equal(t, "Reminder: Alice, bin duty.", details[1].Content)
	require.Equal(t, "Subject: Bin Duty Reminder", details[2].Content)
}
