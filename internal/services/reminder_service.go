package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/messages"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/notify"
	"github.com/hallmoor/binduty/internal/rota"
)

var ErrRemindersPaused = errors.New("reminders are paused")

// ScheduledActor attributes reminder runs fired by the external scheduler.
const ScheduledActor = "System (Scheduled)"

type ReminderService struct {
	engine     *rota.Engine
	trail      *audit.Trail
	dispatcher *notify.Dispatcher
	settings   *SettingsService
	residents  *ResidentService
	cfg        *config.Config
}

func NewReminderService(engine *rota.Engine, trail *audit.Trail, dispatcher *notify.Dispatcher, settings *SettingsService, residents *ResidentService, cfg *config.Config) *ReminderService {
	return &ReminderService{
		engine:     engine,
		trail:      trail,
		dispatcher: dispatcher,
		settings:   settings,
		residents:  residents,
		cfg:        cfg,
	}
}

// Trigger sends the duty reminder to the resident at the head of the roster,
// records the communication, stamps the run date, logs the action and then
// advances the rotation. Scheduled runs honor the pause flag; manual runs
// bypass it.
func (s *ReminderService) Trigger(ctx context.Context, actor string, scheduled bool, customTemplate string) (string, error) {
	if scheduled {
		paused, err := s.settings.Paused(ctx)
		if err != nil {
			return "", err
		}
		if paused {
			if err := s.trail.RecordAction(ctx, audit.SystemActor, "Automatic reminder skipped (paused)."); err != nil {
				return "", err
			}
			return "", ErrRemindersPaused
		}
	}

	onDuty, err := s.engine.OnDuty(ctx)
	if err != nil {
		return "", err
	}

	settings, err := s.settings.Settings(ctx)
	if err != nil {
		return "", err
	}
	template := customTemplate
	if template == "" {
		template = settings.Str("reminder_template", DefaultReminderTemplate)
	}

	recipient := notify.Recipient{
		Name:    onDuty.Name,
		Contact: onDuty.Contact,
		Message: notify.Message{
			Campaign:        s.cfg.ReminderCampaignName,
			Params:          []string{onDuty.Name, settings.OwnerName(), settings.OwnerWhatsApp()},
			WhatsAppContent: "Sent template " + s.cfg.ReminderCampaignName,
			SMSBody:         messages.Text(template, onDuty, settings, ""),
			EmailSubject:    messages.DefaultReminderSubject,
			EmailHTML:       messages.HTML(template, onDuty, settings, ""),
		},
	}

	details, status := s.dispatcher.Dispatch(ctx, []notify.Recipient{recipient})
	if err := s.trail.RecordCommunication(ctx, models.EventReminder, "Weekly Bin Reminder", details, status); err != nil {
		return "", err
	}
	if err := s.settings.MarkReminderRun(ctx); err != nil {
		return "", err
	}
	if err := s.trail.RecordAction(ctx, actor, "Reminder Sent to "+onDuty.Name); err != nil {
		return "", err
	}
	if _, err := s.engine.Advance(ctx); err != nil && !errors.Is(err, rota.ErrNotEnoughResidents) {
		slog.Error("rotation after reminder failed", "error", err)
	}
	return onDuty.Name, nil
}

// Announce fans a broadcast out to the selected residents and returns how many
// were addressed.
func (s *ReminderService) Announce(ctx context.Context, actor, subject, message string, residentIDs []string) (int, error) {
	if subject == "" || message == "" {
		return 0, ErrMissingFields
	}
	flats, err := s.residents.List(ctx)
	if err != nil {
		return 0, err
	}
	settings, err := s.settings.Settings(ctx)
	if err != nil {
		return 0, err
	}

	idSet := make(map[string]struct{}, len(residentIDs))
	for _, id := range residentIDs {
		idSet[id] = struct{}{}
	}

	var recipients []notify.Recipient
	for _, r := range flats {
		if _, ok := idSet[r.ID]; !ok {
			continue
		}
		recipients = append(recipients, notify.Recipient{
			Name:    r.Name,
			Contact: r.Contact,
			Message: notify.Message{
				Campaign:        s.cfg.AnnouncementCampaignName,
				Params:          []string{subject, r.Name, message},
				WhatsAppContent: "Sent template " + s.cfg.AnnouncementCampaignName,
				SMSBody:         messages.Text(message, r, settings, subject),
				EmailSubject:    subject,
				EmailHTML:       messages.HTML(message, r, settings, subject),
			},
		})
	}

	details, status := s.dispatcher.Dispatch(ctx, recipients)
	if err := s.trail.RecordCommunication(ctx, models.EventAnnouncement, subject, details, status); err != nil {
		return 0, err
	}
	desc := fmt.Sprintf("Announcement '%s' sent to %d resident(s)", subject, len(recipients))
	if err := s.trail.RecordAction(ctx, actor, desc); err != nil {
		return 0, err
	}
	return len(recipients), nil
}
