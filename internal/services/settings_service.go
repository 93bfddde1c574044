package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store"
)

// DefaultReminderTemplate is used when no reminder_template has been saved.
const DefaultReminderTemplate = "Reminder: Bin duty."

var ErrInvalidPausedFlag = errors.New("reminders_paused must be a boolean")

type SettingsService struct {
	settings     store.Object[models.Settings]
	paused       store.Object[bool]
	lastReminder store.Object[string]
	trail        *audit.Trail
}

func NewSettingsService(s store.Store, trail *audit.Trail) *SettingsService {
	return &SettingsService{
		settings:     store.NewObject[models.Settings](s, store.KeySettings),
		paused:       store.NewObject[bool](s, store.KeyRemindersPaused),
		lastReminder: store.NewObject[string](s, store.KeyLastReminderDate),
		trail:        trail,
	}
}

// Get returns the settings document with reminders_paused merged in, the way
// the web client expects it.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	settings, _, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = models.Settings{}
	}
	paused, err := s.Paused(ctx)
	if err != nil {
		return nil, err
	}
	settings["reminders_paused"] = paused
	return settings, nil
}

// Settings returns the raw settings document without the paused flag.
func (s *SettingsService) Settings(ctx context.Context) (models.Settings, error) {
	settings, _, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = models.Settings{}
	}
	return settings, nil
}

// Update replaces the settings document wholesale. reminders_paused rides in
// with the rest but is stored under its own key.
func (s *SettingsService) Update(ctx context.Context, actor string, settings models.Settings) (models.Settings, error) {
	if paused, ok := settings["reminders_paused"]; ok {
		flag, ok := paused.(bool)
		if !ok {
			return nil, ErrInvalidPausedFlag
		}
		delete(settings, "reminders_paused")
		if err := s.paused.Save(ctx, flag); err != nil {
			return nil, err
		}
	}
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := s.trail.RecordAction(ctx, actor, "Settings Updated: "+strings.Join(keys, ", ")); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) Paused(ctx context.Context) (bool, error) {
	paused, _, err := s.paused.Load(ctx)
	return paused, err
}

// LastReminderDate returns the ISO date of the last reminder run, or "N/A".
func (s *SettingsService) LastReminderDate(ctx context.Context) (string, error) {
	date, ok, err := s.lastReminder.Load(ctx)
	if err != nil {
		return "", err
	}
	if !ok || date == "" {
		return "N/A", nil
	}
	return date, nil
}

func (s *SettingsService) MarkReminderRun(ctx context.Context) error {
	return s.lastReminder.Save(ctx, time.Now().UTC().Format("2006-01-02"))
}
