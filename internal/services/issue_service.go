package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/config"
	"github.com/hallmoor/binduty/internal/dto"
	"github.com/hallmoor/binduty/internal/messages"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/notify"
	"github.com/hallmoor/binduty/internal/store"
)

var ErrIssueNotFound = errors.New("issue not found")

// PublicActor attributes actions taken through the unauthenticated report
// form.
const PublicActor = "Public"

type IssueService struct {
	issues     store.Collection[models.Issue]
	trail      *audit.Trail
	dispatcher *notify.Dispatcher
	settings   *SettingsService
	cfg        *config.Config
}

func NewIssueService(s store.Store, trail *audit.Trail, dispatcher *notify.Dispatcher, settings *SettingsService, cfg *config.Config) *IssueService {
	return &IssueService{
		issues:     store.NewCollection[models.Issue](s, store.KeyIssues),
		trail:      trail,
		dispatcher: dispatcher,
		settings:   settings,
		cfg:        cfg,
	}
}

func (s *IssueService) List(ctx context.Context) ([]models.Issue, error) {
	return s.issues.Load(ctx)
}

// Report records a new issue and alerts the owner over whichever channels they
// have configured. Notification failures degrade into audit records; the
// report itself always succeeds once persisted.
func (s *IssueService) Report(ctx context.Context, req dto.ReportIssueRequest) (models.Issue, error) {
	if req.Name == "" || req.FlatNumber == "" || req.Description == "" {
		return models.Issue{}, ErrMissingFields
	}
	issue := models.Issue{
		ID:          uuid.NewString(),
		ReportedBy:  req.Name,
		FlatNumber:  req.FlatNumber,
		Description: req.Description,
		Status:      models.IssueStatusReported,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	err := s.issues.Mutate(ctx, func(issues []models.Issue) ([]models.Issue, error) {
		return append([]models.Issue{issue}, issues...), nil
	})
	if err != nil {
		return models.Issue{}, err
	}

	if err := s.notifyOwner(ctx, issue); err != nil {
		slog.Error("owner notification failed", "issue_id", issue.ID, "error", err)
	}

	desc := fmt.Sprintf("Issue Reported by %s: %s", issue.ReportedBy, messages.Truncate(issue.Description, 50))
	if err := s.trail.RecordAction(ctx, PublicActor, desc); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (s *IssueService) notifyOwner(ctx context.Context, issue models.Issue) error {
	settings, err := s.settings.Settings(ctx)
	if err != nil {
		return err
	}
	owner := models.Contact{
		WhatsApp: settings.OwnerWhatsApp(),
		SMS:      settings.OwnerSMS(),
		Email:    settings.OwnerEmail(),
	}
	issuesLink := messages.IssuesLink(settings)
	whatsappNote := fmt.Sprintf("New Issue Reported by %s, Flat %s: %s See it here: %s",
		issue.ReportedBy, issue.FlatNumber, messages.Truncate(issue.Description, 80), issuesLink)
	smsBody := fmt.Sprintf("New Issue Reported by %s, Flat %s. Desc: %s",
		issue.ReportedBy, issue.FlatNumber, issue.Description)

	recipient := notify.Recipient{
		Name:    settings.OwnerName(),
		Contact: owner,
		Message: notify.Message{
			Campaign:        s.cfg.AnnouncementCampaignName,
			Params:          []string{"New Issue from " + issue.ReportedBy, settings.OwnerName(), issue.Description},
			WhatsAppContent: whatsappNote,
			SMSBody:         smsBody,
			EmailSubject:    "New Maintenance Issue Reported",
			EmailHTML:       messages.OwnerIssueEmail(issue, settings),
		},
	}

	details, status := s.dispatcher.Dispatch(ctx, []notify.Recipient{recipient})
	if len(details) == 0 {
		return nil
	}
	return s.trail.RecordCommunication(ctx, models.EventIssueAlert, "New Maintenance Issue", details, status)
}

// UpdateStatus replaces the status field verbatim; any string is accepted.
func (s *IssueService) UpdateStatus(ctx context.Context, actor, id, status string) error {
	err := s.issues.Mutate(ctx, func(issues []models.Issue) ([]models.Issue, error) {
		for i := range issues {
			if issues[i].ID == id {
				issues[i].Status = status
				return issues, nil
			}
		}
		return nil, ErrIssueNotFound
	})
	if err != nil {
		return err
	}
	return s.trail.RecordAction(ctx, actor, fmt.Sprintf("Issue %s status updated to '%s'", id, status))
}

// Delete removes all issues matching the given ids and returns the count.
func (s *IssueService) Delete(ctx context.Context, actor string, ids []string) (int, error) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	removed := 0
	err := s.issues.Mutate(ctx, func(issues []models.Issue) ([]models.Issue, error) {
		kept := issues[:0:0]
		for _, issue := range issues {
			if _, ok := idSet[issue.ID]; ok {
				continue
			}
			kept = append(kept, issue)
		}
		// Assigned, not accumulated: the store re-runs fn after a write
		// conflict.
		removed = len(issues) - len(kept)
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	if err := s.trail.RecordAction(ctx, actor, fmt.Sprintf("Deleted %d issue(s)", removed)); err != nil {
		return 0, err
	}
	return removed, nil
}
