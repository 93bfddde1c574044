// Package audit keeps the two append-only records of what the system did: the
// structured communication history and the plain-text action log. Both are
// most-recent-first; the action log is capped at 100 lines.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store"
)

// MaxLogEntries is the hard cap on the action log; oldest lines are dropped
// once it is exceeded.
const MaxLogEntries = 100

// SystemActor attributes an action to the system rather than an admin.
const SystemActor = "System"

const logTimeLayout = "2006-01-02 15:04:05 UTC"

type Trail struct {
	history store.Collection[models.CommunicationEntry]
	logs    store.Collection[string]
	now     func() time.Time
}

func NewTrail(s store.Store) *Trail {
	return &Trail{
		history: store.NewCollection[models.CommunicationEntry](s, store.KeyHistory),
		logs:    store.NewCollection[string](s, store.KeyLogs),
		now:     time.Now,
	}
}

// RecordCommunication prepends one entry to the communication history. Every
// call produces exactly one entry; prior entries are never touched.
func (t *Trail) RecordCommunication(ctx context.Context, eventType, subject string, details []models.CommunicationDetail, status string) error {
	entry := models.CommunicationEntry{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: t.now().UTC().Format(time.RFC3339),
		Status:    status,
		Details:   details,
	}
	return t.history.Mutate(ctx, func(entries []models.CommunicationEntry) ([]models.CommunicationEntry, error) {
		return append([]models.CommunicationEntry{entry}, entries...), nil
	})
}

// RecordAction prepends one formatted line to the action log and enforces the
// retention cap.
func (t *Trail) RecordAction(ctx context.Context, actor, description string) error {
	line := fmt.Sprintf("[%s] (%s) %s", t.now().UTC().Format(logTimeLayout), actor, description)
	return t.logs.Mutate(ctx, func(logs []string) ([]string, error) {
		logs = append([]string{line}, logs...)
		if len(logs) > MaxLogEntries {
			logs = logs[:MaxLogEntries]
		}
		return logs, nil
	})
}

func (t *Trail) History(ctx context.Context) ([]models.CommunicationEntry, error) {
	return t.history.Load(ctx)
}

// DeleteHistory removes entries by id and returns how many were removed.
func (t *Trail) DeleteHistory(ctx context.Context, ids []string) (int, error) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	removed := 0
	err := t.history.Mutate(ctx, func(entries []models.CommunicationEntry) ([]models.CommunicationEntry, error) {
		kept := entries[:0:0]
		for _, e := range entries {
			if _, ok := idSet[e.ID]; ok {
				continue
			}
			kept = append(kept, e)
		}
		// Assigned, not accumulated: the store re-runs fn after a write
		// conflict.
		removed = len(entries) - len(kept)
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (t *Trail) Logs(ctx context.Context) ([]string, error) {
	return t.logs.Load(ctx)
}

// DeleteLogs removes lines matching the given full contents and returns how
// many were removed.
func (t *Trail) DeleteLogs(ctx context.Context, lines []string) (int, error) {
	lineSet := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		lineSet[l] = struct{}{}
	}
	removed := 0
	err := t.logs.Mutate(ctx, func(logs []string) ([]string, error) {
		kept := logs[:0:0]
		for _, l := range logs {
			if _, ok := lineSet[l]; ok {
				continue
			}
			kept = append(kept, l)
		}
		removed = len(logs) - len(kept)
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
