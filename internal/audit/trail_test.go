package audit_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hallmoor/binduty/internal/audit"
	"github.com/hallmoor/binduty/internal/models"
	"github.com/hallmoor/binduty/internal/store/storetest"
)

func TestRecordAction_PrependsNewestFirst(t *testing.T) {
	trail := audit.NewTrail(storetest.New())
	ctx := context.Background()

	require.NoError(t, trail.RecordAction(ctx, "a@example.com", "first"))
	require.NoError(t, trail.RecordAction(ctx, "b@example.com", "second"))

	logs, err := trail.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Contains(t, logs[0], "second")
	require.Contains(t, logs[1], "first")
}

func TestRecordAction_LineFormat(t *testing.T) {
	trail := audit.NewTrail(storetest.New())
	ctx := context.Background()

	require.NoError(t, trail.RecordAction(ctx, "jane@example.com", "Resident Added: Bob"))

	logs, err := trail.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} UTC\] \(jane@example\.com\) Resident Added: Bob$`, logs[0])
}

func TestRecordAction_CapEvictsOldest(t *testing.T) {
	trail := audit.NewTrail(storetest.New())
	ctx := context.Background()

	for i := 0; i < audit.MaxLogEntries+25; i++ {
		require.NoError(t, trail.RecordAction(ctx, audit.SystemActor, fmt.Sprintf("entry %03d", i)))
	}

	logs, err := trail.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, audit.MaxLogEntries)
	// Newest entry at the front, oldest surviving entry at the back.
	require.True(t, strings.HasSuffix(logs[0], "entry 124"))
	require.True(t, strings.HasSuffix(logs[len(logs)-1], "entry 025"))
}

func TestRecordCommunication_PrependsAndKeepsPriorEntries(t *testing.T) {
	trail := audit.NewTrail(storetest.New())
	ctx := context.Background()

	first := []models.CommunicationDetail{
		{Recipient: "Alice", Method: models.MethodEmail, Status: models.DeliverySent, Content: "Subject: Hi"},
	}
	require.NoError(t, trail.RecordCommunication(ctx, models.EventReminder, "Weekly Bin Reminder", first, models.StatusCompleted))
	require.NoError(t, trail.RecordCommunication(ctx, models.EventAnnouncement, "Water outage", nil, models.StatusCompleted))

	history, err := trail.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.EventAnnouncement, history[0].Type)
	require.Equal(t, models.EventReminder, history[1].Type)
	require.Equal(t, first, history[1].Details)
	require.NotEmpty(t, history[0].ID)
	require.NotEqual(t, history[0].ID, history[1].ID)
}

func TestDeleteHistory_RemovesByID(t *testing.T) {
	trail := audit.NewTrail(storetest.New())
	ctx := context.Background()

	require.NoError(t, trail.RecordCommunication(ctx, models.EventReminder, "one", nil, models.StatusCompleted))
	require.NoError(t, trail.RecordCommunication(ctx, models.EventReminder, "two", nil, models.StatusCompleted))

	history, err := trail.History(ctx)
	require.NoError(t, err)

	removed, err := trail.DeleteHistory(ctx, []string{history[0].ID, "no-such-id"})
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	remaining, err := trail.History(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "one", remaining[0].Subject)
}

func TestDeleteLogs_RemovesByFullContent(t *testing.T) {
	trail := audit.NewTrail(storetest.New())
	ctx := context.Background()

	require.NoError(t, trail.RecordAction(ctx, audit.SystemActor, "keep me"))
	require.NoError(t, trail.RecordAction(ctx, audit.SystemActor, "drop me"))

	logs, err := trail.Logs(ctx)
	require.NoError(t, err)

	var target string
	for _, l := range logs {
		if strings.Contains(l, "drop me") {
			target = l
		}
	}
	require.NotEmpty(t, target)

	removed, err := trail.DeleteLogs(ctx, []string{target})
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	remaining, err := trail.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Contains(t, remaining[0], "keep me")
}

// retryingStore re-invokes the mutate fn once before committing, the way the
// redis backend does after losing a write race.
type retryingStore struct {
	*storetest.Memory
}

func (s *retryingStore) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	old, _ := s.Raw(key)
	if _, err := fn(old); err != nil {
		return err
	}
	return s.Memory.Update(ctx, key, fn)
}

func TestDeleteHistory_CountStableAcrossRetriedWrite(t *testing.T) {
	trail := audit.NewTrail(&retryingStore{Memory: storetest.New()})
	ctx := context.Background()

	require.NoError(t, trail.RecordCommunication(ctx, models.EventReminder, "one", nil, models.StatusCompleted))
	require.NoError(t, trail.RecordCommunication(ctx, models.EventReminder, "two", nil, models.StatusCompleted))

	history, err := trail.History(ctx)
	require.NoError(t, err)

	removed, err := trail.DeleteHistory(ctx, []string{history[0].ID})
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	remaining, err := trail.History(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestDeleteLogs_CountStableAcrossRetriedWrite(t *testing.T) {
	trail := audit.NewTrail(&retryingStore{Memory: storetest.New()})
	ctx := context.Background()

	require.NoError(t, trail.RecordAction(ctx, audit.SystemActor, "keep me"))
	require.NoError(t, trail.RecordAction(ctx, audit.SystemActor, "drop me"))

	logs, err := trail.Logs(ctx)
	require.NoError(t, err)

	removed, err := trail.DeleteLogs(ctx, []string{logs[0]})
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	remaining, err := trail.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Contains(t, remaining[0], "keep me")
}
