// Package store provides the shared key-value document store used by every
// subsystem. Values are whole JSON documents written back in full; Update gives
// callers an optimistic read-modify-write so concurrent writers cannot silently
// drop each other's changes.
package store

import (
	"context"
	"errors"
)

// Well-known document keys.
const (
	KeyFlats            = "flats"
	KeyAdmins           = "admins"
	KeyIssues           = "issues"
	KeyLogs             = "logs"
	KeyHistory          = "communication_history"
	KeySettings         = "settings"
	KeyRemindersPaused  = "reminders_paused"
	KeyLastReminderDate = "last_reminder_date"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrTxConflict  = errors.New("concurrent modification, retries exhausted")
)

// Store is the document store contract. Update calls fn with the current value
// (nil when the key is absent) and persists the returned value; an error from fn
// aborts the write and is returned unchanged.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
	Ping(ctx context.Context) error
	Close() error
}
