// Package storetest provides an in-memory Store for unit tests.
package storetest

import (
	"context"
	"sync"

	"github.com/hallmoor/binduty/internal/store"
)

// Memory is a thread-safe in-memory store.Store.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func New() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *Memory) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.data[key]
	if !ok {
		old = nil
	}
	next, err := fn(old)
	if err != nil {
		return err
	}
	stored := make([]byte, len(next))
	copy(stored, next)
	m.data[key] = stored
	return nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }
func (m *Memory) Close() error                   { return nil }

// Raw returns the stored bytes for key, for assertions.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	return val, ok
}
