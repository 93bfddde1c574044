package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection reads and writes one store key holding a JSON array.
type Collection[T any] struct {
	store Store
	key   string
}

func NewCollection[T any](s Store, key string) Collection[T] {
	return Collection[T]{store: s, key: key}
}

// Load returns the full collection; a missing key is an empty collection.
func (c Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

// Replace overwrites the collection wholesale.
func (c Collection[T]) Replace(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Set(ctx, c.key, raw)
}

// Mutate applies fn to the current collection under the store's optimistic
// read-modify-write. An error from fn aborts without writing.
func (c Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.store.Update(ctx, c.key, func(old []byte) ([]byte, error) {
		var items []T
		if old != nil {
			if err := json.Unmarshal(old, &items); err != nil {
				return nil, fmt.Errorf("decode %s: %w", c.key, err)
			}
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		return json.Marshal(next)
	})
}

// Object reads and writes one store key holding a single JSON value.
type Object[T any] struct {
	store Store
	key   string
}

func NewObject[T any](s Store, key string) Object[T] {
	return Object[T]{store: s, key: key}
}

// Load returns the value and whether the key existed.
func (o Object[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	raw, err := o.store.Get(ctx, o.key)
	if errors.Is(err, ErrKeyNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", o.key, err)
	}
	return v, true, nil
}

func (o Object[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", o.key, err)
	}
	return o.store.Set(ctx, o.key, raw)
}
