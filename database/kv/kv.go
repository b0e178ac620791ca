// Package kv is the key-value store behind the booking and listing lists.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for keys that were never set.
var ErrNotFound = errors.New("key not found")

// Store is a flat byte-valued key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// JSONList keeps a JSON array of T under a single key, newest first.
// Prepend is a read-modify-write without locking, so concurrent writers are
// last-writer-wins.
type JSONList[T any] struct {
	store Store
	key   string
}

func NewJSONList[T any](store Store, key string) *JSONList[T] {
	return &JSONList[T]{store: store, key: key}
}

func (l *JSONList[T]) Key() string {
	return l.key
}

// Load returns the stored items. A missing key is an empty list.
func (l *JSONList[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := l.store.Get(ctx, l.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Prepend stores item in front of the current items.
func (l *JSONList[T]) Prepend(ctx context.Context, item T) error {
	items, err := l.Load(ctx)
	if err != nil {
		return err
	}
	next := make([]T, 0, len(items)+1)
	next = append(next, item)
	next = append(next, items...)

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", l.key, err)
	}
	if err := l.store.Set(ctx, l.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", l.key, err)
	}
	return nil
}
