// Package kv is the durable key-value adapter behind all persisted clinic
// state. Each top-level slot holds one JSON-serialized value; writes replace
// the whole slot (last-write-wins, no merge).
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// ErrNotFound reports a missing slot.
var ErrNotFound = errors.New("slot not found")

// Store is the raw slot interface implemented by each backend.
type Store interface {
	// Get returns the serialized value under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the slot atomically from the caller's perspective.
	Set(ctx context.Context, key, value string) error

	// Delete removes the slot; deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists slot keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

// Read deserializes the slot at key into T. A missing slot or a slot that
// fails to deserialize degrades to def; the failure is logged, never
// propagated.
func Read[T any](ctx context.Context, s Store, key string, def T) T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("kv read failed, using default", "key", key, "error", err)
		}
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		slog.Warn("kv slot corrupt, using default", "key", key, "error", err)
		return def
	}
	return v
}

// Write serializes v into the slot at key. Serialization and storage
// failures are logged and returned; callers in the core treat them as
// non-fatal per the degradation contract.
func Write[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Error("kv write failed to serialize", "key", key, "error", err)
		return err
	}
	if err := s.Set(ctx, key, string(raw)); err != nil {
		slog.Error("kv write failed", "key", key, "error", err)
		return err
	}
	return nil
}
