package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/core/ports"
	"github.com/sakan/student-housing/internal/metrics"
)

// Entry persists a single record under one key.
type Entry[T any] struct {
	kv  ports.KeyValueStore
	key string
}

func NewEntry[T any](kv ports.KeyValueStore, key string) *Entry[T] {
	return &Entry[T]{kv: kv, key: key}
}

// Load returns the stored record and whether one exists.
func (e *Entry[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	raw, found, err := e.kv.Get(ctx, e.key)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(e.key, "read").Inc()
		return v, false, fmt.Errorf("read %s: %w", e.key, err)
	}
	if !found || len(raw) == 0 {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(e.key, "decode").Inc()
		return v, false, fmt.Errorf("%w: %s: %v", domain.ErrCorruptCollection, e.key, err)
	}
	return v, true, nil
}

func (e *Entry[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.key, err)
	}
	if err := e.kv.Set(ctx, e.key, raw); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(e.key, "write").Inc()
		return fmt.Errorf("write %s: %w", e.key, err)
	}
	metrics.StoreWritesTotal.WithLabelValues(e.key).Inc()
	return nil
}

// Clear removes the record. Clearing an absent record is not an error.
func (e *Entry[T]) Clear(ctx context.Context) error {
	if err := e.kv.Delete(ctx, e.key); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(e.key, "delete").Inc()
		return fmt.Errorf("delete %s: %w", e.key, err)
	}
	return nil
}
