package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/core/ports"
	"github.com/sakan/student-housing/internal/metrics"
)

// Collection persists an ordered sequence of records under one key. Every
// mutation reads the whole sequence, computes a new one and writes it back
// in a single Set, so a collection is never partially written.
//
// The mutex serialises read-modify-write cycles within the process only;
// writers in other processes sharing the store still race (last write wins).
type Collection[T any] struct {
	kv  ports.KeyValueStore
	key string
	mu  sync.Mutex
}

// NewCollection binds a collection to key in kv.
func NewCollection[T any](kv ports.KeyValueStore, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

// Key returns the store key this collection lives under.
func (c *Collection[T]) Key() string { return c.key }

// Load returns the stored records in insertion order. An absent key yields
// an empty, non-nil slice.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Update applies fn to the current records. fn returns the new sequence and
// whether anything changed; unchanged sequences are not written, so the
// stored bytes stay exactly as they were.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, changed := fn(items)
	if !changed {
		return nil
	}
	return c.save(ctx, next)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, found, err := c.kv.Get(ctx, c.key)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(c.key, "read").Inc()
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !found || len(raw) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(c.key, "decode").Inc()
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptCollection, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, raw); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(c.key, "write").Inc()
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	metrics.StoreWritesTotal.WithLabelValues(c.key).Inc()
	return nil
}
