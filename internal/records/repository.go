// Package records provides typed repositories over the key-value store.
// Each collection is one JSON array under a fixed key; every mutation reads
// the whole array, changes it in memory and writes it back.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/store"
)

// Repository owns one ordered collection of T.
type Repository[T model.Record] struct {
	s   store.Store
	key string
}

// NewRepository returns a repository for the collection stored under key.
func NewRepository[T model.Record](s store.Store, key string) *Repository[T] {
	return &Repository[T]{s: s, key: key}
}

// Key returns the storage key of the collection.
func (r *Repository[T]) Key() string { return r.key }

// All returns the collection in insertion order. An absent key or a value
// that does not parse as a JSON array reads as empty.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	raw, ok, err := r.s.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.key, err)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Debug("treating unparsable collection as empty", "key", r.key, "err", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Filter returns the records matching pred, preserving order.
func (r *Repository[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Add appends rec to the collection.
func (r *Repository[T]) Add(ctx context.Context, rec T) error {
	items, err := r.All(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(items, rec))
}

// Remove drops every record whose id equals id. It reports whether anything
// was removed; a missing id leaves the stored value untouched.
func (r *Repository[T]) Remove(ctx context.Context, id int64) (bool, error) {
	items, err := r.All(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0:0]
	for _, it := range items {
		if it.RecordID() != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, r.save(ctx, kept)
}

// Update applies fn to the record with the given id in place.
func (r *Repository[T]) Update(ctx context.Context, id int64, fn func(*T)) (bool, error) {
	items, err := r.All(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].RecordID() == id {
			fn(&items[i])
			return true, r.save(ctx, items)
		}
	}
	return false, nil
}

// Clear deletes the whole collection.
func (r *Repository[T]) Clear(ctx context.Context) error {
	if err := r.s.Remove(ctx, r.key); err != nil {
		return fmt.Errorf("clearing %s: %w", r.key, err)
	}
	return nil
}

func (r *Repository[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.key, err)
	}
	if err := r.s.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("writing %s: %w", r.key, err)
	}
	return nil
}
