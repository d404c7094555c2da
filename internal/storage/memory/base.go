package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	"github.com/google/uuid"
)

type baseMemoryRepo[T any] struct {
	mu      sync.RWMutex
	records map[uuid.UUID]T
	extract func(*T) *domain.RecordMeta
}

func newBaseMemoryRepo[T any](extract func(*T) *domain.RecordMeta) baseMemoryRepo[T] {
	return baseMemoryRepo[T]{
		records: make(map[uuid.UUID]T),
		extract: extract,
	}
}

func (r *baseMemoryRepo[T]) create(ctx context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := r.extract(record)
	base.EnsureID()
	now := time.Now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	r.records[base.ID] = *record
	return nil
}

func (r *baseMemoryRepo[T]) getByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	base := r.extract(&record)
	if !includeDeleted && !base.DeletedAt.IsZero() {
		return nil, store.ErrNotFound
	}
	copy := record
	return &copy, nil
}

// filter returns live records accepted by keep, unordered.
func (r *baseMemoryRepo[T]) filter(includeDeleted bool, keep func(*T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []T
	for _, record := range r.records {
		base := r.extract(&record)
		if !includeDeleted && !base.DeletedAt.IsZero() {
			continue
		}
		if keep != nil && !keep(&record) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func (r *baseMemoryRepo[T]) list(ctx context.Context, opts store.ListOptions) (store.ListResult[T], error) {
	filtered := r.filter(opts.IncludeSoftDeleted, func(record *T) bool {
		base := r.extract(record)
		if !opts.Since.IsZero() && base.CreatedAt.Before(opts.Since) {
			return false
		}
		if !opts.Until.IsZero() && base.CreatedAt.After(opts.Until) {
			return false
		}
		return true
	})

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := r.extract(&filtered[i]), r.extract(&filtered[j])
		if a.CreatedAt.Equal(b.CreatedAt) {
			return idLess(a.ID, b.ID)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return paginate(filtered, opts), nil
}

func (r *baseMemoryRepo[T]) softDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return store.ErrNotFound
	}
	base := r.extract(&record)
	if base.DeletedAt.IsZero() {
		base.DeletedAt = time.Now().UTC()
	}
	r.records[id] = record
	return nil
}

func (r *baseMemoryRepo[T]) deleteWhere(match func(*T) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, record := range r.records {
		if match(&record) {
			delete(r.records, id)
			removed++
		}
	}
	return removed
}

func paginate[T any](items []T, opts store.ListOptions) store.ListResult[T] {
	total := len(items)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := total
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return store.ListResult[T]{
		Items: items[start:end],
		Total: total,
	}
}

// idLess breaks timestamp ties so pages stay stable across calls.
func idLess(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
