package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	"github.com/google/uuid"
)

// ActivityRepository keeps activity records in memory.
type ActivityRepository struct {
	base baseMemoryRepo[domain.ActivityRecord]
}

var _ store.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{
		base: newBaseMemoryRepo(func(a *domain.ActivityRecord) *domain.RecordMeta { return &a.RecordMeta }),
	}
}

func (r *ActivityRepository) Create(ctx context.Context, record *domain.ActivityRecord) error {
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now().UTC()
	}
	return r.base.create(ctx, record)
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActivityRecord, error) {
	return r.base.getByID(ctx, id, false)
}

func (r *ActivityRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.ActivityRecord], error) {
	return r.base.list(ctx, opts)
}

func (r *ActivityRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.base.softDelete(ctx, id)
}

func (r *ActivityRepository) ListByUser(ctx context.Context, user string, filter store.FeedFilter, opts store.ListOptions) (store.ListResult[domain.ActivityRecord], error) {
	items := r.base.filter(opts.IncludeSoftDeleted, func(rec *domain.ActivityRecord) bool {
		if rec.AffectedUser != user {
			return false
		}
		if !opts.Since.IsZero() && rec.OccurredAt.Before(opts.Since) {
			return false
		}
		if !opts.Until.IsZero() && rec.OccurredAt.After(opts.Until) {
			return false
		}
		return matchesFilter(rec, user, filter)
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].OccurredAt.Equal(items[j].OccurredAt) {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return idLess(items[i].ID, items[j].ID)
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	return paginate(items, opts), nil
}

func (r *ActivityRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if cutoff.IsZero() {
		return 0, nil
	}
	return r.base.deleteWhere(func(rec *domain.ActivityRecord) bool {
		return rec.OccurredAt.Before(cutoff)
	}), nil
}

func matchesFilter(rec *domain.ActivityRecord, user string, filter store.FeedFilter) bool {
	if len(filter.Types) > 0 && !slices.Contains(filter.Types, rec.Type) {
		return false
	}
	if len(filter.Apps) > 0 && !slices.Contains(filter.Apps, rec.App) {
		return false
	}
	if filter.ObjectType != "" && rec.ObjectType != filter.ObjectType {
		return false
	}
	if filter.ObjectID != "" && rec.ObjectID != filter.ObjectID {
		return false
	}
	if filter.ExcludeAuthor && rec.Author == user {
		return false
	}
	return true
}
