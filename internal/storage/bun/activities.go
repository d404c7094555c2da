package bunrepo

import (
	"context"
	"time"

	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ActivityRepository stores activity records through go-repository-bun.
type ActivityRepository struct {
	base baseRepository[domain.ActivityRecord]
}

var _ store.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *bun.DB) *ActivityRepository {
	handlers := repository.ModelHandlers[*domain.ActivityRecord]{
		NewRecord:          func() *domain.ActivityRecord { return &domain.ActivityRecord{} },
		GetID:              func(a *domain.ActivityRecord) uuid.UUID { return a.ID },
		SetID:              func(a *domain.ActivityRecord, id uuid.UUID) { a.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(a *domain.ActivityRecord) string { return a.ID.String() },
	}
	return &ActivityRepository{
		base: newBaseRepository[domain.ActivityRecord](db, handlers, func(a *domain.ActivityRecord) *domain.RecordMeta { return &a.RecordMeta }),
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
	return r.base.list(ctx,
		withTimeRange("created_at", opts),
		withPage(opts),
		func(q *bun.SelectQuery) *bun.SelectQuery { return q.Order("created_at ASC", "id ASC") },
	)
}

func (r *ActivityRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.base.softDelete(ctx, id)
}

func (r *ActivityRepository) ListByUser(ctx context.Context, user string, filter store.FeedFilter, opts store.ListOptions) (store.ListResult[domain.ActivityRecord], error) {
	return r.base.list(ctx,
		withFeedFilter(user, filter),
		withTimeRange("occurred_at", opts),
		withPage(opts),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("occurred_at DESC", "created_at DESC", "id ASC")
		},
	)
}

func (r *ActivityRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if cutoff.IsZero() {
		return 0, nil
	}
	res, err := r.base.db.NewDelete().
		Model((*domain.ActivityRecord)(nil)).
		Where("occurred_at < ?", cutoff).
		ForceDelete().
		Exec(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
