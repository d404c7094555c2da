package store

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record cannot be located.
var ErrNotFound = errors.New("store: not found")

// ListOptions capture pagination and filtering knobs common to repositories.
type ListOptions struct {
	Limit              int
	Offset             int
	Since              time.Time
	Until              time.Time
	IncludeSoftDeleted bool
}

// ListResult bundles records and totals.
type ListResult[T any] struct {
	Items []T
	Total int
}

// Repository defines base CRUD helpers reused by entity-specific interfaces.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, opts ListOptions) (ListResult[T], error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// FeedFilter narrows a user's activity feed.
type FeedFilter struct {
	Types      []string
	Apps       []string
	ObjectType string
	ObjectID   string
	// ExcludeAuthor hides activities the user caused themselves.
	ExcludeAuthor bool
}

// ActivityRepository persists rendered activity records.
type ActivityRepository interface {
	Repository[domain.ActivityRecord]
	// ListByUser returns the user's records newest first. Since/Until apply
	// to OccurredAt.
	ListByUser(ctx context.Context, user string, filter FeedFilter, opts ListOptions) (ListResult[domain.ActivityRecord], error)
	// DeleteBefore removes records that occurred before the cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}
