// Package feed exposes per-user activity feeds built from persisted events.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-activity/internal/feed"
	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	"github.com/google/uuid"
)

// Re-export commonly used types so callers don't depend on the internal package.
type (
	Query = feed.Query
	Page  = feed.Page
)

// Service exposes feed queries to consumers.
type Service struct {
	internal *feed.Service
}

// Dependencies wires the repository and paging knobs.
type Dependencies struct {
	Repository  store.ActivityRepository
	Logger      logger.Logger
	PageSize    int
	MaxPageSize int
	Retention   time.Duration
}

var errServiceNotInitialised = errors.New("feed: service not initialised")

// New constructs the façade.
func New(deps Dependencies) (*Service, error) {
	internalSvc, err := feed.NewService(feed.Dependencies{
		Repository:  deps.Repository,
		Logger:      deps.Logger,
		PageSize:    deps.PageSize,
		MaxPageSize: deps.MaxPageSize,
		Retention:   deps.Retention,
	})
	if err != nil {
		return nil, err
	}
	return &Service{internal: internalSvc}, nil
}

// List returns one page of the user's feed, newest first.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	if s == nil || s.internal == nil {
		return Page{}, errServiceNotInitialised
	}
	return s.internal.List(ctx, q)
}

// Get returns one entry owned by the user.
func (s *Service) Get(ctx context.Context, user string, id uuid.UUID) (*domain.ActivityRecord, error) {
	if s == nil || s.internal == nil {
		return nil, errServiceNotInitialised
	}
	return s.internal.Get(ctx, user, id)
}

// Remove hides an entry from the user's feed.
func (s *Service) Remove(ctx context.Context, user string, id uuid.UUID) error {
	if s == nil || s.internal == nil {
		return errServiceNotInitialised
	}
	return s.internal.Remove(ctx, user, id)
}

// Expire drops entries past the retention window.
func (s *Service) Expire(ctx context.Context) (int, error) {
	if s == nil || s.internal == nil {
		return 0, errServiceNotInitialised
	}
	return s.internal.Expire(ctx)
}
