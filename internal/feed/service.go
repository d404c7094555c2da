package feed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-activity/pkg/domain"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	"github.com/google/uuid"
)

// Query captures a feed request.
type Query struct {
	User   string
	Filter store.FeedFilter
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

// Page is one slice of a user's feed.
type Page struct {
	Items  []domain.ActivityRecord
	Total  int
	Limit  int
	Offset int
}

// HasMore reports whether further pages exist.
func (p Page) HasMore() bool {
	return p.Offset+len(p.Items) < p.Total
}

// Dependencies wires the repository and paging defaults into the service.
type Dependencies struct {
	Repository  store.ActivityRepository
	Logger      logger.Logger
	PageSize    int
	MaxPageSize int
	Retention   time.Duration
	Now         func() time.Time
}

// Service reads and maintains persisted activity feeds.
type Service struct {
	repo        store.ActivityRepository
	logger      logger.Logger
	pageSize    int
	maxPageSize int
	retention   time.Duration
	now         func() time.Time
}

var (
	errRepositoryRequired = errors.New("feed: repository is required")
	errUserRequired       = errors.New("feed: user is required")
)

const (
	defaultPageSize    = 25
	defaultMaxPageSize = 200
)

// NewService constructs the feed service.
func NewService(deps Dependencies) (*Service, error) {
	if deps.Repository == nil {
		return nil, errRepositoryRequired
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.PageSize <= 0 {
		deps.PageSize = defaultPageSize
	}
	if deps.MaxPageSize <= 0 {
		deps.MaxPageSize = defaultMaxPageSize
	}
	if deps.MaxPageSize < deps.PageSize {
		deps.MaxPageSize = deps.PageSize
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{
		repo:        deps.Repository,
		logger:      deps.Logger,
		pageSize:    deps.PageSize,
		maxPageSize: deps.MaxPageSize,
		retention:   deps.Retention,
		now:         deps.Now,
	}, nil
}

// List returns the user's feed newest first.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	user := strings.TrimSpace(q.User)
	if user == "" {
		return Page{}, errUserRequired
	}
	limit := q.Limit
	if limit <= 0 {
		limit = s.pageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	result, err := s.repo.ListByUser(ctx, user, q.Filter, store.ListOptions{
		Limit:  limit,
		Offset: offset,
		Since:  q.Since,
		Until:  q.Until,
	})
	if err != nil {
		return Page{}, err
	}
	return Page{
		Items:  result.Items,
		Total:  result.Total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// Get returns a single feed entry owned by the user. Entries of other users
// are reported as not found.
func (s *Service) Get(ctx context.Context, user string, id uuid.UUID) (*domain.ActivityRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.AffectedUser != strings.TrimSpace(user) {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

// Remove hides a feed entry from the user.
func (s *Service) Remove(ctx context.Context, user string, id uuid.UUID) error {
	if _, err := s.Get(ctx, user, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// Expire deletes entries older than the configured retention. It is a no-op
// when retention is disabled.
func (s *Service) Expire(ctx context.Context) (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-s.retention)
	removed, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("feed entries expired",
			logger.F("removed", removed),
			logger.F("cutoff", cutoff),
		)
	}
	return removed, nil
}
