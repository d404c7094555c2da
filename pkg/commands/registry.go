package commands

import (
	internalcommands "github.com/goliatone/go-activity/internal/commands"
	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/feed"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	command "github.com/goliatone/go-command"
)

// Re-export request types so consumers need not import internal packages.
type (
	ListFeed        = internalcommands.ListFeed
	RemoveFeedEntry = internalcommands.RemoveFeedEntry
	ExpireFeed      = internalcommands.ExpireFeed
)

// Registry exposes go-command compatible handlers backed by the module services.
type Registry struct {
	Catalog         *internalcommands.Catalog
	PublishActivity command.Commander[activity.Event]
	ListFeed        command.Commander[*ListFeed]
	RemoveFeedEntry command.Commander[RemoveFeedEntry]
	ExpireFeed      command.Commander[*ExpireFeed]
}

// Dependencies mirror the internal command dependencies but keep them public.
// Feed may be nil when the feed is disabled.
type Dependencies struct {
	Manager *activity.Manager
	Feed    *feed.Service
	Logger  logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	internalDeps := internalcommands.Dependencies{
		Logger: deps.Logger,
	}
	if deps.Manager != nil {
		internalDeps.Publisher = deps.Manager
	}
	if deps.Feed != nil {
		internalDeps.Feed = deps.Feed
	}
	catalog, err := internalcommands.NewCatalog(internalDeps)
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:         catalog,
		PublishActivity: catalog.PublishActivity,
		ListFeed:        catalog.ListFeed,
		RemoveFeedEntry: catalog.RemoveFeedEntry,
		ExpireFeed:      catalog.ExpireFeed,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.PublishActivity,
		r.ListFeed,
		r.RemoveFeedEntry,
		r.ExpireFeed,
	}
}
