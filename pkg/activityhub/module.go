// Package activityhub assembles the activity manager, built-in subscribers,
// reporters, feed, and commands behind a single module.
package activityhub

import (
	"context"
	"net/http"

	"github.com/goliatone/go-activity/internal/di"
	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/activity/feedsink"
	"github.com/goliatone/go-activity/pkg/commands"
	"github.com/goliatone/go-activity/pkg/config"
	"github.com/goliatone/go-activity/pkg/feed"
	"github.com/goliatone/go-activity/pkg/interfaces/broadcaster"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/goliatone/go-activity/pkg/render"
	"github.com/goliatone/go-activity/pkg/storage"
	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-users/pkg/types"
)

// ModuleOptions configure the activity module facade.
type ModuleOptions struct {
	Config       config.Config
	Storage      storage.Providers
	Logger       logger.Logger
	Translator   i18n.Translator
	Broadcaster  broadcaster.Broadcaster
	ActivitySink types.ActivitySink
	Reporter     activity.ErrorReporter
	Locale       feedsink.LocaleResolver
	Factories    []activity.Factory
}

// Module bundles the container and exposes high-level accessors.
type Module struct {
	container *di.Container
}

// NewModule assembles storage, reporters, the manager, feed, and commands.
func NewModule(opts ModuleOptions) (*Module, error) {
	container, err := di.New(di.Options{
		Config:       opts.Config,
		Storage:      opts.Storage,
		Logger:       opts.Logger,
		Translator:   opts.Translator,
		Broadcaster:  opts.Broadcaster,
		ActivitySink: opts.ActivitySink,
		Reporter:     opts.Reporter,
		Locale:       opts.Locale,
		Factories:    opts.Factories,
	})
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Manager returns the activity manager.
func (m *Module) Manager() *activity.Manager {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Manager
}

// Publish is shorthand for Manager().Publish.
func (m *Module) Publish(ctx context.Context, evt activity.Event) {
	if mgr := m.Manager(); mgr != nil {
		mgr.Publish(ctx, evt)
	}
}

// Feed returns the feed service, or nil when the feed is disabled.
func (m *Module) Feed() *feed.Service {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Feed
}

// Renderer returns the renderer used for feed entries.
func (m *Module) Renderer() *render.Renderer {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Renderer
}

// Commands returns the go-command registry.
func (m *Module) Commands() *commands.Registry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands
}

// MetricsHandler serves Prometheus metrics, or nil when metrics are disabled.
func (m *Module) MetricsHandler() http.Handler {
	if m == nil || m.container == nil || m.container.Metrics == nil {
		return nil
	}
	return m.container.Metrics.Handler()
}

// Config returns the effective module configuration.
func (m *Module) Config() config.Config {
	if m == nil || m.container == nil {
		return config.Config{}
	}
	return m.container.Config
}

// Container returns the internal DI container.
// This is exposed for advanced use cases like direct storage access.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}
