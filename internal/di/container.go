package di

import (
	"reflect"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/activity/feedsink"
	"github.com/goliatone/go-activity/pkg/activity/realtime"
	"github.com/goliatone/go-activity/pkg/activity/usersink"
	"github.com/goliatone/go-activity/pkg/commands"
	"github.com/goliatone/go-activity/pkg/config"
	"github.com/goliatone/go-activity/pkg/feed"
	"github.com/goliatone/go-activity/pkg/interfaces/broadcaster"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/goliatone/go-activity/pkg/render"
	"github.com/goliatone/go-activity/pkg/reporting"
	"github.com/goliatone/go-activity/pkg/storage"
	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-users/pkg/types"
)

// Options configure the DI container.
type Options struct {
	Config      config.Config
	Storage     storage.Providers
	Logger      logger.Logger
	Translator  i18n.Translator
	Broadcaster broadcaster.Broadcaster
	// ActivitySink forwards every event to a go-users activity log.
	ActivitySink types.ActivitySink
	// Reporter receives failures in addition to the configured reporters.
	Reporter activity.ErrorReporter
	Locale   feedsink.LocaleResolver
	// Factories are registered after the built-in subscribers, in order.
	Factories []activity.Factory
}

// Container wires storage, reporters, the manager, feed, and commands.
type Container struct {
	Config    config.Config
	Storage   storage.Providers
	Manager   *activity.Manager
	Renderer  *render.Renderer
	Feed      *feed.Service
	Commands  *commands.Registry
	LogReport *reporting.LoggerReporter
	Metrics   *reporting.PrometheusReporter
}

func isZeroConfig(cfg config.Config) bool {
	return reflect.ValueOf(cfg).IsZero()
}

// New constructs the container using the supplied options.
func New(opts Options) (*Container, error) {
	cfg := opts.Config
	if isZeroConfig(cfg) {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	providers := opts.Storage
	if providers.Activities == nil {
		providers = storage.NewMemoryProviders()
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = &logger.Nop{}
	}

	c := &Container{
		Config:   cfg,
		Storage:  providers,
		Renderer: render.New(opts.Translator, cfg.Feed.DefaultLocale),
	}

	reporters := activity.MultiReporter{}
	if cfg.Reporting.LogFailures {
		c.LogReport = reporting.NewLoggerReporter(lgr.With(logger.F("component", "activity")), cfg.Reporting.LogRatePerSec)
		reporters = append(reporters, c.LogReport)
	}
	managerOpts := []activity.Option{
		activity.WithSubscriberTimeout(cfg.Manager.SubscriberTimeout),
	}
	if cfg.Reporting.MetricsEnabled {
		c.Metrics = reporting.NewPrometheusReporter(cfg.Reporting.MetricsNamespace)
		reporters = append(reporters, c.Metrics)
		managerOpts = append(managerOpts, activity.WithMetrics(c.Metrics))
	}
	if opts.Reporter != nil {
		reporters = append(reporters, opts.Reporter)
	}
	if len(reporters) > 0 {
		managerOpts = append(managerOpts, activity.WithReporter(reporters))
	}
	if cfg.Manager.LogPublishes {
		managerOpts = append(managerOpts, activity.WithLogger(lgr))
	}
	c.Manager = activity.New(managerOpts...)

	if cfg.Feed.Enabled {
		feedSvc, err := feed.New(feed.Dependencies{
			Repository:  providers.Activities,
			Logger:      lgr,
			PageSize:    cfg.Feed.PageSize,
			MaxPageSize: cfg.Feed.MaxPageSize,
			Retention:   cfg.Feed.Retention,
		})
		if err != nil {
			return nil, err
		}
		c.Feed = feedSvc
		c.Manager.Register(feedsink.Factory(providers.Activities, c.Renderer, opts.Locale))
	}
	if cfg.Realtime.Enabled && opts.Broadcaster != nil {
		c.Manager.Register(realtime.Factory(opts.Broadcaster, cfg.Realtime.TopicPrefix))
	}
	if opts.ActivitySink != nil {
		c.Manager.Register(usersink.Factory(opts.ActivitySink))
	}
	for _, factory := range opts.Factories {
		c.Manager.Register(factory)
	}

	cmdRegistry, err := commands.New(commands.Dependencies{
		Manager: c.Manager,
		Feed:    c.Feed,
		Logger:  lgr,
	})
	if err != nil {
		return nil, err
	}
	c.Commands = cmdRegistry

	return c, nil
}
