package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goliatone/go-activity/adapters/zerologger"
	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/activity/console"
	"github.com/goliatone/go-activity/pkg/activityhub"
	"github.com/goliatone/go-activity/pkg/commands"
	"github.com/goliatone/go-activity/pkg/config"
	"github.com/goliatone/go-activity/pkg/render"
	"github.com/goliatone/go-activity/pkg/storage"
	i18n "github.com/goliatone/go-i18n"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

type globalFlags struct {
	configPath   string
	dsn          string
	translations string
	logLevel     string
	echo         bool
}

type app struct {
	module *activityhub.Module
	db     *bun.DB
}

func (a *app) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openApp(ctx context.Context, flags *globalFlags, stderr io.Writer) (*app, error) {
	var (
		cfg config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load(nil)
	}
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	lgr := zerologger.NewFromFormat(stderr, cfg.Logging.Format, cfg.Logging.Level)

	db, err := storage.OpenSQLite(flags.dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := storage.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	var translator i18n.Translator
	if flags.translations != "" {
		translator, err = render.LoadTranslator(flags.translations, cfg.Feed.DefaultLocale)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	var factories []activity.Factory
	if flags.echo {
		factories = append(factories, console.Factory(lgr))
	}

	module, err := activityhub.NewModule(activityhub.ModuleOptions{
		Config:     cfg,
		Storage:    storage.NewBunProviders(db),
		Logger:     lgr,
		Translator: translator,
		Factories:  factories,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &app{module: module, db: db}, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "activityctl",
		Short:         "Publish activity events and inspect user feeds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&flags.dsn, "db", "file:activity.db", "sqlite DSN for the feed store")
	pf.StringVar(&flags.translations, "translations", "", "path to a YAML translations file")
	pf.StringVar(&flags.logLevel, "log-level", "", "override logging.level")
	pf.BoolVar(&flags.echo, "echo", false, "log every published event")

	root.AddCommand(
		newPublishCmd(flags, stdout, stderr),
		newFeedCmd(flags, stdout, stderr),
		newExpireCmd(flags, stdout, stderr),
	)
	return root
}

func newPublishCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		evt       activity.Event
		params    []string
		msgParams []string
		meta      map[string]string
		priority  int
	)
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish one activity event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, flags, stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			evt.SubjectParams = toParams(params)
			evt.MessageParams = toParams(msgParams)
			evt.Priority = activity.Priority(priority)
			for k, v := range meta {
				if evt.Metadata == nil {
					evt.Metadata = make(map[string]any, len(meta))
				}
				evt.Metadata[k] = v
			}
			if err := a.module.Commands().PublishActivity.Execute(ctx, evt); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "published %s.%s for %s\n", evt.App, evt.Type, evt.AffectedUser)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&evt.App, "app", "", "application that emitted the event")
	f.StringVar(&evt.Type, "type", "", "activity type")
	f.StringVar(&evt.AffectedUser, "user", "", "affected user")
	f.StringVar(&evt.Author, "author", "", "user who caused the activity")
	f.StringVar(&evt.Subject, "subject", "", "subject template or translation key")
	f.StringSliceVar(&params, "param", nil, "subject parameter (repeatable)")
	f.StringVar(&evt.Message, "message", "", "message template or translation key")
	f.StringSliceVar(&msgParams, "message-param", nil, "message parameter (repeatable)")
	f.StringVar(&evt.Object.Type, "object-type", "", "object type")
	f.StringVar(&evt.Object.ID, "object-id", "", "object id")
	f.StringVar(&evt.Object.Name, "object-name", "", "object name")
	f.StringVar(&evt.Link, "link", "", "link to the object")
	f.StringToStringVar(&meta, "meta", nil, "metadata key=value pairs stored with the event")
	f.IntVar(&priority, "priority", int(activity.PriorityMedium), "priority (10..50)")
	return cmd
}

func newFeedCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		msg    commands.ListFeed
		since  time.Duration
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List a user's activity feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, flags, stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			if since > 0 {
				msg.Since = time.Now().UTC().Add(-since)
			}
			if err := a.module.Commands().ListFeed.Execute(ctx, &msg); err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(msg.Result.Items)
			}
			for _, item := range msg.Result.Items {
				fmt.Fprintf(stdout, "%s  %-10s %-14s %s\n",
					item.OccurredAt.Format(time.RFC3339), item.App, item.Type, item.Rendered)
			}
			fmt.Fprintf(stdout, "%d of %d\n", len(msg.Result.Items), msg.Result.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&msg.User, "user", "", "user whose feed to list")
	f.StringSliceVar(&msg.Types, "type", nil, "only these activity types")
	f.StringSliceVar(&msg.Apps, "app", nil, "only these apps")
	f.BoolVar(&msg.ExcludeOwn, "exclude-own", false, "hide activities the user caused")
	f.DurationVar(&since, "since", 0, "only activities newer than this")
	f.IntVar(&msg.Limit, "limit", 0, "page size")
	f.IntVar(&msg.Offset, "offset", 0, "page offset")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newExpireCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Delete feed entries past feed.retention",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, flags, stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			msg := &commands.ExpireFeed{}
			if err := a.module.Commands().ExpireFeed.Execute(ctx, msg); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "expired %d entries\n", msg.Removed)
			return nil
		},
	}
}

func toParams(in []string) []any {
	if len(in) == 0 {
		return nil
	}
	out := make([]any, 0, len(in))
	for _, p := range in {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
