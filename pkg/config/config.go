package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	"gopkg.in/yaml.v3"
)

// Config captures module-level configuration knobs. Feature packages
// (manager, feed, realtime, reporting) pull from these nested structs.
type Config struct {
	Manager   ManagerConfig   `mapstructure:"manager" json:"manager" yaml:"manager"`
	Feed      FeedConfig      `mapstructure:"feed" json:"feed" yaml:"feed"`
	Realtime  RealtimeConfig  `mapstructure:"realtime" json:"realtime" yaml:"realtime"`
	Reporting ReportingConfig `mapstructure:"reporting" json:"reporting" yaml:"reporting"`
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging" yaml:"logging"`
}

// ManagerConfig tunes the publish fan-out.
type ManagerConfig struct {
	// SubscriberTimeout bounds each Receive call. Zero disables the guard.
	SubscriberTimeout time.Duration `mapstructure:"subscriber_timeout" json:"subscriber_timeout" yaml:"subscriber_timeout"`
	LogPublishes      bool          `mapstructure:"log_publishes" json:"log_publishes" yaml:"log_publishes"`
}

// FeedConfig enables the persisted per-user feed.
type FeedConfig struct {
	Enabled       bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	DefaultLocale string `mapstructure:"default_locale" json:"default_locale" yaml:"default_locale"`
	PageSize      int    `mapstructure:"page_size" json:"page_size" yaml:"page_size"`
	MaxPageSize   int    `mapstructure:"max_page_size" json:"max_page_size" yaml:"max_page_size"`
	// Retention drops feed entries older than this on Expire. Zero keeps
	// everything.
	Retention time.Duration `mapstructure:"retention" json:"retention" yaml:"retention"`
}

// RealtimeConfig controls optional broadcaster integration.
type RealtimeConfig struct {
	Enabled     bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	TopicPrefix string `mapstructure:"topic_prefix" json:"topic_prefix" yaml:"topic_prefix"`
}

// ReportingConfig selects failure reporters.
type ReportingConfig struct {
	LogFailures      bool   `mapstructure:"log_failures" json:"log_failures" yaml:"log_failures"`
	LogRatePerSec    int    `mapstructure:"log_rate_per_sec" json:"log_rate_per_sec" yaml:"log_rate_per_sec"`
	MetricsEnabled   bool   `mapstructure:"metrics_enabled" json:"metrics_enabled" yaml:"metrics_enabled"`
	MetricsNamespace string `mapstructure:"metrics_namespace" json:"metrics_namespace" yaml:"metrics_namespace"`
}

// LoggingConfig picks the log level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Manager: ManagerConfig{
			LogPublishes: true,
		},
		Feed: FeedConfig{
			Enabled:       true,
			DefaultLocale: "en",
			PageSize:      25,
			MaxPageSize:   200,
		},
		Realtime: RealtimeConfig{
			TopicPrefix: "activity",
		},
		Reporting: ReportingConfig{
			LogFailures:      true,
			LogRatePerSec:    10,
			MetricsNamespace: "activity",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Manager.SubscriberTimeout < 0 {
		return errors.New("manager.subscriber_timeout must be >= 0")
	}
	if c.Feed.DefaultLocale == "" {
		return errors.New("feed.default_locale is required")
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("feed.page_size must be > 0")
	}
	if c.Feed.MaxPageSize < c.Feed.PageSize {
		return fmt.Errorf("feed.max_page_size must be >= feed.page_size")
	}
	if c.Feed.Retention < 0 {
		return fmt.Errorf("feed.retention must be >= 0")
	}
	if c.Reporting.LogRatePerSec < 0 {
		return fmt.Errorf("reporting.log_rate_per_sec must be >= 0")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// When cfgx.Build yields a zero value the input is decoded by a lightweight
// fallback over Defaults.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile reads a YAML file and loads it over Defaults.
func LoadFile(path string, opts ...LoadOption) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return Load(&cfg, opts...)
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Feed.DefaultLocale == "" {
		c.Feed.DefaultLocale = defaults.Feed.DefaultLocale
	}
	if c.Feed.PageSize == 0 {
		c.Feed.PageSize = defaults.Feed.PageSize
	}
	if c.Feed.MaxPageSize == 0 {
		c.Feed.MaxPageSize = defaults.Feed.MaxPageSize
	}
	if c.Feed.MaxPageSize < c.Feed.PageSize {
		c.Feed.MaxPageSize = c.Feed.PageSize
	}
	if c.Realtime.TopicPrefix == "" {
		c.Realtime.TopicPrefix = defaults.Realtime.TopicPrefix
	}
	if c.Reporting.MetricsNamespace == "" {
		c.Reporting.MetricsNamespace = defaults.Reporting.MetricsNamespace
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		*cfg = Defaults()
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		} else {
			*cfg = Defaults()
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

// decodeMap overlays the map onto Defaults so absent booleans keep their
// default value.
func decodeMap(input map[string]any, cfg *Config) error {
	*cfg = Defaults()
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
