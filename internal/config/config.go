// Package config loads the pipeline configuration from an optional YAML file
// and the environment. Everything has a default except the database URL.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/owaisj/quranpipe/internal/scrape"
)

// Config is the full runtime configuration for every subcommand.
type Config struct {
	// DatabaseURL is the Postgres DSN. Required; no default is safe to guess.
	DatabaseURL string `mapstructure:"database_url"`

	// Translator is attributed to every persisted ayah.
	Translator string `mapstructure:"translator"`

	// StatusFile is where the scraper publishes and the monitor reads live
	// progress snapshots.
	StatusFile string `mapstructure:"status_file"`

	TotalSurahs int `mapstructure:"total_surahs"`

	Scrape  ScrapeConfig  `mapstructure:"scrape"`
	Monitor MonitorConfig `mapstructure:"monitor"`
}

// ScrapeConfig tunes the browser-driven extractor.
type ScrapeConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	SourceType string `mapstructure:"source_type"`
	Language   string `mapstructure:"language"`
	Headless   bool   `mapstructure:"headless"`

	NavigateTimeout  time.Duration `mapstructure:"navigate_timeout"`
	NavigateAttempts uint          `mapstructure:"navigate_attempts"`
	NavigateDelay    time.Duration `mapstructure:"navigate_delay"`

	ContentTimeout    time.Duration `mapstructure:"content_timeout"`
	ArabicWaitTimeout time.Duration `mapstructure:"arabic_wait_timeout"`

	ScrollTimeout  time.Duration `mapstructure:"scroll_timeout"`
	SettleInterval time.Duration `mapstructure:"settle_interval"`
	SettleChecks   int           `mapstructure:"settle_checks"`

	IntroDialogTimeout    time.Duration `mapstructure:"intro_dialog_timeout"`
	FootnoteDialogTimeout time.Duration `mapstructure:"footnote_dialog_timeout"`
}

// MonitorConfig tunes the live dashboard.
type MonitorConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ScraperConfig converts the scrape section into the extractor's own config.
func (c *Config) ScraperConfig() scrape.Config {
	return scrape.Config{
		BaseURL:               c.Scrape.BaseURL,
		SourceType:            c.Scrape.SourceType,
		Language:              c.Scrape.Language,
		NavigateTimeout:       c.Scrape.NavigateTimeout,
		NavigateAttempts:      c.Scrape.NavigateAttempts,
		NavigateDelay:         c.Scrape.NavigateDelay,
		ContentTimeout:        c.Scrape.ContentTimeout,
		ArabicWaitTimeout:     c.Scrape.ArabicWaitTimeout,
		ScrollTimeout:         c.Scrape.ScrollTimeout,
		SettleInterval:        c.Scrape.SettleInterval,
		SettleChecks:          c.Scrape.SettleChecks,
		IntroDialogTimeout:    c.Scrape.IntroDialogTimeout,
		FootnoteDialogTimeout: c.Scrape.FootnoteDialogTimeout,
	}
}

// ValidateDatabase fails when no DSN was provided; only commands that touch
// Postgres call it.
func (c *Config) ValidateDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is not set (set DATABASE_URL or database_url in the config file)")
	}
	return nil
}

// Load reads cfgFile (or the default search path when empty), layers the
// environment on top, and unmarshals into a Config.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("translator", defaults.Translator)
	v.SetDefault("status_file", defaults.StatusFile)
	v.SetDefault("total_surahs", defaults.TotalSurahs)
	v.SetDefault("scrape", map[string]any{
		"base_url":                defaults.Scrape.BaseURL,
		"source_type":             defaults.Scrape.SourceType,
		"language":                defaults.Scrape.Language,
		"headless":                defaults.Scrape.Headless,
		"navigate_timeout":        defaults.Scrape.NavigateTimeout.String(),
		"navigate_attempts":       defaults.Scrape.NavigateAttempts,
		"navigate_delay":          defaults.Scrape.NavigateDelay.String(),
		"content_timeout":         defaults.Scrape.ContentTimeout.String(),
		"arabic_wait_timeout":     defaults.Scrape.ArabicWaitTimeout.String(),
		"scroll_timeout":          defaults.Scrape.ScrollTimeout.String(),
		"settle_interval":         defaults.Scrape.SettleInterval.String(),
		"settle_checks":           defaults.Scrape.SettleChecks,
		"intro_dialog_timeout":    defaults.Scrape.IntroDialogTimeout.String(),
		"footnote_dialog_timeout": defaults.Scrape.FootnoteDialogTimeout.String(),
	})
	v.SetDefault("monitor", map[string]any{
		"poll_interval": defaults.Monitor.PollInterval.String(),
	})

	// Environment variables with QURANPIPE_ prefix; DATABASE_URL is also
	// honored bare since that is how deployment platforms expose it.
	v.SetEnvPrefix("QURANPIPE")
	v.AutomaticEnv()
	if err := v.BindEnv("database_url", "QURANPIPE_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.quranpipe")
	}

	// Config file is optional on the search path; an explicitly named file
	// must exist.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// fileConfig mirrors Config for the generated file. Durations are written in
// their string form ("30s", not nanosecond integers) so the file stays
// readable; Load parses either.
type fileConfig struct {
	DatabaseURL string            `yaml:"database_url"`
	Translator  string            `yaml:"translator"`
	StatusFile  string            `yaml:"status_file"`
	TotalSurahs int               `yaml:"total_surahs"`
	Scrape      fileScrapeConfig  `yaml:"scrape"`
	Monitor     fileMonitorConfig `yaml:"monitor"`
}

type fileScrapeConfig struct {
	BaseURL    string `yaml:"base_url"`
	SourceType string `yaml:"source_type"`
	Language   string `yaml:"language"`
	Headless   bool   `yaml:"headless"`

	NavigateTimeout  string `yaml:"navigate_timeout"`
	NavigateAttempts uint   `yaml:"navigate_attempts"`
	NavigateDelay    string `yaml:"navigate_delay"`

	ContentTimeout    string `yaml:"content_timeout"`
	ArabicWaitTimeout string `yaml:"arabic_wait_timeout"`

	ScrollTimeout  string `yaml:"scroll_timeout"`
	SettleInterval string `yaml:"settle_interval"`
	SettleChecks   int    `yaml:"settle_checks"`

	IntroDialogTimeout    string `yaml:"intro_dialog_timeout"`
	FootnoteDialogTimeout string `yaml:"footnote_dialog_timeout"`
}

type fileMonitorConfig struct {
	PollInterval string `yaml:"poll_interval"`
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	d := DefaultConfig()
	out := fileConfig{
		Translator:  d.Translator,
		StatusFile:  d.StatusFile,
		TotalSurahs: d.TotalSurahs,
		Scrape: fileScrapeConfig{
			BaseURL:               d.Scrape.BaseURL,
			SourceType:            d.Scrape.SourceType,
			Language:              d.Scrape.Language,
			Headless:              d.Scrape.Headless,
			NavigateTimeout:       d.Scrape.NavigateTimeout.String(),
			NavigateAttempts:      d.Scrape.NavigateAttempts,
			NavigateDelay:         d.Scrape.NavigateDelay.String(),
			ContentTimeout:        d.Scrape.ContentTimeout.String(),
			ArabicWaitTimeout:     d.Scrape.ArabicWaitTimeout.String(),
			ScrollTimeout:         d.Scrape.ScrollTimeout.String(),
			SettleInterval:        d.Scrape.SettleInterval.String(),
			SettleChecks:          d.Scrape.SettleChecks,
			IntroDialogTimeout:    d.Scrape.IntroDialogTimeout.String(),
			FootnoteDialogTimeout: d.Scrape.FootnoteDialogTimeout.String(),
		},
		Monitor: fileMonitorConfig{
			PollInterval: d.Monitor.PollInterval.String(),
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# quranpipe configuration
# database_url is usually left unset here and provided via DATABASE_URL

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
