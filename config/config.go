// Package config loads the bot's settings from defaults, an optional YAML
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Log levels accepted by LogLevel.
const (
	LogLevelInfo  = "info"
	LogLevelError = "error"
)

// Config is the full application configuration.
type Config struct {
	Telegram        TelegramConfig `mapstructure:"telegram"`
	Database        DatabaseConfig `mapstructure:"database"`
	HTTP            HTTPConfig     `mapstructure:"http"`
	Activity        ActivityConfig `mapstructure:"activity"`
	ShutdownTimeout time.Duration  `mapstructure:"shutdown_timeout"`
	LogLevel        string         `mapstructure:"log_level"`
}

// TelegramConfig configures the bot transport.
type TelegramConfig struct {
	Token         string `mapstructure:"token"`
	WebhookURL    string `mapstructure:"webhook_url"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// DatabaseConfig configures the SQLite datastore.
type DatabaseConfig struct {
	Path  string `mapstructure:"path"`
	Debug bool   `mapstructure:"debug"`
}

// HTTPConfig configures the health and webhook server.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// ActivityConfig configures the in-memory activity feed.
type ActivityConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// envBindings maps config keys to the environment variables overriding them.
var envBindings = map[string]string{
	"telegram.token":          "TELEGRAM_BOT_TOKEN",
	"telegram.webhook_url":    "WEBHOOK_URL",
	"telegram.webhook_secret": "WEBHOOK_SECRET",
	"database.path":           "DB_PATH",
	"database.debug":          "DB_DEBUG",
	"http.port":               "HTTP_PORT",
	"activity.capacity":       "ACTIVITY_CAPACITY",
	"shutdown_timeout":        "SHUTDOWN_TIMEOUT",
	"log_level":               "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "tasks.db")
	v.SetDefault("database.debug", false)
	v.SetDefault("http.port", 3000)
	v.SetDefault("activity.capacity", 100)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("log_level", LogLevelInfo)
}

// Load reads configuration. path may be empty, in which case only defaults
// and environment variables are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings needed to serve the bot.
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.Token == "" {
		errs = append(errs, errors.New("telegram token is required (TELEGRAM_BOT_TOKEN)"))
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid http port %d", c.HTTP.Port))
	}
	if c.Telegram.WebhookURL != "" {
		if u, err := url.Parse(c.Telegram.WebhookURL); err != nil || u.Scheme != "https" || u.Host == "" {
			errs = append(errs, fmt.Errorf("webhook url must be an absolute https url, got %q", c.Telegram.WebhookURL))
		}
		if c.Telegram.WebhookSecret == "" {
			errs = append(errs, errors.New("webhook secret is required when a webhook url is set (WEBHOOK_SECRET)"))
		}
	}
	if c.LogLevel != LogLevelInfo && c.LogLevel != LogLevelError {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database path is required"))
	}

	return errors.Join(errs...)
}
