package config

import (
	"fmt"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the crownstore CLI.
//
// Fields:
//   - StoreBackend: "sqlite" (default) or "redis".
//   - DatabasePath: SQLite file; ":memory:" keeps nothing between runs.
//   - RedisAddr, RedisPrefix: Redis endpoint and key namespace.
//   - SessionTTL, RememberMeTTL: the two session windows.
//   - ResetOTPTTL: lifetime of a password reset code.
//   - Environment, LogFormat, LogLevel: logger selection.
//   - SendGridAPIKey, MailFrom, MailFromName: reset code email. An empty key
//     writes codes to the log instead.
type Config struct {
	StoreBackend string
	DatabasePath string
	RedisAddr    string
	RedisPrefix  string

	SessionTTL    time.Duration
	RememberMeTTL time.Duration
	ResetOTPTTL   time.Duration

	Environment string
	LogFormat   string
	LogLevel    string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreBackend = BackendSQLite
	c.DatabasePath = "crownstore.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "crown"

	c.SessionTTL = 7 * 24 * time.Hour
	c.RememberMeTTL = 30 * 24 * time.Hour
	c.ResetOTPTTL = 300 * time.Second

	c.Environment = "development"
	c.LogFormat = "slog"
	c.LogLevel = "info"

	c.MailFrom = "no-reply@crownstore.local"
	c.MailFromName = "Crown Store"
}

// Validate rejects settings the CLI cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.SessionTTL <= 0 || c.RememberMeTTL <= 0 || c.ResetOTPTTL <= 0 {
		return fmt.Errorf("durations must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. It panics on invalid input.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}
