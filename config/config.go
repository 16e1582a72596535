package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Clock      ClockConfig      `yaml:"clock"`
	Session    SessionConfig    `yaml:"session"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowOrigins    []string `yaml:"allow_origins"`

	CacheTTL time.Duration `yaml:"-"`
}

// ClockConfig controls the per-view clock.
type ClockConfig struct {
	TickMillis int    `yaml:"tick_millis"`
	Timezone   string `yaml:"timezone"`

	Interval time.Duration  `yaml:"-"`
	Location *time.Location `yaml:"-"`
}

// SessionConfig controls how long an unused view stays mounted.
type SessionConfig struct {
	IdleTTLSeconds int `yaml:"idle_ttl_seconds"`
	CleanupSeconds int `yaml:"cleanup_seconds"`

	IdleTTL         time.Duration `yaml:"-"`
	CleanupInterval time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
	MaxRetries int    `yaml:"max_retries"`
}

// Enabled reports whether both VAPID keys are present.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// LogConfig configures the zap logger. An empty Path logs to stdout only.
type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.applyDefaults(); err != nil {
		// Only a bad timezone can fail and the default one is always valid.
		panic(err)
	}
	return cfg
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if len(cfg.Server.AllowOrigins) == 0 {
		cfg.Server.AllowOrigins = []string{"*"}
	}

	if cfg.Clock.TickMillis <= 0 {
		cfg.Clock.TickMillis = 1000
	}
	cfg.Clock.Interval = time.Duration(cfg.Clock.TickMillis) * time.Millisecond
	if cfg.Clock.Timezone == "" {
		cfg.Clock.Timezone = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(cfg.Clock.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", cfg.Clock.Timezone, err)
	}
	cfg.Clock.Location = loc

	if cfg.Session.IdleTTLSeconds <= 0 {
		cfg.Session.IdleTTLSeconds = 600
	}
	if cfg.Session.CleanupSeconds <= 0 {
		cfg.Session.CleanupSeconds = 60
	}
	cfg.Session.IdleTTL = time.Duration(cfg.Session.IdleTTLSeconds) * time.Second
	cfg.Session.CleanupInterval = time.Duration(cfg.Session.CleanupSeconds) * time.Second

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "file::memory:?cache=shared"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
		if cfg.Database.Driver == "sqlite" {
			// A shared in-memory database locks whole tables per connection.
			cfg.Database.MaxOpenConns = 1
		}
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 2
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}
	if cfg.Push.MaxRetries <= 0 {
		cfg.Push.MaxRetries = 3
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSize <= 0 {
		cfg.Log.MaxSize = 50
	}
	return nil
}
