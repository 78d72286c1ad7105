// Package config loads runtime settings from FORMSTEP_* environment variables,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Prefix is prepended to every environment key.
const Prefix = "FORMSTEP_"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	// Storage
	Store      string `env:"STORE" envDefault:"file"`
	StoreDir   string `env:"STORE_DIR" envDefault:".formstep"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"formstep.db"`
	StorageKey string `env:"STORAGE_KEY" envDefault:"formData"`

	// Redis
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"REDIS_PREFIX" envDefault:"formstep"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"720h"`

	// HTTP front end
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`
	MaxSessions   int           `env:"MAX_SESSIONS" envDefault:"1000"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"` // 0 keeps idle sessions until evicted

	// Presentation
	LayoutFile   string `env:"LAYOUT_FILE"`
	TemplatesDir string `env:"TEMPLATES_DIR"`

	// Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console"` // console, json
	LogFile       string `env:"LOG_FILE"`                        // empty logs to stderr
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"10"`    // megabytes
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"28"` // days
}

// Load reads the given .env files (".env" when none are named) and parses the
// environment. Missing .env files are skipped; values already present in the
// environment win over file values. The result is not validated so callers
// can apply overrides first; call Validate before use.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if strings.TrimSpace(file) == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize canonicalises case and whitespace of enumerated values.
func (c *Config) Normalize() {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.LogLevel = strings.TrimSpace(c.LogLevel)
}

// Validate checks values that cannot be expressed through struct tags.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory, StoreFile, StoreSQLite, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q (want memory, file, sqlite or redis)", c.Store))
	}
	if c.Store == StoreFile && strings.TrimSpace(c.StoreDir) == "" {
		errs = append(errs, errors.New("store dir is required for the file store"))
	}
	if c.Store == StoreSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		errs = append(errs, errors.New("sqlite path is required for the sqlite store"))
	}
	if c.Store == StoreRedis && strings.TrimSpace(c.RedisAddr) == "" {
		errs = append(errs, errors.New("redis addr is required for the redis store"))
	}
	if c.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("redis db must be >= 0, got %d", c.RedisDB))
	}
	if c.RedisTTL < 0 {
		errs = append(errs, fmt.Errorf("redis ttl must be >= 0, got %s", c.RedisTTL))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("storage key must not be empty"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (want console or json)", c.LogFormat))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("max sessions must be >= 1, got %d", c.MaxSessions))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("session ttl must be >= 0, got %s", c.SessionTTL))
	}
	if c.LogMaxSize < 0 || c.LogMaxBackups < 0 || c.LogMaxAge < 0 {
		errs = append(errs, errors.New("log rotation limits must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
