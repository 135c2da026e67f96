package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Upstream UpstreamConfig
	Store    StoreConfig
	Redis    RedisConfig
	Session  SessionConfig
	Sync     SyncConfig
}

// UpstreamConfig contains parameters for the inventory backend REST API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
	// UseShelfAPI selects the remote shelf repository. When false, shelf data
	// is persisted in the local store instead of the backend.
	UseShelfAPI bool
}

// StoreConfig contains parameters for the embedded local store.
type StoreConfig struct {
	Path string
}

// RedisConfig contains Redis connection parameters. Redis is optional: when
// Host is empty the session scope falls back to an in-memory implementation.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SessionConfig controls the session-scoped identity storage.
type SessionConfig struct {
	TTL time.Duration
}

// SyncConfig contains product store synchronization parameters.
type SyncConfig struct {
	PageSize int
	// RefreshInterval enables the background refresh worker when > 0.
	// Zero keeps the store strictly event-driven.
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8090")
	cfg.Env = getEnv("ENV", "development")

	// Upstream backend
	cfg.Upstream = UpstreamConfig{
		BaseURL:     getEnv("UPSTREAM_BASE_URL", ""),
		UseShelfAPI: getEnvBool("USE_SHELF_API", false),
	}

	// Local store
	cfg.Store = StoreConfig{
		Path: getEnv("LOCAL_STORE_PATH", "stockdeck.db"),
	}

	// Redis (optional session-scope backend)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Durations
	var err error
	if cfg.Upstream.Timeout, err = parseDurationEnv("UPSTREAM_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	if cfg.Session.TTL, err = parseDurationEnv("SESSION_TTL", "12h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Sync.RefreshInterval, err = parseDurationEnv("REFRESH_INTERVAL", "0s"); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	cfg.Sync.PageSize = getEnvInt("SYNC_PAGE_SIZE", 20)
	if cfg.Sync.PageSize <= 0 {
		return nil, errors.New("SYNC_PAGE_SIZE must be positive")
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, errors.New("upstream configuration incomplete: ensure UPSTREAM_BASE_URL is set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvBool returns the value of an environment variable as a bool or a default if empty/invalid.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
