package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client settings resolved from .env and the environment.
// Command-line flags override individual fields after Load returns.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	CatalogPath    string
	CatalogDSN     string
	RedisURL       string
	CacheTTL       time.Duration
	LogLevel       slog.Level
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load() (Config, error) {
	envLoaded := godotenv.Load() == nil

	timeout, err := Duration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	ttl, err := Duration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	level, err := Level("LOG_LEVEL", slog.LevelInfo)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:         strings.TrimRight(Get("API_URL", "http://localhost:8081"), "/"),
		RequestTimeout: timeout,
		CatalogPath:    Get("CATALOG_PATH", "data/brazilcapitals.json"),
		CatalogDSN:     os.Getenv("CATALOG_DSN"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       ttl,
		LogLevel:       level,
	}

	if !envLoaded {
		slog.Debug("no .env file found (using environment variables)")
	}

	return cfg, nil
}

// Get returns the value of key or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Duration parses key as a time.Duration.
func Duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, d)
	}

	return d, nil
}

// Level parses key as a slog level name (debug, info, warn, error).
func Level(key string, fallback slog.Level) (slog.Level, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}

	return level, nil
}
