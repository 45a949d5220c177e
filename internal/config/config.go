// Package config loads listings settings from the environment and keeps the
// saved-search file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL     string        // LISTINGS_DATABASE_URL (required by commands that touch the database)
	DefaultDistance float64       // LISTINGS_DEFAULT_DISTANCE (miles, default 25)
	SlowQuery       time.Duration // LISTINGS_SLOW_QUERY (default 500ms; 0 = never warn)
	SearchesFile    string        // LISTINGS_SEARCHES_FILE (default ~/.config/listings/searches.toml)
	LogLevel        slog.Level    // LISTINGS_LOG_LEVEL (debug, info, warn, error; default info)
	NATSURL         string        // LISTINGS_NATS_URL (empty = events disabled)
	Export          ExportConfig
}

// ExportConfig selects where export snapshots go. Each destination is enabled
// by its first field being set.
type ExportConfig struct {
	Interval   time.Duration // LISTINGS_EXPORT_INTERVAL (default 1h)
	S3Bucket   string        // LISTINGS_EXPORT_S3_BUCKET
	S3Endpoint string        // LISTINGS_EXPORT_S3_ENDPOINT (MinIO etc.)
	S3Region   string        // LISTINGS_EXPORT_S3_REGION (default us-east-1)
	S3Key      string        // LISTINGS_EXPORT_S3_KEY (default listings/export.jsonl; {date} and {timestamp} expand per upload)
	GitRepo    string        // LISTINGS_EXPORT_GIT_REPO (path to a local clone)
	GitFile    string        // LISTINGS_EXPORT_GIT_FILE (default listings.jsonl)
	GitBranch  string        // LISTINGS_EXPORT_GIT_BRANCH (default main)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:  os.Getenv("LISTINGS_DATABASE_URL"),
		SearchesFile: os.Getenv("LISTINGS_SEARCHES_FILE"),
		NATSURL:      os.Getenv("LISTINGS_NATS_URL"),
		Export: ExportConfig{
			S3Bucket:   os.Getenv("LISTINGS_EXPORT_S3_BUCKET"),
			S3Endpoint: os.Getenv("LISTINGS_EXPORT_S3_ENDPOINT"),
			S3Region:   envOrDefault("LISTINGS_EXPORT_S3_REGION", "us-east-1"),
			S3Key:      envOrDefault("LISTINGS_EXPORT_S3_KEY", "listings/export.jsonl"),
			GitRepo:    os.Getenv("LISTINGS_EXPORT_GIT_REPO"),
			GitFile:    envOrDefault("LISTINGS_EXPORT_GIT_FILE", "listings.jsonl"),
			GitBranch:  envOrDefault("LISTINGS_EXPORT_GIT_BRANCH", "main"),
		},
	}

	distance, err := strconv.ParseFloat(envOrDefault("LISTINGS_DEFAULT_DISTANCE", "25"), 64)
	if err != nil {
		return nil, fmt.Errorf("LISTINGS_DEFAULT_DISTANCE: %w", err)
	}
	if distance <= 0 {
		return nil, fmt.Errorf("LISTINGS_DEFAULT_DISTANCE: must be positive, got %g", distance)
	}
	c.DefaultDistance = distance

	slow, err := time.ParseDuration(envOrDefault("LISTINGS_SLOW_QUERY", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("LISTINGS_SLOW_QUERY: %w", err)
	}
	c.SlowQuery = slow

	interval, err := time.ParseDuration(envOrDefault("LISTINGS_EXPORT_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("LISTINGS_EXPORT_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("LISTINGS_EXPORT_INTERVAL: must be positive, got %s", interval)
	}
	c.Export.Interval = interval

	if err := c.LogLevel.UnmarshalText([]byte(envOrDefault("LISTINGS_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LISTINGS_LOG_LEVEL: %w", err)
	}

	if c.SearchesFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		c.SearchesFile = filepath.Join(home, ".config", "listings", "searches.toml")
	}

	return c, nil
}

// RequireDatabase returns an error when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("LISTINGS_DATABASE_URL is required")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
