// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Storage drivers understood by the server.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StorageDriver selects the record backend: sqlite, memory or none.
	StorageDriver string `koanf:"storage_driver"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// LeaderboardCapacity bounds the stored leaderboard.
	LeaderboardCapacity int `koanf:"leaderboard_capacity"`

	// DedupeSize bounds the number of remembered session ids.
	DedupeSize int `koanf:"dedupe_size"`

	// Trivia scoring: base points per correct answer, bonus per second left,
	// and the per-question time limit in seconds.
	ScoringBasePoints int `koanf:"scoring_base_points"`
	ScoringTimeBonus  int `koanf:"scoring_time_bonus"`
	ScoringTimeLimitS int `koanf:"scoring_time_limit_s"`
}

// New creates a Config populated with defaults. The context is accepted first
// to follow the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		StorageDriver:       DriverSQLite,
		SQLitePath:          "swiftrivia.db",
		LeaderboardCapacity: 50,
		DedupeSize:          10_000,
		ScoringBasePoints:   100,
		ScoringTimeBonus:    10,
		ScoringTimeLimitS:   30,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StorageDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
		}
	case DriverMemory, DriverNone:
	default:
		return fmt.Errorf("%w: unknown storage_driver %q", ErrInvalidConfig, c.StorageDriver)
	}
	if c.LeaderboardCapacity < 1 {
		return fmt.Errorf("%w: leaderboard_capacity must be positive", ErrInvalidConfig)
	}
	if c.ScoringBasePoints < 1 {
		return fmt.Errorf("%w: scoring_base_points must be positive", ErrInvalidConfig)
	}
	if c.ScoringTimeBonus < 0 {
		return fmt.Errorf("%w: scoring_time_bonus must not be negative", ErrInvalidConfig)
	}
	if c.ScoringTimeLimitS < 1 {
		return fmt.Errorf("%w: scoring_time_limit_s must be positive", ErrInvalidConfig)
	}
	return nil
}
