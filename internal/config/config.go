// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"

	"github.com/okian/teamforge/internal/domain/generator"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of generation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the request idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// HistorySize bounds the in-memory match store.
	HistorySize int `koanf:"history_size"`

	// StoreBackend selects memory or badger.
	StoreBackend string `koanf:"store_backend"`

	// BadgerDir is the badger data directory. Empty runs badger in memory.
	BadgerDir string `koanf:"badger_dir"`

	// MaxRosterSize caps players per request.
	MaxRosterSize int `koanf:"max_roster_size"`

	// MaxListLimit caps GET /matches?limit.
	MaxListLimit int `koanf:"max_list_limit"`

	MaxSwapIterations       int     `koanf:"max_swap_iterations"`
	VarianceThreshold       float64 `koanf:"variance_threshold"`
	PositionWeight          float64 `koanf:"position_weight"`
	TechnikWeight           float64 `koanf:"technik_weight"`
	FitnessWeight           float64 `koanf:"fitness_weight"`
	SpielverstaendnisWeight float64 `koanf:"spielverstaendnis_weight"`
}

// New creates a Config with defaults.
func New() *Config {
	g := generator.DefaultConfig()
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Addr:                    ":9080",
		QueueSize:               1_000,
		WorkerCount:             runtime.NumCPU(),
		DedupeSize:              10_000,
		HistorySize:             1_000,
		StoreBackend:            BackendMemory,
		MaxRosterSize:           200,
		MaxListLimit:            100,
		MaxSwapIterations:       g.MaxSwapIterations,
		VarianceThreshold:       g.VarianceThreshold,
		PositionWeight:          g.PositionWeight,
		TechnikWeight:           g.TechnikWeight,
		FitnessWeight:           g.FitnessWeight,
		SpielverstaendnisWeight: g.SpielverstaendnisWeight,
	}
}

// Generator returns the generator tunables.
func (c *Config) Generator() generator.Config {
	return generator.Config{
		MaxSwapIterations:       c.MaxSwapIterations,
		VarianceThreshold:       c.VarianceThreshold,
		PositionWeight:          c.PositionWeight,
		TechnikWeight:           c.TechnikWeight,
		FitnessWeight:           c.FitnessWeight,
		SpielverstaendnisWeight: c.SpielverstaendnisWeight,
	}
}

// Validate checks values the loader cannot coerce.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.MaxRosterSize < 2:
		return fmt.Errorf("%w: max_roster_size must be at least 2", ErrInvalidConfig)
	case c.MaxListLimit <= 0:
		return fmt.Errorf("%w: max_list_limit must be positive", ErrInvalidConfig)
	case c.StoreBackend != BackendMemory && c.StoreBackend != BackendBadger:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	case c.VarianceThreshold < 0 || c.PositionWeight < 0 ||
		c.TechnikWeight < 0 || c.FitnessWeight < 0 || c.SpielverstaendnisWeight < 0:
		return fmt.Errorf("%w: weights and threshold must not be negative", ErrInvalidConfig)
	}
	return nil
}
