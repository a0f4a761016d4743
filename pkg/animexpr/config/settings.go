package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Store drivers accepted in store.driver.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Settings are the engine options read from a Config.
type Settings struct {
	// EngineID namespaces persisted configs so several engines can share a store.
	EngineID string
	// StoreDriver is DriverMemory or DriverSQLite.
	StoreDriver string
	// StorePath is the SQLite database path; ":memory:" for a private database.
	StorePath string
	// LogLevel is the minimum level for engine logging.
	LogLevel slog.Level
	// Metrics enables OpenTelemetry metrics.
	Metrics bool
	// Tracing enables OpenTelemetry tracing.
	Tracing bool
}

// DefaultSettings returns the settings used for missing keys.
func DefaultSettings() Settings {
	return Settings{
		EngineID:    "default",
		StoreDriver: DriverMemory,
		StorePath:   ":memory:",
		LogLevel:    slog.LevelInfo,
	}
}

// Load extracts Settings from c, applying defaults and validating values.
func Load(c Config) (Settings, error) {
	d := DefaultSettings()
	s := Settings{
		EngineID:    c.String("engine.id", d.EngineID),
		StoreDriver: strings.ToLower(c.String("store.driver", d.StoreDriver)),
		StorePath:   c.String("store.path", d.StorePath),
		Metrics:     c.Bool("observability.metrics", d.Metrics),
		Tracing:     c.Bool("observability.tracing", d.Tracing),
		LogLevel:    d.LogLevel,
	}

	if s.EngineID == "" {
		return Settings{}, fmt.Errorf("engine.id cannot be empty")
	}

	switch s.StoreDriver {
	case DriverMemory, DriverSQLite:
	default:
		return Settings{}, fmt.Errorf("unsupported store driver: %s", s.StoreDriver)
	}

	if level, ok := c.lookupString("log.level"); ok {
		if err := s.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Settings{}, fmt.Errorf("log.level: %w", err)
		}
	}

	return s, nil
}
