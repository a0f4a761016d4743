package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/randalmurphal/animexpr/pkg/animexpr/config"
	"github.com/randalmurphal/animexpr/pkg/animexpr/observability"
	"github.com/randalmurphal/animexpr/pkg/animexpr/store"
)

// NewFromConfig builds a Manager from engine settings (see config.Load),
// opens its store and restores persisted nodes. Options are applied after
// the settings, so they override them.
//
// The returned close function releases the store.
func NewFromConfig(c config.Config, opts ...Option) (*Manager, func() error, error) {
	s, err := config.Load(c)
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	var st store.Store
	switch s.StoreDriver {
	case config.DriverSQLite:
		st, err = store.NewSQLiteStore(s.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
	default:
		st = store.NewMemoryStore()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: s.LogLevel}))
	base := []Option{
		WithEngineID(s.EngineID),
		WithStore(st),
		WithLogger(logger.With(slog.String("engine_id", s.EngineID))),
	}
	if s.Metrics {
		base = append(base, WithMetrics(observability.NewMetricsRecorder()))
	}
	if s.Tracing {
		base = append(base, WithSpanManager(observability.NewSpanManager()))
	}

	m := New(append(base, opts...)...)
	if err := m.Restore(); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("restore: %w", err)
	}
	return m, st.Close, nil
}
