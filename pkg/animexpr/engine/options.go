package engine

import (
	"log/slog"

	"github.com/randalmurphal/animexpr/pkg/animexpr/observability"
	"github.com/randalmurphal/animexpr/pkg/animexpr/store"
)

// DefaultEngineID namespaces persisted nodes when WithEngineID is not used.
const DefaultEngineID = "default"

// Option configures a Manager.
type Option func(*Manager)

// WithEngineID sets the ID under which nodes are persisted.
// Empty IDs are ignored.
func WithEngineID(id string) Option {
	return func(m *Manager) {
		if id != "" {
			m.id = id
		}
	}
}

// WithStore persists node configs to s.
func WithStore(s store.Store) Option {
	return func(m *Manager) {
		m.store = s
	}
}

// WithStoreFailureFatal makes store failures fail the table operation
// instead of being logged.
func WithStoreFailureFatal() Option {
	return func(m *Manager) {
		m.storeFailureFatal = true
	}
}

// WithLogger sets the logger for node lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics records compiles and evaluations.
// Default: observability.NoopMetrics.
func WithMetrics(r observability.MetricsRecorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.metrics = r
		}
	}
}

// WithSpanManager traces expression node compiles.
// Default: observability.NoopSpanManager.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(m *Manager) {
		if sm != nil {
			m.spans = sm
		}
	}
}
