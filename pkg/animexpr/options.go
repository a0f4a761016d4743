package animexpr

import (
	"log/slog"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
	"github.com/randalmurphal/animexpr/pkg/animexpr/observability"
)

// Option configures an Expression.
type Option func(*Expression)

// WithLogger sets the logger for lifecycle events. The logger is enriched
// with the expression ID and tag.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expression) {
		e.logger = logger
	}
}

// WithMetrics records compiles, evaluations, conversions and subscriptions.
// Default: observability.NoopMetrics.
func WithMetrics(r observability.MetricsRecorder) Option {
	return func(e *Expression) {
		if r != nil {
			e.metrics = r
		}
	}
}

// WithSpanManager traces compiles and conversions.
// Default: observability.NoopSpanManager.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(e *Expression) {
		if sm != nil {
			e.spans = sm
		}
	}
}

// WithNativeDriver registers the expression with a native engine on Attach
// and drops it on Detach.
func WithNativeDriver(d Driver) Option {
	return func(e *Expression) {
		e.driver = d
	}
}

// WithTag sets the expression's native tag instead of allocating one.
func WithTag(tag expr.Tag) Option {
	return func(e *Expression) {
		e.tag = tag
		e.tagSet = true
	}
}
