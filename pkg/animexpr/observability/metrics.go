package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records expression metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records an evaluator compilation with its duration and error status.
	RecordCompile(ctx context.Context, duration time.Duration, err error)

	// RecordEvaluation records one run of a compiled evaluator.
	RecordEvaluation(ctx context.Context)

	// RecordConvert records a conversion to the wire form.
	RecordConvert(ctx context.Context, err error)

	// RecordAttach records subscriptions added (positive) or removed (negative).
	RecordAttach(ctx context.Context, subscriptions int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles       metric.Int64Counter
	compileLatency metric.Float64Histogram
	compileErrors  metric.Int64Counter
	evaluations    metric.Int64Counter
	converts       metric.Int64Counter
	convertErrors  metric.Int64Counter
	subscriptions  metric.Int64UpDownCounter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("animexpr")

	compiles, err := meter.Int64Counter("animexpr.compile.count",
		metric.WithDescription("Number of evaluator compilations"),
	)
	if err != nil {
		return nil, err
	}

	compileLatency, err := meter.Float64Histogram("animexpr.compile.latency_ms",
		metric.WithDescription("Evaluator compilation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("animexpr.compile.errors",
		metric.WithDescription("Number of failed compilations"),
	)
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter("animexpr.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	converts, err := meter.Int64Counter("animexpr.convert.count",
		metric.WithDescription("Number of native conversions"),
	)
	if err != nil {
		return nil, err
	}

	convertErrors, err := meter.Int64Counter("animexpr.convert.errors",
		metric.WithDescription("Number of failed native conversions"),
	)
	if err != nil {
		return nil, err
	}

	subscriptions, err := meter.Int64UpDownCounter("animexpr.subscriptions",
		metric.WithDescription("Active expression-to-cell subscriptions"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:       compiles,
		compileLatency: compileLatency,
		compileErrors:  compileErrors,
		evaluations:    evaluations,
		converts:       converts,
		convertErrors:  convertErrors,
		subscriptions:  subscriptions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompile records a compilation.
func (m *otelMetrics) RecordCompile(ctx context.Context, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.compiles.Add(ctx, 1, attrs)
	m.compileLatency.Record(ctx, Milliseconds(duration), attrs)
	if err != nil {
		m.compileErrors.Add(ctx, 1)
	}
}

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context) {
	m.evaluations.Add(ctx, 1)
}

// RecordConvert records a conversion.
func (m *otelMetrics) RecordConvert(ctx context.Context, err error) {
	m.converts.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", err == nil)))
	if err != nil {
		m.convertErrors.Add(ctx, 1)
	}
}

// RecordAttach records a change in active subscriptions.
func (m *otelMetrics) RecordAttach(ctx context.Context, subscriptions int) {
	m.subscriptions.Add(ctx, int64(subscriptions))
}
