package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("animexpr")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCompileSpan starts a span for compiling an expression's evaluator.
	StartCompileSpan(ctx context.Context, expressionID string) (context.Context, trace.Span)

	// StartConvertSpan starts a span for converting an expression to its wire form.
	StartConvertSpan(ctx context.Context, expressionID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCompileSpan starts a compile span.
func (m *otelSpanManager) StartCompileSpan(ctx context.Context, expressionID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "animexpr.compile",
		trace.WithAttributes(
			attribute.String("expression.id", expressionID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartConvertSpan starts a convert span.
func (m *otelSpanManager) StartConvertSpan(ctx context.Context, expressionID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "animexpr.convert",
		trace.WithAttributes(
			attribute.String("expression.id", expressionID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
