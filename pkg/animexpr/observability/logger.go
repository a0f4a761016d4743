// Package observability provides structured logging, metrics and tracing
// for animexpr expressions and the native engine.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds expression context to a logger.
// Returns a new logger with expression_id and tag fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "2f1c...", 12)
//	enriched.Info("compiled") // includes expression_id, tag
func EnrichLogger(logger *slog.Logger, expressionID string, tag int) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("expression_id", expressionID),
		slog.Int("tag", tag),
	)
}

// LogAttach logs an expression subscribing to its argument cells.
func LogAttach(logger *slog.Logger, expressionID string, args int) {
	if logger == nil {
		return
	}
	logger.Debug("expression attached",
		slog.String("expression_id", expressionID),
		slog.Int("args", args),
	)
}

// LogDetach logs an expression unsubscribing from its argument cells.
func LogDetach(logger *slog.Logger, expressionID string, args int) {
	if logger == nil {
		return
	}
	logger.Debug("expression detached",
		slog.String("expression_id", expressionID),
		slog.Int("args", args),
	)
}

// LogCompile logs a successful evaluator compilation.
func LogCompile(logger *slog.Logger, expressionID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("expression compiled",
		slog.String("expression_id", expressionID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCompileError logs a failed compilation.
func LogCompileError(logger *slog.Logger, expressionID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("expression compile failed",
		slog.String("expression_id", expressionID),
		slog.String("error", err.Error()),
	)
}

// LogValueError logs an expression read as a cell that could not be
// evaluated. The read yields 0.
func LogValueError(logger *slog.Logger, expressionID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("expression value unavailable",
		slog.String("expression_id", expressionID),
		slog.String("error", err.Error()),
	)
}

// LogConvert logs conversion of an expression to its native config.
func LogConvert(logger *slog.Logger, expressionID string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Error("expression convert failed",
			slog.String("expression_id", expressionID),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("expression converted",
		slog.String("expression_id", expressionID),
	)
}

// LogNodeCreated logs a native node being registered with an engine.
func LogNodeCreated(logger *slog.Logger, tag int, nodeType string) {
	if logger == nil {
		return
	}
	logger.Debug("native node created",
		slog.Int("tag", tag),
		slog.String("type", nodeType),
	)
}

// LogNodeDropped logs a native node being removed from an engine.
func LogNodeDropped(logger *slog.Logger, tag int) {
	if logger == nil {
		return
	}
	logger.Debug("native node dropped",
		slog.Int("tag", tag),
	)
}

// LogStoreError logs a config store failure (non-fatal).
func LogStoreError(logger *slog.Logger, tag int, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("config store failed",
		slog.Int("tag", tag),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts a duration to fractional milliseconds for logging.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
