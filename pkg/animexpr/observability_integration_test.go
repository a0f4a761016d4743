package animexpr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/randalmurphal/animexpr/pkg/animexpr"
	"github.com/randalmurphal/animexpr/pkg/animexpr/cell"
	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
	"github.com/randalmurphal/animexpr/pkg/animexpr/observability"
)

func int64Sum(t *testing.T, rm *metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return 0
}

// Global OTel providers are redirected only once per process; keep every
// OTel assertion for this package in this test.
func TestObservability_OTel(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	x := cell.New(3)
	e := animexpr.New(expr.Multiply(x, x),
		animexpr.WithMetrics(observability.NewMetricsRecorder()),
		animexpr.WithSpanManager(observability.NewSpanManager()),
	)

	require.NoError(t, e.Attach())
	for i := 0; i < 3; i++ {
		v, err := e.Value()
		require.NoError(t, err)
		assert.Equal(t, 9.0, v)
	}
	_, err := e.NativeConfig()
	require.NoError(t, err)

	var names []string
	for _, s := range exporter.GetSpans() {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"animexpr.compile", "animexpr.convert"}, names)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(1), int64Sum(t, &rm, "animexpr.compile.count"))
	assert.Equal(t, int64(3), int64Sum(t, &rm, "animexpr.evaluations"))
	assert.Equal(t, int64(1), int64Sum(t, &rm, "animexpr.convert.count"))
	assert.Equal(t, int64(2), int64Sum(t, &rm, "animexpr.subscriptions"))

	require.NoError(t, e.Detach())
	rm = metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(0), int64Sum(t, &rm, "animexpr.subscriptions"))
}
