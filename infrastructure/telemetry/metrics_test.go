package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupTestMetrics sets up a test meter provider and returns it along with a reader.
func setupTestMetrics(t *testing.T) (*metric.ManualReader, *MetricsProvider) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	mp := NewMetricsProvider(DefaultMetricsConfig())
	if mp.Error() != nil {
		t.Fatalf("failed to create metrics provider: %v", mp.Error())
	}

	return reader, mp
}

// findMetric returns the named metric from a collected snapshot.
func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestNewMetricsProvider(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	if mp == nil {
		t.Fatal("NewMetricsProvider returned nil")
	}
	if mp.Error() != nil {
		t.Errorf("unexpected error: %v", mp.Error())
	}
}

func TestMetricsProvider_RecordPropagation(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.PropagationStarted(ctx)
	mp.RecordPropagation(ctx, "success", "path_limit", false, 3, 300, 5*time.Millisecond)

	mp.PropagationStarted(ctx)
	mp.RecordPropagation(ctx, "success", "target", true, 12, -42.5, 2*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	m, ok := findMetric(rm, "propagation.calls")
	if !ok {
		t.Fatal("propagation.calls metric not found")
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("propagation.calls total = %d, want 2", total)
	}

	m, ok = findMetric(rm, "propagation.steps")
	if !ok {
		t.Fatal("propagation.steps metric not found")
	}
	sum, ok = m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	total = 0
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 15 {
		t.Errorf("propagation.steps total = %d, want 15", total)
	}

	// Active gauge went up and back down for both calls.
	m, ok = findMetric(rm, "propagation.calls.active")
	if !ok {
		t.Fatal("propagation.calls.active metric not found")
	}
	gauge, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var active int64
	for _, dp := range gauge.DataPoints {
		active += dp.Value
	}
	if active != 0 {
		t.Errorf("propagation.calls.active = %d, want 0", active)
	}
}

func TestMetricsProvider_RecordError(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()
	mp.RecordError(ctx, "step_error")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	m, ok := findMetric(rm, "propagation.errors")
	if !ok {
		t.Fatal("propagation.errors metric not found")
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 1 {
		t.Errorf("propagation.errors total = %d, want 1", total)
	}
}

func TestAbs(t *testing.T) {
	if got := abs(-2.5); got != 2.5 {
		t.Errorf("abs(-2.5) = %g, want 2.5", got)
	}
	if got := abs(1.25); got != 1.25 {
		t.Errorf("abs(1.25) = %g, want 1.25", got)
	}
}
