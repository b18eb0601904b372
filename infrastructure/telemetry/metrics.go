// Package telemetry provides observability infrastructure including
// OpenTelemetry metrics support for the propagation engine.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	propagations metric.Int64Counter
	steps        metric.Int64Counter
	errors       metric.Int64Counter

	// Histograms
	pathLength          metric.Float64Histogram
	stepsPerPropagation metric.Float64Histogram
	duration            metric.Float64Histogram

	// Gauges (using UpDownCounter for OpenTelemetry)
	activePropagations metric.Int64UpDownCounter

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/felixgeelhaar/propagator-go").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// Attributes are default attributes to attach to all metrics.
	Attributes []attribute.KeyValue
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/propagator-go",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider. When no SDK meter
// provider is installed the instruments are no-ops, so a propagator can
// always record unconditionally.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	// Counters
	mp.propagations, err = mp.meter.Int64Counter(
		"propagation.calls",
		metric.WithDescription("Number of propagation calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	mp.steps, err = mp.meter.Int64Counter(
		"propagation.steps",
		metric.WithDescription("Number of propagation steps carried out"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return err
	}

	mp.errors, err = mp.meter.Int64Counter(
		"propagation.errors",
		metric.WithDescription("Number of failed propagation calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	// Histograms
	mp.pathLength, err = mp.meter.Float64Histogram(
		"propagation.path_length",
		metric.WithDescription("Absolute propagated path length"),
		metric.WithUnit("mm"),
	)
	if err != nil {
		return err
	}

	mp.stepsPerPropagation, err = mp.meter.Float64Histogram(
		"propagation.steps_per_call",
		metric.WithDescription("Steps per propagation call"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return err
	}

	mp.duration, err = mp.meter.Float64Histogram(
		"propagation.duration",
		metric.WithDescription("Duration of propagation calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	// Gauges (UpDownCounters)
	mp.activePropagations, err = mp.meter.Int64UpDownCounter(
		"propagation.calls.active",
		metric.WithDescription("Number of propagation calls in flight"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// PropagationStarted marks a propagation call as in flight.
func (mp *MetricsProvider) PropagationStarted(ctx context.Context) {
	mp.activePropagations.Add(ctx, 1)
}

// RecordPropagation records a finished propagation call.
func (mp *MetricsProvider) RecordPropagation(ctx context.Context, status, termination string, targeted bool, steps uint, pathLength float64, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("propagation.status", status),
		attribute.String("propagation.termination", termination),
		attribute.Bool("propagation.targeted", targeted),
	}

	mp.propagations.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.steps.Add(ctx, int64(steps), metric.WithAttributes(attrs...))
	mp.stepsPerPropagation.Record(ctx, float64(steps), metric.WithAttributes(attrs...))
	mp.pathLength.Record(ctx, abs(pathLength), metric.WithAttributes(attrs...))
	mp.duration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	mp.activePropagations.Add(ctx, -1)
}

// RecordError records a failed propagation call.
func (mp *MetricsProvider) RecordError(ctx context.Context, termination string) {
	mp.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("propagation.termination", termination),
	))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
