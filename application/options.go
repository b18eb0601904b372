package application

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/propagator-go/domain/propagation"
	"github.com/felixgeelhaar/propagator-go/infrastructure/telemetry"
)

// Option configures the propagator.
type Option[P any, C propagation.Cache] func(*Propagator[P, C])

// WithMetrics sets the metrics provider.
func WithMetrics[P any, C propagation.Cache](mp *telemetry.MetricsProvider) Option[P, C] {
	return func(p *Propagator[P, C]) {
		p.metrics = mp
	}
}

// WithTracer sets a custom tracer. If not set, a tracer is obtained from the
// global tracer provider.
func WithTracer[P any, C propagation.Cache](tracer trace.Tracer) Option[P, C] {
	return func(p *Propagator[P, C]) {
		p.tracer = tracer
	}
}
