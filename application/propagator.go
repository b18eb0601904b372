// Package application provides the propagation orchestrator.
package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/propagator-go/domain/propagation"
	"github.com/felixgeelhaar/propagator-go/infrastructure/logging"
	"github.com/felixgeelhaar/propagator-go/infrastructure/telemetry"
)

const tracerName = "propagator-go"

// Propagator is the high-level steering code for propagating parameters of
// type P through a medium. The actual stepping algorithm lives in the stepper
// it owns; the propagator orchestrates the loop, the per-step action and
// abort hooks, and the assembly of the result.
//
// A propagator is stateless across calls. It is safe for concurrent use as
// long as its stepper is, since every call builds its own cache.
type Propagator[P any, C propagation.Cache] struct {
	stepper propagation.Stepper[P, C]
	metrics *telemetry.MetricsProvider
	tracer  trace.Tracer
}

// New creates a propagator around the given stepping implementation.
func New[P any, C propagation.Cache](stepper propagation.Stepper[P, C], opts ...Option[P, C]) (*Propagator[P, C], error) {
	if stepper == nil {
		return nil, fmt.Errorf("%w: stepper is required", propagation.ErrInvalidOptions)
	}

	p := &Propagator[P, C]{
		stepper: stepper,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.metrics == nil {
		p.metrics = telemetry.NewMetricsProvider(telemetry.DefaultMetricsConfig())
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(tracerName)
	}

	return p, nil
}

// Propagate advances start according to the options until the step budget,
// the path-length limit, or a caller-supplied abort condition stops the loop,
// then converts the final cache into end parameters.
//
// Every termination through a deterministic bound is a successful, converted
// result; only a start state already violating a limit, or a failing step,
// yields an unconverted result with a non-nil error.
func (p *Propagator[P, C]) Propagate(ctx context.Context, start P, options propagation.Options[P, C]) (propagation.Result[P], error) {
	if err := options.Validate(); err != nil {
		return propagation.NewResult[P](propagation.StatusUnset), err
	}

	cache := p.stepper.NewCache(start, options.Direction.Sign()*options.MaxStepSize)

	limit := newPathLimitReached[P, C](
		math.Abs(options.MaxPathLength)*options.Direction.Sign(),
		options.TargetTolerance,
		options.Direction,
	)
	internal := internalAborters[P, C]{pathLimit: limit}

	return p.execute(ctx, cache, &options, internal, func(c C) (P, error) {
		return p.stepper.Convert(c), nil
	}, false)
}

// PropagateTo advances start like Propagate, with the target surface as an
// additional stopping condition, and converts the final cache onto the
// target. The target is borrowed for the duration of the call and must
// outlive it.
func (p *Propagator[P, C]) PropagateTo(ctx context.Context, start P, target propagation.Surface, options propagation.Options[P, C]) (propagation.Result[P], error) {
	if err := options.Validate(); err != nil {
		return propagation.NewResult[P](propagation.StatusUnset), err
	}
	if target == nil {
		return propagation.NewResult[P](propagation.StatusUnset),
			fmt.Errorf("%w: target surface is required", propagation.ErrInvalidOptions)
	}

	cache := p.stepper.NewCache(start, options.Direction.Sign()*options.MaxStepSize)

	// Target check first, then path limit; either can stop the loop.
	reached := newSurfaceReached[P, C](target, options.Direction, options.TargetTolerance)
	limit := newPathLimitReached[P, C](
		math.Abs(options.MaxPathLength)*options.Direction.Sign(),
		options.TargetTolerance,
		options.Direction,
	)
	internal := internalAborters[P, C]{target: reached, pathLimit: limit}

	return p.execute(ctx, cache, &options, internal, func(c C) (P, error) {
		return p.stepper.ConvertAt(c, target)
	}, true)
}

// execute runs the stepping loop and converts the final cache through the
// given conversion on the success path.
func (p *Propagator[P, C]) execute(
	ctx context.Context,
	cache C,
	options *propagation.Options[P, C],
	internal internalAborters[P, C],
	convert func(C) (P, error),
	targeted bool,
) (propagation.Result[P], error) {
	callID := uuid.NewString()
	started := time.Now()

	ctx, span := p.tracer.Start(ctx, spanName(targeted),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("propagation.call_id", callID),
			attribute.String("propagation.direction", options.Direction.String()),
			attribute.Int("propagation.max_steps", int(options.MaxSteps)),
			attribute.Bool("propagation.targeted", targeted),
		),
	)
	defer span.End()

	p.metrics.PropagationStarted(ctx)

	result := propagation.NewResult[P](propagation.StatusInProgress)

	var callErr error
	status, stepErr := p.run(&result, cache, options, internal)
	switch status {
	case propagation.StatusInProgress:
		end, err := convert(cache)
		if err != nil {
			result.Status = propagation.StatusFailure
			callErr = fmt.Errorf("conversion failed: %w", err)
			break
		}
		result.EndParameters = &end
		result.Status = propagation.StatusSuccess
	default:
		result.Status = propagation.StatusFailure
		if stepErr != nil {
			callErr = stepErr
		} else {
			callErr = propagation.ErrStartOutOfBounds
		}
	}

	duration := time.Since(started)
	p.metrics.RecordPropagation(ctx,
		result.Status.String(), result.Termination.String(), targeted,
		result.Steps, result.PathLength, duration)

	if callErr != nil {
		p.metrics.RecordError(ctx, result.Termination.String())
		span.RecordError(callErr)
		span.SetStatus(codes.Error, callErr.Error())

		logging.Warn().
			Add(logging.CallID(callID)).
			Add(logging.Targeted(targeted)).
			Add(logging.Steps(result.Steps)).
			Add(logging.TerminationField(result.Termination)).
			Add(logging.ErrorField(callErr)).
			Msg("propagation failed")

		return result, callErr
	}

	span.SetAttributes(
		attribute.Int("propagation.steps", int(result.Steps)),
		attribute.Float64("propagation.path_length", result.PathLength),
		attribute.String("propagation.termination", result.Termination.String()),
	)

	logging.Debug().
		Add(logging.CallID(callID)).
		Add(logging.Targeted(targeted)).
		Add(logging.DirectionField(options.Direction)).
		Add(logging.Steps(result.Steps)).
		Add(logging.PathLength(result.PathLength)).
		Add(logging.TerminationField(result.Termination)).
		Add(logging.Duration(duration)).
		Msg("propagation completed")

	return result, nil
}

// run is the stepping loop. It requires a result in progress and a cache
// whose step size is already sign-adjusted, and returns in-progress in every
// case except a violated start-state precondition or a failing step;
// conversion is the caller's job.
func (p *Propagator[P, C]) run(
	result *propagation.Result[P],
	cache C,
	options *propagation.Options[P, C],
	internal internalAborters[P, C],
) (propagation.Status, error) {
	// A start state already beyond a limit never steps.
	if internal.evaluate(result, cache) {
		return propagation.StatusFailure, nil
	}

	for result.Steps < options.MaxSteps {
		length, err := p.stepper.Step(cache)
		if err != nil {
			result.Termination = propagation.TerminationStepError
			return propagation.StatusFailure, fmt.Errorf("%w: %w", propagation.ErrStepFailed, err)
		}
		result.PathLength += length

		// Actions run in list order and may mutate the cache.
		options.Actions.Run(cache, result)

		// Caller conditions first, then the internal ones. The step that
		// triggered termination still counts.
		if options.Aborters.Evaluate(result, cache) {
			result.Termination = propagation.TerminationAborted
			result.Steps++
			return propagation.StatusInProgress, nil
		}
		if internal.evaluate(result, cache) {
			result.Steps++
			return propagation.StatusInProgress, nil
		}

		result.Steps++
	}

	result.Termination = propagation.TerminationMaxSteps
	return propagation.StatusInProgress, nil
}

func spanName(targeted bool) string {
	if targeted {
		return "propagation.propagate_to"
	}
	return "propagation.propagate"
}
