package application

import (
	"context"

	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
	"github.com/felixgeelhaar/propagator-go/infrastructure/logging"
)

// Payload keys of the provided actions.
const (
	// StepCounterKey is the payload slot of the StepCounter action.
	StepCounterKey = "step_counter"

	// PathRecorderKey is the payload slot of the PathRecorder action.
	PathRecorderKey = "path_recorder"
)

// StepCounter is an action that counts its own invocations into the result
// payload under StepCounterKey.
type StepCounter[P any, C propagation.Cache] struct{}

// NewStepCounter creates a step-counting action.
func NewStepCounter[P any, C propagation.Cache]() *StepCounter[P, C] {
	return &StepCounter[P, C]{}
}

// Key implements propagation.Action.
func (a *StepCounter[P, C]) Key() string { return StepCounterKey }

// Operate implements propagation.Action.
func (a *StepCounter[P, C]) Operate(_ C, result *propagation.Result[P]) {
	count := uint(0)
	if v, ok := result.Payload(StepCounterKey); ok {
		count, _ = v.(uint)
	}
	result.SetPayload(StepCounterKey, count+1)
}

// PathSample is one recorded point along the propagated trajectory.
type PathSample struct {
	Position   geometry.Vec3
	PathLength float64
}

// PathRecorder is an action that appends one PathSample per step into the
// result payload under PathRecorderKey.
type PathRecorder[P any, C propagation.Cache] struct{}

// NewPathRecorder creates a trajectory-recording action.
func NewPathRecorder[P any, C propagation.Cache]() *PathRecorder[P, C] {
	return &PathRecorder[P, C]{}
}

// Key implements propagation.Action.
func (a *PathRecorder[P, C]) Key() string { return PathRecorderKey }

// Operate implements propagation.Action.
func (a *PathRecorder[P, C]) Operate(cache C, result *propagation.Result[P]) {
	var samples []PathSample
	if v, ok := result.Payload(PathRecorderKey); ok {
		samples, _ = v.([]PathSample)
	}
	samples = append(samples, PathSample{
		Position:   cache.Position(),
		PathLength: result.PathLength,
	})
	result.SetPayload(PathRecorderKey, samples)
}

// StepLogger is an action that debug-logs every step.
type StepLogger[P any, C propagation.Cache] struct {
	// CallID correlates the step logs with the call, if set.
	CallID string
}

// NewStepLogger creates a step-logging action.
func NewStepLogger[P any, C propagation.Cache]() *StepLogger[P, C] {
	return &StepLogger[P, C]{}
}

// Key implements propagation.Action.
func (a *StepLogger[P, C]) Key() string { return "step_logger" }

// Operate implements propagation.Action.
func (a *StepLogger[P, C]) Operate(cache C, result *propagation.Result[P]) {
	logging.Debug().
		Add(logging.CallID(a.CallID)).
		Add(logging.Steps(result.Steps)).
		Add(logging.PathLength(result.PathLength)).
		Add(logging.StepSize(cache.StepSize())).
		Add(logging.Position(cache.Position())).
		Msg("step")
}

// ContextDone is an aborter that stops the loop once the given context is
// cancelled. Cancellation is deliberately an ordinary abort condition rather
// than an engine concern, so a cancelled call still yields a converted,
// successful result at the point it stopped.
type ContextDone[P any, C propagation.Cache] struct {
	ctx context.Context
}

// NewContextDone creates a cancellation aborter watching ctx.
func NewContextDone[P any, C propagation.Cache](ctx context.Context) *ContextDone[P, C] {
	return &ContextDone[P, C]{ctx: ctx}
}

// Evaluate implements propagation.Aborter.
func (a *ContextDone[P, C]) Evaluate(_ *propagation.Result[P], _ C) bool {
	select {
	case <-a.ctx.Done():
		return true
	default:
		return false
	}
}
