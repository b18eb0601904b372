package propagation

import (
	"fmt"
	"math"
)

// Default option values. Lengths are in millimeters.
const (
	// DefaultMaxSteps bounds the number of steps in one call.
	DefaultMaxSteps uint = 1000

	// DefaultTargetTolerance is the distance below which a target (surface
	// or path limit) counts as reached: one micrometer.
	DefaultTargetTolerance = 1e-3

	// DefaultMaxStepSize is the absolute maximum step size: one meter.
	DefaultMaxStepSize = 1e3
)

// Options configures one propagation call. It is read-only for the duration
// of the call; the attached lists may carry per-call mutable configuration of
// their entries, set up before the call.
type Options[P any, C Cache] struct {
	// Direction is the propagation direction relative to momentum.
	Direction Direction

	// MaxSteps is the step budget for one call. Zero is a degenerate but
	// valid budget: the loop body never executes and the start state is
	// converted as-is.
	MaxSteps uint

	// TargetTolerance is the distance below which the target surface or the
	// path limit counts as reached. Must be positive.
	TargetTolerance float64

	// MaxStepSize is the absolute maximum step size, used sign-adjusted as
	// the initial step size. Must be positive.
	MaxStepSize float64

	// MaxPathLength is the absolute maximum path length. Defaults to
	// unbounded. Must be positive.
	MaxPathLength float64

	// Actions are the caller's per-step hooks, run in order after each step.
	Actions *ActionList[P, C]

	// Aborters are the caller's stopping conditions, evaluated after the
	// actions of each step.
	Aborters *AbortList[P, C]
}

// DefaultOptions returns options with forward direction and the default
// numeric limits, and empty hook lists.
func DefaultOptions[P any, C Cache]() Options[P, C] {
	return Options[P, C]{
		Direction:       Forward,
		MaxSteps:        DefaultMaxSteps,
		TargetTolerance: DefaultTargetTolerance,
		MaxStepSize:     DefaultMaxStepSize,
		MaxPathLength:   math.Inf(1),
	}
}

// Validate checks the numeric configuration. Non-positive tolerances and
// sizes are caller contract violations and are rejected up front rather than
// handled defensively inside the loop.
func (o *Options[P, C]) Validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("%w: direction must be forward or backward", ErrInvalidOptions)
	}
	if o.TargetTolerance <= 0 {
		return fmt.Errorf("%w: target tolerance must be positive, got %g", ErrInvalidOptions, o.TargetTolerance)
	}
	if o.MaxStepSize <= 0 {
		return fmt.Errorf("%w: max step size must be positive, got %g", ErrInvalidOptions, o.MaxStepSize)
	}
	if o.MaxPathLength <= 0 || math.IsNaN(o.MaxPathLength) {
		return fmt.Errorf("%w: max path length must be positive, got %g", ErrInvalidOptions, o.MaxPathLength)
	}
	return nil
}
