package propagation

import "github.com/felixgeelhaar/propagator-go/domain/geometry"

// Cache is the narrow contract the engine needs from a stepper's per-call
// state. Everything beyond it stays opaque to the engine: the cache is
// created once per call, threaded mutably through the loop, and discarded at
// call end.
//
// The engine writes the signed step size when initializing a call; the
// surface-reached condition reads position and direction and may tighten the
// step size while homing in on the target.
type Cache interface {
	// StepSize returns the current signed step size.
	StepSize() float64

	// SetStepSize sets the signed step size for subsequent steps.
	SetStepSize(size float64)

	// Position returns the current position.
	Position() geometry.Vec3

	// Direction returns the current normalized momentum direction.
	Direction() geometry.Vec3
}

// Stepper is the pluggable algorithm that advances a state by one discrete
// step. It owns the concrete cache type C and the conversion of a terminal
// cache back into parameters of type P.
//
// Implementations must be safe for concurrent use as long as every call
// operates on its own cache.
type Stepper[P any, C Cache] interface {
	// NewCache builds a fresh per-call cache from the start parameters with
	// the given initial signed step size.
	NewCache(start P, stepSize float64) C

	// Step advances the cache by one step and returns the signed path length
	// covered. Conversion does not happen on a cache whose last step failed.
	Step(cache C) (float64, error)

	// Convert turns a terminal cache into end parameters. Converting the
	// same terminal cache twice yields equal parameters.
	Convert(cache C) P

	// ConvertAt turns a terminal cache into end parameters projected onto
	// the target surface.
	ConvertAt(cache C, target Surface) (P, error)
}

// Surface is the geometric capability consumed by surface-targeted
// propagation: a signed straight-line distance estimate from a position along
// a direction. Positive means ahead, negative behind; +Inf means the surface
// is not intersected.
//
// A surface passed to the engine is borrowed for the duration of the call and
// must outlive it.
type Surface interface {
	Distance(position, direction geometry.Vec3) float64
}
