package application

import (
	"math"

	"github.com/felixgeelhaar/propagator-go/domain/propagation"
)

// internalAborters are the propagator-owned stopping conditions, always
// active regardless of caller configuration. The target check runs before the
// path limit; either stops the loop. Firing records the termination cause on
// the result.
type internalAborters[P any, C propagation.Cache] struct {
	target    *surfaceReached[P, C]
	pathLimit *pathLimitReached[P, C]
}

func (ia internalAborters[P, C]) evaluate(result *propagation.Result[P], cache C) bool {
	if ia.target != nil && ia.target.Evaluate(result, cache) {
		result.Termination = propagation.TerminationTarget
		return true
	}
	if ia.pathLimit != nil && ia.pathLimit.Evaluate(result, cache) {
		result.Termination = propagation.TerminationPathLimit
		return true
	}
	return false
}

// pathLimitReached stops the loop once the accumulated signed path length is
// within tolerance of the signed limit or has overshot it. The limit carries
// the propagation direction's sign so that backward propagation against a
// positive limit magnitude terminates correctly.
type pathLimitReached[P any, C propagation.Cache] struct {
	signedLimit float64
	tolerance   float64
	direction   propagation.Direction
}

func newPathLimitReached[P any, C propagation.Cache](signedLimit, tolerance float64, direction propagation.Direction) *pathLimitReached[P, C] {
	return &pathLimitReached[P, C]{
		signedLimit: signedLimit,
		tolerance:   tolerance,
		direction:   direction,
	}
}

// Evaluate reports whether the remaining distance to the limit is within
// tolerance. While the limit is still ahead it tightens the cache step size
// so the final step does not overshoot.
func (a *pathLimitReached[P, C]) Evaluate(result *propagation.Result[P], cache C) bool {
	remaining := a.signedLimit - result.PathLength
	if remaining*a.direction.Sign() <= a.tolerance {
		return true
	}
	if math.Abs(remaining) < math.Abs(cache.StepSize()) {
		cache.SetStepSize(remaining)
	}
	return false
}

// surfaceReached stops the loop once the straight-line distance estimate to
// the target surface is within tolerance. It holds a borrowed reference to
// the target; the surface must outlive the call.
type surfaceReached[P any, C propagation.Cache] struct {
	surface   propagation.Surface
	direction propagation.Direction
	tolerance float64
}

func newSurfaceReached[P any, C propagation.Cache](surface propagation.Surface, direction propagation.Direction, tolerance float64) *surfaceReached[P, C] {
	return &surfaceReached[P, C]{
		surface:   surface,
		direction: direction,
		tolerance: tolerance,
	}
}

// Evaluate reports whether the target lies within tolerance of the current
// state. When the target is ahead in the travel direction the cache step size
// is tightened to the distance estimate, homing in on the surface; a target
// behind the travel direction is never reported as reached early.
func (a *surfaceReached[P, C]) Evaluate(result *propagation.Result[P], cache C) bool {
	distance := a.surface.Distance(cache.Position(), cache.Direction())
	if math.IsInf(distance, 0) {
		return false
	}
	if math.Abs(distance) <= a.tolerance {
		return true
	}
	if distance*a.direction.Sign() > 0 && math.Abs(distance) < math.Abs(cache.StepSize()) {
		cache.SetStepSize(distance)
	}
	return false
}
