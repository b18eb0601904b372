// Package line provides a straight-line stepping implementation: field-free
// propagation along the momentum direction.
package line

import (
	"math"

	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
)

// Parameters are the free parameters of a straight track.
type Parameters struct {
	// Position is the current position.
	Position geometry.Vec3

	// Direction is the normalized momentum direction.
	Direction geometry.Vec3

	// Momentum is the absolute momentum.
	Momentum float64
}

// Cache is the per-call stepping state.
type Cache struct {
	position  geometry.Vec3
	direction geometry.Vec3
	momentum  float64
	stepSize  float64
}

// Position implements propagation.Cache.
func (c *Cache) Position() geometry.Vec3 { return c.position }

// Direction implements propagation.Cache.
func (c *Cache) Direction() geometry.Vec3 { return c.direction }

// StepSize implements propagation.Cache.
func (c *Cache) StepSize() float64 { return c.stepSize }

// SetStepSize implements propagation.Cache.
func (c *Cache) SetStepSize(size float64) { c.stepSize = size }

// Stepper advances parameters on a straight line. The zero value is ready to
// use; a stepper holds no per-call state and is safe for concurrent use.
type Stepper struct{}

var _ propagation.Stepper[Parameters, *Cache] = (*Stepper)(nil)

// New creates a straight-line stepper.
func New() *Stepper {
	return &Stepper{}
}

// NewCache implements propagation.Stepper.
func (s *Stepper) NewCache(start Parameters, stepSize float64) *Cache {
	return &Cache{
		position:  start.Position,
		direction: start.Direction.Unit(),
		momentum:  start.Momentum,
		stepSize:  stepSize,
	}
}

// Step advances the position by the current signed step size along the
// direction and returns the signed path length covered.
func (s *Stepper) Step(cache *Cache) (float64, error) {
	h := cache.stepSize
	cache.position = cache.position.Add(cache.direction.Scale(h))
	return h, nil
}

// Convert implements propagation.Stepper.
func (s *Stepper) Convert(cache *Cache) Parameters {
	return Parameters{
		Position:  cache.position,
		Direction: cache.direction,
		Momentum:  cache.momentum,
	}
}

// ConvertAt projects the final state exactly onto the target along the line.
func (s *Stepper) ConvertAt(cache *Cache, target propagation.Surface) (Parameters, error) {
	d := target.Distance(cache.position, cache.direction)
	if math.IsInf(d, 0) || math.IsNaN(d) {
		return Parameters{}, propagation.ErrNoIntersection
	}
	return Parameters{
		Position:  cache.position.Add(cache.direction.Scale(d)),
		Direction: cache.direction,
		Momentum:  cache.momentum,
	}, nil
}
