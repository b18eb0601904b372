package config

import (
	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
)

// BuildOptions turns the numeric configuration into engine options,
// falling back to the engine defaults for unset values.
func BuildOptions[P any, C propagation.Cache](pc PropagationConfig) propagation.Options[P, C] {
	opts := propagation.DefaultOptions[P, C]()
	opts.Direction = pc.DirectionValue()
	if pc.MaxSteps > 0 {
		opts.MaxSteps = pc.MaxSteps
	}
	if pc.TargetTolerance > 0 {
		opts.TargetTolerance = pc.TargetTolerance
	}
	if pc.MaxStepSize > 0 {
		opts.MaxStepSize = pc.MaxStepSize
	}
	opts.MaxPathLength = pc.MaxPathLengthValue()
	return opts
}

// Surface builds the configured target surface. The second return is false
// when no target is configured.
func (c *RunConfig) Surface() (propagation.Surface, bool) {
	if c.Target == nil {
		return nil, false
	}
	switch c.Target.Type {
	case "plane":
		return geometry.NewPlane(vec3(c.Target.Point), vec3(c.Target.Normal)), true
	case "sphere":
		return geometry.NewSphere(vec3(c.Target.Center), c.Target.Radius), true
	default:
		return nil, false
	}
}

// StartPosition returns the configured start position.
func (c *RunConfig) StartPosition() geometry.Vec3 {
	return vec3(c.Start.Position)
}

// StartDirection returns the configured start direction, normalized.
func (c *RunConfig) StartDirection() geometry.Vec3 {
	return vec3(c.Start.Direction).Unit()
}

// FieldVector returns the configured magnetic field.
func (c *RunConfig) FieldVector() geometry.Vec3 {
	return vec3(c.Stepper.Field)
}
