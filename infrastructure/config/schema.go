// Package config provides configuration loading and parsing for propagation
// runs.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
)

// Configuration errors.
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidFormat indicates the configuration could not be parsed.
	ErrInvalidFormat = errors.New("invalid configuration format")

	// ErrUnsupportedFormat indicates an unknown configuration file format.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")

	// ErrValidationFailed indicates the configuration failed validation.
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrMissingEnvVar indicates a referenced environment variable is not set.
	ErrMissingEnvVar = errors.New("missing environment variable")
)

// RunConfig describes one propagation run: logging, the numeric limits, the
// stepper, the start parameters, and an optional target surface.
type RunConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `yaml:"name" json:"name"`

	// Description describes the run's purpose.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Logging configures structured log output.
	Logging LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty"`

	// Propagation configures the engine limits.
	Propagation PropagationConfig `yaml:"propagation,omitempty" json:"propagation,omitempty"`

	// Stepper selects and configures the stepping implementation.
	Stepper StepperConfig `yaml:"stepper" json:"stepper"`

	// Start is the initial track state.
	Start StartConfig `yaml:"start" json:"start"`

	// Target optionally selects a target surface.
	Target *TargetConfig `yaml:"target,omitempty" json:"target,omitempty"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// PropagationConfig configures the engine limits. Zero values fall back to
// the engine defaults.
type PropagationConfig struct {
	// Direction is "forward" or "backward".
	Direction string `yaml:"direction,omitempty" json:"direction,omitempty"`

	// MaxSteps bounds the number of steps.
	MaxSteps uint `yaml:"max_steps,omitempty" json:"max_steps,omitempty"`

	// TargetTolerance is the reach tolerance in mm.
	TargetTolerance float64 `yaml:"target_tolerance,omitempty" json:"target_tolerance,omitempty"`

	// MaxStepSize is the absolute maximum step size in mm.
	MaxStepSize float64 `yaml:"max_step_size,omitempty" json:"max_step_size,omitempty"`

	// MaxPathLength is the absolute maximum path length in mm; zero means
	// unbounded.
	MaxPathLength float64 `yaml:"max_path_length,omitempty" json:"max_path_length,omitempty"`
}

// StepperConfig selects the stepping implementation.
type StepperConfig struct {
	// Type is "line" or "helix".
	Type string `yaml:"type" json:"type"`

	// Field is the uniform magnetic field vector in Tesla, helix only.
	Field [3]float64 `yaml:"field,omitempty" json:"field,omitempty"`
}

// StartConfig is the initial track state.
type StartConfig struct {
	Position  [3]float64 `yaml:"position" json:"position"`
	Direction [3]float64 `yaml:"direction" json:"direction"`
	Momentum  float64    `yaml:"momentum,omitempty" json:"momentum,omitempty"`
	Charge    float64    `yaml:"charge,omitempty" json:"charge,omitempty"`
}

// TargetConfig selects a target surface.
type TargetConfig struct {
	// Type is "plane" or "sphere".
	Type string `yaml:"type" json:"type"`

	// Point is a point on the plane.
	Point [3]float64 `yaml:"point,omitempty" json:"point,omitempty"`

	// Normal is the plane normal.
	Normal [3]float64 `yaml:"normal,omitempty" json:"normal,omitempty"`

	// Center is the sphere center.
	Center [3]float64 `yaml:"center,omitempty" json:"center,omitempty"`

	// Radius is the sphere radius.
	Radius float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
}

// Validate checks the configuration for structural errors.
func (c *RunConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}

	switch c.Propagation.Direction {
	case "", "forward", "backward":
	default:
		return fmt.Errorf("%w: direction must be forward or backward, got %q", ErrValidationFailed, c.Propagation.Direction)
	}
	if c.Propagation.TargetTolerance < 0 {
		return fmt.Errorf("%w: target_tolerance must not be negative", ErrValidationFailed)
	}
	if c.Propagation.MaxStepSize < 0 {
		return fmt.Errorf("%w: max_step_size must not be negative", ErrValidationFailed)
	}
	if c.Propagation.MaxPathLength < 0 {
		return fmt.Errorf("%w: max_path_length must not be negative", ErrValidationFailed)
	}

	switch c.Stepper.Type {
	case "line", "helix":
	default:
		return fmt.Errorf("%w: stepper type must be line or helix, got %q", ErrValidationFailed, c.Stepper.Type)
	}

	if vec3(c.Start.Direction).IsZero() {
		return fmt.Errorf("%w: start direction must not be zero", ErrValidationFailed)
	}

	if c.Target != nil {
		switch c.Target.Type {
		case "plane":
			if vec3(c.Target.Normal).IsZero() {
				return fmt.Errorf("%w: plane normal must not be zero", ErrValidationFailed)
			}
		case "sphere":
			if c.Target.Radius <= 0 {
				return fmt.Errorf("%w: sphere radius must be positive", ErrValidationFailed)
			}
		default:
			return fmt.Errorf("%w: target type must be plane or sphere, got %q", ErrValidationFailed, c.Target.Type)
		}
	}

	return nil
}

// Direction returns the configured propagation direction.
func (c *PropagationConfig) DirectionValue() propagation.Direction {
	if c.Direction == "backward" {
		return propagation.Backward
	}
	return propagation.Forward
}

// MaxPathLengthValue returns the configured path limit, unbounded when zero.
func (c *PropagationConfig) MaxPathLengthValue() float64 {
	if c.MaxPathLength == 0 {
		return math.Inf(1)
	}
	return c.MaxPathLength
}

func vec3(v [3]float64) geometry.Vec3 {
	return geometry.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
