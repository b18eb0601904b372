package logging

import (
	"strconv"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for propagation logging.

// CallID adds a propagation call ID field.
func CallID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("call_id", id)
	}
}

// DirectionField adds a propagation direction field.
func DirectionField(d propagation.Direction) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("direction", d.String())
	}
}

// StatusField adds a status field.
func StatusField(s propagation.Status) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("status", s.String())
	}
}

// TerminationField adds a termination cause field.
func TerminationField(t propagation.Termination) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("termination", t.String())
	}
}

// Steps adds a step count field.
func Steps(n uint) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("steps", int64(n))
	}
}

// MaxSteps adds a step budget field.
func MaxSteps(n uint) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("max_steps", int64(n))
	}
}

// PathLength adds a signed path length field.
func PathLength(l float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path_length", formatLength(l))
	}
}

// StepSize adds a signed step size field.
func StepSize(s float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("step_size", formatLength(s))
	}
}

// Distance adds a distance-to-target field.
func Distance(d float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("distance", formatLength(d))
	}
}

// Position adds a position field.
func Position(p geometry.Vec3) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("position", p.String())
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// DurationNs adds a duration field in nanoseconds.
func DurationNs(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ns", d.Nanoseconds())
	}
}

// Targeted adds a field marking surface-targeted propagation.
func Targeted(targeted bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("targeted", targeted)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Str adds an arbitrary string field.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
