// Package propagation provides the domain model for the propagation engine:
// direction and status enumerations, the extensible result container, the
// options aggregate, the action/abort hook contracts with their ordered list
// composition, and the stepper/surface capability ports.
package propagation

// Direction is the propagation direction relative to momentum. Its numeric
// value multiplies step sizes and path limits, so all signed accumulation
// within one call stays consistent with it.
type Direction int

const (
	// Backward propagates against the momentum direction.
	Backward Direction = -1
	// Forward propagates along the momentum direction.
	Forward Direction = 1
)

// Sign returns the direction as a signed factor, +1 or -1.
func (d Direction) Sign() float64 {
	return float64(d)
}

// Valid reports whether d is one of the two defined directions.
func (d Direction) Valid() bool {
	return d == Forward || d == Backward
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "invalid"
	}
}
