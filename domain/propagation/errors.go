package propagation

import "errors"

// Domain errors for the propagation engine.
var (
	// ErrInvalidOptions indicates the options aggregate failed validation.
	ErrInvalidOptions = errors.New("invalid propagation options")

	// ErrDuplicateEntry indicates a second instance of an action or aborter
	// type was added to a list.
	ErrDuplicateEntry = errors.New("duplicate list entry type")

	// ErrStartOutOfBounds indicates the start state already violated an
	// internal stopping condition before any stepping occurred.
	ErrStartOutOfBounds = errors.New("start state violates stopping condition")

	// ErrStepFailed indicates the stepping implementation reported an error.
	ErrStepFailed = errors.New("propagation step failed")

	// ErrPayloadMissing indicates a result extension payload was requested
	// that no action produced.
	ErrPayloadMissing = errors.New("result payload not present")

	// ErrPayloadType indicates a result extension payload holds a different
	// type than requested.
	ErrPayloadType = errors.New("result payload type mismatch")

	// ErrNoIntersection indicates a target surface is not intersected by the
	// final state's trajectory.
	ErrNoIntersection = errors.New("target surface not intersected")
)
