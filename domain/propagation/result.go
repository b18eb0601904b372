package propagation

import "fmt"

// Result holds the outcome of one propagation call: the converted end
// parameters, the status and termination cause, step and path-length
// accounting, and the extension payloads contributed by actions.
//
// A result is created at the start of a call, mutated only inside that call's
// stepping loop, and returned by value. It is never shared afterwards.
type Result[P any] struct {
	// EndParameters is the converted final state. It is nil unless the call
	// reached conversion.
	EndParameters *P

	// Status classifies the outcome.
	Status Status

	// Termination records which bound ended the loop.
	Termination Termination

	// Steps is the number of propagation steps carried out.
	Steps uint

	// PathLength is the signed distance over which the state was propagated.
	PathLength float64

	// payloads maps action keys to their contributed values. Created lazily
	// on first write.
	payloads map[string]any
}

// NewResult creates a result with the given initial status.
func NewResult[P any](s Status) Result[P] {
	return Result[P]{Status: s, Termination: TerminationNone}
}

// Valid reports whether the propagation produced usable end parameters:
// conversion happened and the status is success.
func (r *Result[P]) Valid() bool {
	return r.EndParameters != nil && r.Status == StatusSuccess
}

// SetPayload stores an extension payload under the given action key.
func (r *Result[P]) SetPayload(key string, value any) {
	if r.payloads == nil {
		r.payloads = make(map[string]any)
	}
	r.payloads[key] = value
}

// Payload returns the extension payload stored under key.
func (r *Result[P]) Payload(key string) (any, bool) {
	v, ok := r.payloads[key]
	return v, ok
}

// HasPayload reports whether an extension payload exists under key.
func (r *Result[P]) HasPayload(key string) bool {
	_, ok := r.payloads[key]
	return ok
}

// PayloadAs returns the extension payload under key asserted to type T. It
// fails fast when the payload is absent or holds a different type; absence
// means the producing action was not part of the call's action list.
func PayloadAs[T any, P any](r *Result[P], key string) (T, error) {
	var zero T
	v, ok := r.payloads[key]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrPayloadMissing, key)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T", ErrPayloadType, key, v)
	}
	return t, nil
}
