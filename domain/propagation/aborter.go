package propagation

import (
	"fmt"
	"reflect"
)

// Aborter is a per-step stopping predicate. It must be idempotent for the
// same step state and must not have observable side effects beyond its own
// bookkeeping; the loop stops as soon as any aborter returns true.
type Aborter[P any, C Cache] interface {
	// Evaluate reports whether propagation should stop at the current step.
	Evaluate(result *Result[P], cache C) bool
}

// AbortList is an ordered collection of aborters, fixed before the call, with
// at most one instance per concrete aborter type.
type AbortList[P any, C Cache] struct {
	aborters []Aborter[P, C]
}

// NewAbortList creates a list from the given aborters in order.
func NewAbortList[P any, C Cache](aborters ...Aborter[P, C]) (*AbortList[P, C], error) {
	l := &AbortList[P, C]{}
	for _, a := range aborters {
		if err := l.Use(a); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Use appends an aborter to the list. Adding a second instance of the same
// concrete type is an error.
func (l *AbortList[P, C]) Use(a Aborter[P, C]) error {
	t := reflect.TypeOf(a)
	for _, existing := range l.aborters {
		if reflect.TypeOf(existing) == t {
			return fmt.Errorf("%w: aborter %s", ErrDuplicateEntry, t)
		}
	}
	l.aborters = append(l.aborters, a)
	return nil
}

// Evaluate runs the aborters in insertion order and reports whether any
// fired. Evaluation short-circuits on the first true.
func (l *AbortList[P, C]) Evaluate(result *Result[P], cache C) bool {
	if l == nil {
		return false
	}
	for _, a := range l.aborters {
		if a.Evaluate(result, cache) {
			return true
		}
	}
	return false
}

// Len returns the number of aborters in the list.
func (l *AbortList[P, C]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.aborters)
}

// Clone returns a shallow copy sharing the same configured aborter instances.
func (l *AbortList[P, C]) Clone() *AbortList[P, C] {
	clone := &AbortList[P, C]{aborters: make([]Aborter[P, C], len(l.aborters))}
	copy(clone.aborters, l.aborters)
	return clone
}

// LookupAborter returns the list entry of concrete type A, for configuring an
// aborter before the call.
func LookupAborter[A Aborter[P, C], P any, C Cache](l *AbortList[P, C]) (A, bool) {
	var zero A
	if l == nil {
		return zero, false
	}
	for _, entry := range l.aborters {
		if a, ok := entry.(A); ok {
			return a, true
		}
	}
	return zero, false
}
