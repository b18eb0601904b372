package propagation

import (
	"fmt"
	"reflect"
)

// Action is a per-step side-effect hook. It runs once after every step, may
// mutate the cache, and may write into the result's extension payload under
// its own key.
type Action[P any, C Cache] interface {
	// Key names the extension payload slot this action writes to.
	Key() string

	// Operate is invoked once per step with the current cache and result.
	Operate(cache C, result *Result[P])
}

// ActionList is an ordered collection of actions, fixed before the call. A
// list holds at most one instance of a given concrete action type, so a
// configured instance can be looked up by its type.
type ActionList[P any, C Cache] struct {
	actions []Action[P, C]
}

// NewActionList creates a list from the given actions in order.
func NewActionList[P any, C Cache](actions ...Action[P, C]) (*ActionList[P, C], error) {
	l := &ActionList[P, C]{}
	for _, a := range actions {
		if err := l.Use(a); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Use appends an action to the list. Adding a second instance of the same
// concrete type is an error.
func (l *ActionList[P, C]) Use(a Action[P, C]) error {
	t := reflect.TypeOf(a)
	for _, existing := range l.actions {
		if reflect.TypeOf(existing) == t {
			return fmt.Errorf("%w: action %s", ErrDuplicateEntry, t)
		}
	}
	l.actions = append(l.actions, a)
	return nil
}

// Run invokes every action in insertion order. Order matters: later actions
// may depend on earlier ones having updated the cache.
func (l *ActionList[P, C]) Run(cache C, result *Result[P]) {
	if l == nil {
		return
	}
	for _, a := range l.actions {
		a.Operate(cache, result)
	}
}

// Len returns the number of actions in the list.
func (l *ActionList[P, C]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.actions)
}

// Clone returns a shallow copy sharing the same configured action instances.
func (l *ActionList[P, C]) Clone() *ActionList[P, C] {
	clone := &ActionList[P, C]{actions: make([]Action[P, C], len(l.actions))}
	copy(clone.actions, l.actions)
	return clone
}

// LookupAction returns the list entry of concrete type A, for configuring an
// action before the call.
func LookupAction[A Action[P, C], P any, C Cache](l *ActionList[P, C]) (A, bool) {
	var zero A
	if l == nil {
		return zero, false
	}
	for _, entry := range l.actions {
		if a, ok := entry.(A); ok {
			return a, true
		}
	}
	return zero, false
}
