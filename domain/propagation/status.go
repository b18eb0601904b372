package propagation

// Status is the outcome classification of a propagation call.
type Status string

const (
	// StatusUnset is the state of a freshly constructed result. Observing it
	// after a call returns means the stepping loop was never entered.
	StatusUnset Status = "unset"

	// StatusInProgress is the internal signal that the loop has finished and
	// conversion is pending. It must never be returned to a caller.
	StatusInProgress Status = "in_progress"

	// StatusSuccess means the loop completed and the final cache was
	// converted into end parameters.
	StatusSuccess Status = "success"

	// StatusFailure means a precondition was violated before any stepping
	// occurred, or a step itself failed.
	StatusFailure Status = "failure"

	// StatusWrongDirection is reserved for surface-targeted propagation whose
	// travel direction is inconsistent with reaching the target. The engine
	// itself never sets it; it is available to steppers and aborters.
	StatusWrongDirection Status = "wrong_direction"
)

// Terminal reports whether s is a final status.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusWrongDirection:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Termination records which bound ended the stepping loop. It is a diagnostic
// complement to Status: the status taxonomy deliberately does not distinguish
// target-reached from budget exhaustion, the termination cause does.
type Termination string

const (
	// TerminationNone means the loop has not terminated.
	TerminationNone Termination = "none"

	// TerminationAborted means a caller-supplied abort condition fired.
	TerminationAborted Termination = "aborted"

	// TerminationTarget means the target surface was reached within
	// tolerance.
	TerminationTarget Termination = "target"

	// TerminationPathLimit means the accumulated path length reached the
	// configured limit.
	TerminationPathLimit Termination = "path_limit"

	// TerminationMaxSteps means the step budget was exhausted without any
	// abort condition firing.
	TerminationMaxSteps Termination = "max_steps"

	// TerminationStepError means the stepper reported an error and the loop
	// stopped without conversion.
	TerminationStepError Termination = "step_error"
)

// String implements fmt.Stringer.
func (t Termination) String() string {
	return string(t)
}
