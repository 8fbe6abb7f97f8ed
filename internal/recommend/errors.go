package recommend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is returned when an operation is not defined for the
// current step, or an answer is not a valid token there.
var ErrInvalidTransition = errors.New("invalid transition")

// TransitionError describes a rejected operation. It unwraps to
// ErrInvalidTransition.
type TransitionError struct {
	Op     string
	Step   Step
	Goal   Goal
	Value  string
	Reason string
}

func (e *TransitionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s", e.Op, e.Step)
	if e.Goal != NoGoal {
		fmt.Fprintf(&b, " (goal %s)", e.Goal)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " with %q", e.Value)
	}
	fmt.Fprintf(&b, ": %s: %s", ErrInvalidTransition, e.Reason)
	return b.String()
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
