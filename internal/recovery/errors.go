package recovery

import (
	"fmt"

	"github.com/pkg/errors"
)

// invariantError marks a programming-bug condition per spec §7: an empty
// stack popped, a Terminator reached where a repair was expected, cost
// arithmetic overflow. These are never recovered from inside this package.
// cmd/recoverdemo's main recovers at its own boundary only to panic again
// with an "unrecoverable panic occurred" prefix.
type invariantError struct {
	cause error
}

func (e *invariantError) Error() string {
	return e.cause.Error()
}

func (e *invariantError) Unwrap() error {
	return e.cause
}

// newInvariantError builds an invariantError with a stack trace attached at
// the point of detection (via github.com/pkg/errors), formatted the way
// fmt.Errorf is.
func newInvariantError(format string, args ...interface{}) error {
	return &invariantError{cause: errors.Wrap(fmt.Errorf(format, args...), "recovery: invariant violation")}
}
