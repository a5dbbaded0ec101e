package provider

import "fmt"

// InternalError reports that the index violated one of its own invariants.
// It is fatal to the compilation unit being resolved: repeating the query
// against the same provider yields the same error.
type InternalError struct {
	// Op is the provider operation that detected the problem.
	Op string
	// Msg describes the violated invariant.
	Msg string
}

func newInternalError(op, format string, args ...any) *InternalError {
	return &InternalError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error (%s): %s", e.Op, e.Msg)
}
