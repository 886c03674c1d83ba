package engine

import (
	"errors"
	"fmt"
)

// PreconditionError is the panic value raised when the engine would hand a
// rule a window that does not match its arity, or a rule returns a
// replacement that does not shorten its window. Either one is an engine or
// rule bug; Simplify never returns it as an error.
type PreconditionError struct {
	RuleID string
	Arity  int
	Got    int
	Reason string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("engine precondition violated by rule %s: %s (arity=%d, got=%d)",
		e.RuleID, e.Reason, e.Arity, e.Got)
}

// IsPreconditionError returns true if err wraps a PreconditionError.
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
