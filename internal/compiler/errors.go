package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError is a problem-definition error tied to a field path, and to
// a source position when the definition came from CUE.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos

	// More counts further CUE errors reported alongside this one.
	More int
}

func (e *CompileError) Error() string {
	msg := e.Field + ": " + e.Message
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), msg)
	}
	if e.More > 0 {
		msg += fmt.Sprintf(" (and %d more)", e.More)
	}
	return msg
}

// fieldError reports a problem with field, positioned at v.
func fieldError(v cue.Value, field, format string, args ...any) *CompileError {
	return &CompileError{Field: field, Message: fmt.Sprintf(format, args...), Pos: v.Pos()}
}

// formatCUEError turns a CUE error list into a CompileError positioned at
// the first error that carries a position. Errors without any position
// are returned unchanged.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	list := cueerrors.Errors(err)
	for i, e := range list {
		pos := cueerrors.Positions(e)
		if len(pos) == 0 {
			continue
		}
		return &CompileError{
			Field:   "cue",
			Message: e.Error(),
			Pos:     pos[0],
			More:    len(list) - i - 1,
		}
	}
	return err
}
