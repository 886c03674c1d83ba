package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/roach88/gatesimp/internal/compiler"
	"github.com/roach88/gatesimp/internal/ir"
)

// LoadError represents an error that occurred while loading a problem.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadProblem reads and compiles the problem at path without validating
// it. Failures are returned as *LoadError.
func LoadProblem(path string) (*ir.Problem, error) {
	p, err := compiler.LoadProblem(path)
	if err != nil {
		return nil, convertLoadError(err, path)
	}
	return p, nil
}

// BuildProblem loads, validates and builds the problem at path.
// Load failures are *LoadError; validation failures are
// compiler.ValidationErrors.
func BuildProblem(path string) (*compiler.Compiled, error) {
	p, err := LoadProblem(path)
	if err != nil {
		return nil, err
	}
	c, err := compiler.Build(p)
	if err != nil {
		var verrs compiler.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	}
	return c, nil
}

// convertLoadError maps a compiler load error to a LoadError with position info.
func convertLoadError(err error, path string) *LoadError {
	if os.IsNotExist(err) {
		return &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("problem not found: %s", path)}
	}
	if errors.Is(err, compiler.ErrUnsupportedFile) {
		return &LoadError{Code: ErrCodeUnsupported, Message: err.Error()}
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: fmt.Sprintf("%s: %v", path, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeUnsupported = "E003" // Not a .cue/.yaml file or directory
	ErrCodeLoadFailed  = "E004" // CUE or YAML load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Registry or rule construction failed
	ErrCodeStoreFailed = "E007" // Database open/read/write error
	ErrCodeBadSequence = "E008" // Input sequence does not resolve
	ErrCodeVerify      = "E009" // Matrix verification failed

	// Schema errors raised while compiling a problem value
	ErrCodeSchema   = "E010" // CUE value does not satisfy #Problem
	ErrCodeRuleKind = "E011" // Rule kind missing or invalid
	ErrCodeMatrix   = "E012" // Matrix entry malformed
)

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "cue":
		return ErrCodeSchema
	case strings.HasSuffix(field, ".kind"):
		return ErrCodeRuleKind
	case strings.HasSuffix(field, ".matrix"):
		return ErrCodeMatrix
	default:
		return ErrCodeLoadFailed
	}
}
