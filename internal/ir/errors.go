package ir

import (
	"errors"
	"fmt"
)

// ConfigError is a setup-time error: a bad rule, a bad generator catalog,
// or a sequence that references something the catalog does not define.
// These are caller bugs, never transient conditions; there is nothing to
// retry.
type ConfigError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Subject names the offending rule ID or symbol, if any.
	Subject string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes configuration errors.
type ErrorCode string

const (
	// ErrCodeUnknownRuleKind indicates a rule kind outside the closed set.
	ErrCodeUnknownRuleKind ErrorCode = "UNKNOWN_RULE_KIND"

	// ErrCodeInvalidArity indicates a rule arity below 2.
	ErrCodeInvalidArity ErrorCode = "INVALID_ARITY"

	// ErrCodeInvalidOperands indicates operands that don't fit the rule kind.
	ErrCodeInvalidOperands ErrorCode = "INVALID_OPERANDS"

	// ErrCodeNilRule indicates a nil entry in a rule set.
	ErrCodeNilRule ErrorCode = "NIL_RULE"

	// ErrCodeDuplicateRule indicates two rules sharing an ID.
	ErrCodeDuplicateRule ErrorCode = "DUPLICATE_RULE"

	// ErrCodeDimensionMismatch indicates generators of different dimension.
	ErrCodeDimensionMismatch ErrorCode = "DIMENSION_MISMATCH"

	// ErrCodeNotSquare indicates a missing or non-square generator matrix.
	ErrCodeNotSquare ErrorCode = "NOT_SQUARE"

	// ErrCodeEmptyCatalog indicates a lookup against a catalog with no generators.
	ErrCodeEmptyCatalog ErrorCode = "EMPTY_CATALOG"

	// ErrCodeUnknownSymbol indicates a symbol the catalog does not define.
	ErrCodeUnknownSymbol ErrorCode = "UNKNOWN_SYMBOL"

	// ErrCodeDuplicateSymbol indicates a generator registered twice.
	ErrCodeDuplicateSymbol ErrorCode = "DUPLICATE_SYMBOL"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigError creates a ConfigError.
func NewConfigError(code ErrorCode, subject, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Subject: subject,
	}
}

// IsConfigError returns true if err wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// HasCode returns true if err wraps a ConfigError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
