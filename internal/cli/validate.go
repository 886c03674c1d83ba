package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gatesimp/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                       `json:"valid"`
	Errors      []compiler.ValidationError `json:"errors,omitempty"`
	Warnings    []compiler.ShadowWarning   `json:"warnings,omitempty"`
	RuleSetHash string                     `json:"rule_set_hash,omitempty"`
	Rules       int                        `json:"rules"`
	Generators  int                        `json:"generators"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <problem>",
		Short: "Validate a problem file",
		Long: `Validate a CUE or YAML problem without simplifying anything.

Checks the schema, the generator catalog (square matrices of one
dimension) and every rule's kind and operands. Rules that can never fire
because an earlier rule always consumes their window first are reported
as warnings.

Exit codes:
  0 - Problem is valid (warnings allowed)
  1 - Validation errors
  2 - Problem could not be loaded`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	p, err := LoadProblem(path)
	if err != nil {
		return formatter.Fail(ErrCodeLoadFailed, err)
	}
	formatter.VerboseLog("Loaded %s: %d rule(s), %d generator(s)", path, len(p.Rules), len(p.Generators))

	if errs := compiler.Validate(p); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	c, err := compiler.Build(p)
	if err != nil {
		var verrs compiler.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, verrs)
		}
		return formatter.Fail(ErrCodeBuildFailed, err)
	}

	result := ValidationResult{
		Valid:       true,
		Warnings:    compiler.AnalyzeShadowing(c.Rules),
		RuleSetHash: c.RuleSetHash,
		Rules:       len(c.Rules),
		Generators:  c.Catalog.Len(),
	}
	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.JSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Problem valid (%d rules, %d generators)\n", result.Rules, result.Generators)
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "  ⚠ %s: %s\n", warn.RuleID, warn.Message)
	}
	formatter.VerboseLog("rule set hash: %s", result.RuleSetHash)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs))).reported()

	if formatter.JSON() {
		result := ValidationResult{Valid: false, Errors: errs}
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		return exitErr
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(w, "line %d\n", err.Line)
		}
		fmt.Fprintf(w, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return exitErr
}
