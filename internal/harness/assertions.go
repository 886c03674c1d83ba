package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/gatesimp/internal/engine"
	"github.com/roach88/gatesimp/internal/ir"
)

// Check names, used in AssertionError.Check.
const (
	CheckRemoved          = "removed"
	CheckResult           = "result"
	CheckFired            = "fired"
	CheckLengthAccounting = "length_accounting"
	CheckFiringAccounting = "firing_accounting"
	CheckIdempotent       = "idempotent"
)

// AssertionError is returned when a check fails.
// It includes the firing trace to help debug the failure.
type AssertionError struct {
	Case     string
	Check    string
	Expected string
	Actual   string
	Firings  []ir.Firing
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "%s: check failed: %s\n", e.Case, e.Check)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Firings) > 0 {
		fmt.Fprintf(&buf, "\nFirings:\n")
		for _, f := range e.Firings {
			fmt.Fprintf(&buf, "  [%d] %s: %s -> %s\n", f.Seq, f.RuleID,
				ir.JoinSymbols(f.Window, " "), ir.JoinSymbols(f.Replacement, " "))
		}
	}

	return buf.String()
}

// checkExpect compares a case outcome against its expectations.
func checkExpect(c CaseResult, exp *Expect) []error {
	if exp == nil {
		return nil
	}
	var errs []error

	if exp.Removed != nil && *exp.Removed != c.Removed {
		errs = append(errs, &AssertionError{
			Case: c.Name, Check: CheckRemoved,
			Expected: fmt.Sprintf("%d", *exp.Removed),
			Actual:   fmt.Sprintf("%d", c.Removed),
			Firings:  c.Firings,
		})
	}

	if exp.Result != nil && !slices.Equal([]ir.Symbol(*exp.Result), c.Output) {
		errs = append(errs, &AssertionError{
			Case: c.Name, Check: CheckResult,
			Expected: formatSymbols(*exp.Result),
			Actual:   formatSymbols(c.Output),
			Firings:  c.Firings,
		})
	}

	if exp.Fired != nil && !slices.Equal(*exp.Fired, c.Fired()) {
		errs = append(errs, &AssertionError{
			Case: c.Name, Check: CheckFired,
			Expected: fmt.Sprintf("%v", *exp.Fired),
			Actual:   fmt.Sprintf("%v", c.Fired()),
			Firings:  c.Firings,
		})
	}

	return errs
}

// checkProperties verifies the properties every run must satisfy,
// whatever the scenario expects.
func checkProperties(eng *engine.Engine, c CaseResult, out ir.Sequence) []error {
	var errs []error

	if len(c.Input) != len(c.Output)+c.Removed || c.Removed < 0 {
		errs = append(errs, &AssertionError{
			Case: c.Name, Check: CheckLengthAccounting,
			Expected: fmt.Sprintf("len(input)=%d = len(output)+removed", len(c.Input)),
			Actual:   fmt.Sprintf("len(output)=%d removed=%d", len(c.Output), c.Removed),
			Firings:  c.Firings,
		})
	}

	shrink := 0
	for _, f := range c.Firings {
		shrink += len(f.Window) - len(f.Replacement)
	}
	if shrink != c.Removed {
		errs = append(errs, &AssertionError{
			Case: c.Name, Check: CheckFiringAccounting,
			Expected: fmt.Sprintf("firings remove %d operators", c.Removed),
			Actual:   fmt.Sprintf("firings remove %d operators", shrink),
			Firings:  c.Firings,
		})
	}

	again, second := eng.Simplify(out)
	if again != 0 || !slices.Equal(second.Names(), c.Output) {
		errs = append(errs, &AssertionError{
			Case: c.Name, Check: CheckIdempotent,
			Expected: fmt.Sprintf("0 removed, %s", formatSymbols(c.Output)),
			Actual:   fmt.Sprintf("%d removed, %s", again, formatSymbols(second.Names())),
			Firings:  c.Firings,
		})
	}

	return errs
}

func formatSymbols(syms []ir.Symbol) string {
	return "[" + ir.JoinSymbols(syms, " ") + "]"
}
