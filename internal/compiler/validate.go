package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/gatesimp/internal/catalog"
	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/rules"
)

// Validation error codes (E100-E199)
const (
	// Problem conventions (E100-E109)
	ErrIdentityEmpty    = "E101" // identity symbol is empty
	ErrMarkerEmpty      = "E102" // adjoint marker is empty
	ErrNoGenerators     = "E103" // no catalog and no generators
	ErrUnknownCatalog   = "E104" // catalog names no builtin set
	ErrDuplicateName    = "E105" // generator name used twice
	ErrMatrixShape      = "E106" // ragged, non-square or mismatched matrix
	ErrIdentityShadowed = "E107" // generator named like the identity symbol

	// Rule errors (E110-E119)
	ErrUnknownRuleKind = "E110" // kind outside the closed set
	ErrRuleOperands    = "E111" // operands do not fit the kind
	ErrDuplicateRuleID = "E112" // two rules share an ID
	ErrUnknownSymbol   = "E113" // rule operand not in the catalog
)

// ValidationError represents a problem validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a parsed problem. Returns all errors found (does not
// fail-fast); an empty result means Build will succeed.
func Validate(p *ir.Problem) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(string(p.Identity)) == "" {
		errs = append(errs, ValidationError{
			Field: "identity", Code: ErrIdentityEmpty,
			Message: "identity symbol must be non-empty",
		})
	}
	if p.AdjointMarker == "" {
		errs = append(errs, ValidationError{
			Field: "adjoint_marker", Code: ErrMarkerEmpty,
			Message: "adjoint marker must be non-empty",
		})
	}

	known, catErrs := validateGenerators(p)
	errs = append(errs, catErrs...)
	errs = append(errs, validateRules(p, known)...)

	return errs
}

// validateGenerators checks the catalog section and returns the set of
// symbols rules may reference.
func validateGenerators(p *ir.Problem) (map[ir.Symbol]bool, []ValidationError) {
	var errs []ValidationError
	known := map[ir.Symbol]bool{p.Identity: true}
	dim := 0

	if p.Catalog != "" {
		reg, err := catalog.Builtin(p.Catalog, p.Identity, p.AdjointMarker)
		if err != nil {
			errs = append(errs, ValidationError{
				Field: "catalog", Code: ErrUnknownCatalog,
				Message: fmt.Sprintf("unknown catalog %q, known: %s", p.Catalog, strings.Join(catalog.BuiltinNames(), ", ")),
			})
		} else {
			for _, sym := range reg.Ordered() {
				known[sym] = true
			}
			dim = reg.Dim()
		}
	}

	if p.Catalog == "" && len(p.Generators) == 0 {
		errs = append(errs, ValidationError{
			Field: "generator", Code: ErrNoGenerators,
			Message: "problem needs a catalog or at least one generator",
		})
	}

	for _, g := range p.Generators {
		field := "generator." + string(g.Name)
		if g.Name == p.Identity {
			errs = append(errs, ValidationError{
				Field: field, Code: ErrIdentityShadowed,
				Message: "generator name is the identity symbol",
			})
		}
		if known[g.Name] && g.Name != p.Identity {
			errs = append(errs, ValidationError{
				Field: field, Code: ErrDuplicateName,
				Message: "generator name already defined",
			})
		}
		known[g.Name] = true

		n := len(g.Rows)
		if n == 0 {
			errs = append(errs, ValidationError{
				Field: field + ".matrix", Code: ErrMatrixShape,
				Message: "matrix is empty",
			})
			continue
		}
		square := true
		for _, row := range g.Rows {
			if len(row) != n {
				square = false
				break
			}
		}
		if !square {
			errs = append(errs, ValidationError{
				Field: field + ".matrix", Code: ErrMatrixShape,
				Message: fmt.Sprintf("matrix must be square, got %d rows of unequal or mismatched length", n),
			})
			continue
		}
		if dim == 0 {
			dim = n
		} else if n != dim {
			errs = append(errs, ValidationError{
				Field: field + ".matrix", Code: ErrMatrixShape,
				Message: fmt.Sprintf("matrix is %dx%d, catalog dimension is %d", n, n, dim),
			})
		}
	}

	return known, errs
}

func validateRules(p *ir.Problem, known map[ir.Symbol]bool) []ValidationError {
	var errs []ValidationError
	factory := rules.NewFactory(p.Identity, p.AdjointMarker)
	seen := make(map[string]int)

	for i, spec := range p.Rules {
		field := fmt.Sprintf("rule[%d]", i)

		kind, err := rules.ParseKind(spec.Kind)
		if err != nil {
			errs = append(errs, ValidationError{
				Field: field + ".kind", Code: ErrUnknownRuleKind,
				Message: fmt.Sprintf("unknown rule kind %q", spec.Kind),
			})
			continue
		}

		if kind == rules.KindSelfInverse && len(spec.Operands) != 1 {
			errs = append(errs, ValidationError{
				Field: field, Code: ErrRuleOperands,
				Message: "self_inverse takes a symbol and no pattern",
			})
			continue
		}

		r, err := factory.FromSpec(spec)
		if err != nil {
			errs = append(errs, ValidationError{
				Field: field, Code: ErrRuleOperands,
				Message: err.Error(),
			})
			continue
		}

		if prev, dup := seen[r.ID()]; dup {
			errs = append(errs, ValidationError{
				Field: field + ".id", Code: ErrDuplicateRuleID,
				Message: fmt.Sprintf("rule ID %q already used by rule[%d]", r.ID(), prev),
			})
		} else {
			seen[r.ID()] = i
		}

		for _, sym := range spec.Operands {
			if !known[sym] {
				errs = append(errs, ValidationError{
					Field: field, Code: ErrUnknownSymbol,
					Message: fmt.Sprintf("symbol %q is not in the catalog", sym),
				})
			}
		}
	}
	return errs
}
