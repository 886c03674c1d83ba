package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gatesimp/internal/ir"
)

func validProblem() *ir.Problem {
	return &ir.Problem{
		Identity:      "I",
		AdjointMarker: "d",
		Catalog:       "clifford_t",
		Generators: []ir.GeneratorSpec{
			{Name: "S", Rows: [][]complex128{{1, 0}, {0, 1i}}},
		},
		Rules: []ir.RuleSpec{
			{Kind: "fixed_pattern", Operands: ir.Symbols("S", "S", "S", "S")},
			{Kind: "identity"},
			{Kind: "self_inverse", Operands: ir.Symbols("H")},
			{Kind: "adjoint"},
		},
	}
}

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateValid(t *testing.T) {
	assert.Empty(t, Validate(validProblem()))
}

func TestValidateProblem(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *ir.Problem)
		code   string
	}{
		{"empty identity", func(p *ir.Problem) { p.Identity = " " }, ErrIdentityEmpty},
		{"empty marker", func(p *ir.Problem) { p.AdjointMarker = "" }, ErrMarkerEmpty},
		{"no generators", func(p *ir.Problem) {
			p.Catalog = ""
			p.Generators = nil
			p.Rules = nil
		}, ErrNoGenerators},
		{"unknown catalog", func(p *ir.Problem) { p.Catalog = "su3" }, ErrUnknownCatalog},
		{"duplicate with builtin", func(p *ir.Problem) {
			p.Generators = append(p.Generators, ir.GeneratorSpec{Name: "H", Rows: [][]complex128{{1, 0}, {0, 1}}})
		}, ErrDuplicateName},
		{"ragged matrix", func(p *ir.Problem) {
			p.Generators[0].Rows = [][]complex128{{1, 0}, {0}}
		}, ErrMatrixShape},
		{"empty matrix", func(p *ir.Problem) { p.Generators[0].Rows = nil }, ErrMatrixShape},
		{"dimension mismatch", func(p *ir.Problem) {
			p.Generators[0].Rows = [][]complex128{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		}, ErrMatrixShape},
		{"generator named identity", func(p *ir.Problem) { p.Generators[0].Name = "I" }, ErrIdentityShadowed},
		{"unknown kind", func(p *ir.Problem) { p.Rules[0].Kind = "commute" }, ErrUnknownRuleKind},
		{"self_inverse with pattern", func(p *ir.Problem) {
			p.Rules[2].Operands = ir.Symbols("H", "H")
		}, ErrRuleOperands},
		{"identity with operands", func(p *ir.Problem) {
			p.Rules[1].Operands = ir.Symbols("H")
		}, ErrRuleOperands},
		{"short pattern", func(p *ir.Problem) {
			p.Rules[0].Operands = ir.Symbols("S")
		}, ErrRuleOperands},
		{"duplicate id", func(p *ir.Problem) {
			p.Rules = append(p.Rules, ir.RuleSpec{Kind: "adjoint"})
		}, ErrDuplicateRuleID},
		{"unknown symbol", func(p *ir.Problem) {
			p.Rules[2].Operands = ir.Symbols("Q")
		}, ErrUnknownSymbol},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProblem()
			tc.mutate(p)
			errs := Validate(p)
			require.NotEmpty(t, errs)
			assert.Contains(t, codes(errs), tc.code)
		})
	}
}

func TestValidateIdentityOperandIsKnown(t *testing.T) {
	p := validProblem()
	p.Rules = append(p.Rules, ir.RuleSpec{Kind: "fixed_pattern", Operands: ir.Symbols("I", "S")})
	assert.Empty(t, Validate(p))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	p := validProblem()
	p.Identity = ""
	p.Catalog = "nope"
	p.Rules[0].Kind = "bogus"

	errs := Validate(p)
	assert.GreaterOrEqual(t, len(errs), 3)
}

func TestValidationErrorFormat(t *testing.T) {
	err := ValidationError{Field: "rule[0]", Message: "bad", Code: ErrRuleOperands}
	assert.Equal(t, "[E111] rule[0]: bad", err.Error())

	err.Line = 7
	assert.Equal(t, "[E111] line 7: rule[0]: bad", err.Error())
}
