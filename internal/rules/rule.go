package rules

import (
	"slices"

	"github.com/roach88/gatesimp/internal/ir"
)

// Rule is one rewrite rule. The zero value is not usable; build rules
// with a Factory.
//
// Rules are immutable after construction and safe for concurrent use.
type Rule struct {
	id     string
	kind   Kind
	arity  int
	result ir.Symbol // identity symbol
	marker string    // adjoint marker, KindAdjoint only

	target  ir.Symbol   // KindSelfInverse only
	pattern []ir.Symbol // KindFixedPattern only
}

// ID returns the rule identifier used in traces and stored firings.
func (r *Rule) ID() string { return r.id }

// Kind returns the rule variant.
func (r *Rule) Kind() Kind { return r.kind }

// Arity returns the window length the rule matches. Always >= 2.
func (r *Rule) Arity() int { return r.arity }

// Result returns the symbol of the operator produced on firing. For
// identity rules the survivor keeps its own name; Result still reports
// the identity symbol the rule elides.
func (r *Rule) Result() ir.Symbol { return r.result }

// Target returns the self-inverse symbol, empty for other kinds.
func (r *Rule) Target() ir.Symbol { return r.target }

// Pattern returns a copy of the fixed pattern, nil for other kinds.
func (r *Rule) Pattern() []ir.Symbol { return slices.Clone(r.pattern) }

// Spec returns the configuration form of the rule.
func (r *Rule) Spec() ir.RuleSpec {
	spec := ir.RuleSpec{ID: r.id, Kind: r.kind.String(), Result: r.result}
	switch r.kind {
	case KindSelfInverse:
		spec.Operands = []ir.Symbol{r.target}
	case KindFixedPattern:
		spec.Operands = slices.Clone(r.pattern)
	}
	return spec
}

// Slogan renders the relation the rule encodes, e.g. "H H = I".
func (r *Rule) Slogan() string {
	switch r.kind {
	case KindIdentity:
		return string(r.result) + " x = x"
	case KindSelfInverse:
		return string(r.target) + " " + string(r.target) + " = " + string(r.result)
	case KindAdjoint:
		return "x x" + r.marker + " = " + string(r.result)
	case KindFixedPattern:
		return ir.JoinSymbols(r.pattern, " ") + " = " + string(r.result)
	}
	return ""
}

// Apply tests window against the rule. When the rule fires it returns the
// replacement to splice in place of window; otherwise it returns window
// unchanged. A window whose length differs from Arity never fires.
func (r *Rule) Apply(window ir.Sequence) (bool, ir.Sequence) {
	if len(window) != r.arity {
		return false, window
	}

	switch r.kind {
	case KindIdentity:
		if window[0].Name == r.result {
			return true, ir.Sequence{window[1]}
		}
		if window[1].Name == r.result {
			return true, ir.Sequence{window[0]}
		}

	case KindSelfInverse:
		if window[0].Name == r.target && window[1].Name == r.target {
			return true, r.identityFor(window)
		}

	case KindAdjoint:
		if ir.IsAdjointPair(window[0].Name, window[1].Name, r.marker) {
			return true, r.identityFor(window)
		}

	case KindFixedPattern:
		for i, op := range window {
			if op.Name != r.pattern[i] {
				return false, window
			}
		}
		return true, r.identityFor(window)
	}

	return false, window
}

// identityFor builds the one-element identity replacement sized to the
// window's first operand.
func (r *Rule) identityFor(window ir.Sequence) ir.Sequence {
	return ir.Sequence{ir.Identity(window[0].Dim(), r.result)}
}
