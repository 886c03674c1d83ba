package compiler

import (
	"fmt"

	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/rules"
)

// ShadowWarning reports a rule that an earlier rule pre-empts.
//
// Shadowing is a warning, not an error: the later rule can still fire when
// its window is produced mid-pass, after the earlier rule was tested. In
// the common case it is dead configuration or a priority mistake.
type ShadowWarning struct {
	RuleID     string `json:"rule_id"`
	ShadowedBy string `json:"shadowed_by"`
	Message    string `json:"message"`
}

// AnalyzeShadowing finds rules with a literal pattern (self_inverse and
// fixed_pattern) whose pattern ends in a window an earlier rule already
// matches. When the scratch window ends in such a pattern the earlier rule
// fires first and breaks it up.
//
// Returns an empty slice when nothing is shadowed.
func AnalyzeShadowing(rs []*rules.Rule) []ShadowWarning {
	warnings := []ShadowWarning{}

	for i, r := range rs {
		pattern := literalPattern(r)
		if pattern == nil {
			continue
		}
		window := symbolicWindow(pattern)

		for _, earlier := range rs[:i] {
			k := earlier.Arity()
			if k > len(window) {
				continue
			}
			if fired, _ := earlier.Apply(window[len(window)-k:]); fired {
				warnings = append(warnings, ShadowWarning{
					RuleID:     r.ID(),
					ShadowedBy: earlier.ID(),
					Message: fmt.Sprintf("rule %s fires on the last %d operators of %s first",
						earlier.ID(), k, ir.JoinSymbols(pattern, " ")),
				})
				break
			}
		}
	}
	return warnings
}

func literalPattern(r *rules.Rule) []ir.Symbol {
	switch r.Kind() {
	case rules.KindSelfInverse:
		return []ir.Symbol{r.Target(), r.Target()}
	case rules.KindFixedPattern:
		return r.Pattern()
	}
	return nil
}

func symbolicWindow(syms []ir.Symbol) ir.Sequence {
	out := make(ir.Sequence, len(syms))
	for i, s := range syms {
		out[i] = ir.NewSymbolic(s)
	}
	return out
}
