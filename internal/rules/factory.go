package rules

import (
	"fmt"

	"github.com/roach88/gatesimp/internal/ir"
)

// Factory builds rules sharing one identity symbol and adjoint marker.
// Empty fields fall back to ir.DefaultIdentity and ir.DefaultAdjointMarker.
type Factory struct {
	IdentitySymbol ir.Symbol
	AdjointMarker  string
}

// NewFactory returns a Factory with the given conventions.
func NewFactory(identity ir.Symbol, marker string) Factory {
	return Factory{IdentitySymbol: identity, AdjointMarker: marker}
}

func (f Factory) identity() ir.Symbol {
	if f.IdentitySymbol == "" {
		return ir.DefaultIdentity
	}
	return f.IdentitySymbol
}

func (f Factory) marker() string {
	if f.AdjointMarker == "" {
		return ir.DefaultAdjointMarker
	}
	return f.AdjointMarker
}

// Make builds a rule of the given kind with a derived ID.
//
// Operands: none for identity and adjoint, exactly one symbol for
// self_inverse, two or more symbols for fixed_pattern.
func (f Factory) Make(kind Kind, operands ...ir.Symbol) (*Rule, error) {
	return f.build("", kind, operands)
}

// FromSpec builds a rule from its configuration form. An empty spec ID is
// replaced by a derived one; a non-empty spec Result overrides the
// factory's identity symbol for this rule.
func (f Factory) FromSpec(spec ir.RuleSpec) (*Rule, error) {
	kind, err := ParseKind(spec.Kind)
	if err != nil {
		return nil, err
	}
	r, err := f.build(spec.ID, kind, spec.Operands)
	if err != nil {
		return nil, err
	}
	if spec.Result != "" {
		r.result = spec.Result
	}
	return r, nil
}

// FromSpecs builds a rule set in declaration order. Duplicate IDs are
// rejected here as well as by the engine so config errors surface early.
func (f Factory) FromSpecs(specs []ir.RuleSpec) ([]*Rule, error) {
	out := make([]*Rule, 0, len(specs))
	seen := make(map[string]int, len(specs))
	for i, spec := range specs {
		r, err := f.FromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("rule[%d]: %w", i, err)
		}
		if prev, dup := seen[r.id]; dup {
			return nil, fmt.Errorf("rule[%d]: %w", i, ir.NewConfigError(ir.ErrCodeDuplicateRule, r.id,
				"rule ID already used by rule[%d]", prev))
		}
		seen[r.id] = i
		out = append(out, r)
	}
	return out, nil
}

func (f Factory) build(id string, kind Kind, operands []ir.Symbol) (*Rule, error) {
	r := &Rule{id: id, kind: kind, result: f.identity()}

	switch kind {
	case KindIdentity:
		if len(operands) != 0 {
			return nil, operandError(kind, "takes no operands", len(operands))
		}
		r.arity = 2

	case KindAdjoint:
		if len(operands) != 0 {
			return nil, operandError(kind, "takes no operands", len(operands))
		}
		r.arity = 2
		r.marker = f.marker()

	case KindSelfInverse:
		if len(operands) != 1 || operands[0] == "" {
			return nil, operandError(kind, "takes exactly one symbol", len(operands))
		}
		r.arity = 2
		r.target = operands[0]

	case KindFixedPattern:
		if len(operands) < 2 {
			return nil, ir.NewConfigError(ir.ErrCodeInvalidArity, id,
				"fixed_pattern needs at least 2 symbols, got %d", len(operands))
		}
		for i, sym := range operands {
			if sym == "" {
				return nil, ir.NewConfigError(ir.ErrCodeInvalidOperands, id,
					"fixed_pattern symbol %d is empty", i)
			}
		}
		r.arity = len(operands)
		r.pattern = append([]ir.Symbol(nil), operands...)

	default:
		return nil, ir.NewConfigError(ir.ErrCodeUnknownRuleKind, id, "unknown rule kind %s", kind)
	}

	if r.id == "" {
		r.id = deriveID(kind, operands)
	}
	return r, nil
}

// deriveID names a rule after its kind and operands, e.g. "self_inverse(H)"
// or "fixed_pattern(T T T T)".
func deriveID(kind Kind, operands []ir.Symbol) string {
	if len(operands) == 0 {
		return kind.String()
	}
	return kind.String() + "(" + ir.JoinSymbols(operands, " ") + ")"
}

func operandError(kind Kind, want string, got int) *ir.ConfigError {
	err := ir.NewConfigError(ir.ErrCodeInvalidOperands, kind.String(), "%s %s", kind, want)
	err.Details = map[string]string{"operands": fmt.Sprintf("%d", got)}
	return err
}
