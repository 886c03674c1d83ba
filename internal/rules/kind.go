package rules

import (
	"fmt"

	"github.com/roach88/gatesimp/internal/ir"
)

// Kind selects a rule variant.
type Kind int

const (
	// KindIdentity elides the identity operator next to anything.
	KindIdentity Kind = iota + 1

	// KindSelfInverse collapses x·x for a configured x.
	KindSelfInverse

	// KindAdjoint collapses an operator next to its adjoint.
	KindAdjoint

	// KindFixedPattern collapses a literal symbol sequence.
	KindFixedPattern
)

var kindNames = map[Kind]string{
	KindIdentity:     "identity",
	KindSelfInverse:  "self_inverse",
	KindAdjoint:      "adjoint",
	KindFixedPattern: "fixed_pattern",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindIdentity, KindSelfInverse, KindAdjoint, KindFixedPattern}
}

// String returns the configuration spelling of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a configuration spelling to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, ir.NewConfigError(ir.ErrCodeUnknownRuleKind, s,
		"rule kind must be one of identity, self_inverse, adjoint, fixed_pattern")
}
