package ir

import (
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/roach88/gatesimp/internal/linalg"
)

// Operator is a named gate: a symbol, the generators composed to produce it
// (in application order), and its matrix.
//
// Operators are immutable by convention. Matrix may be nil for symbolic
// operators; every method propagates nil rather than failing.
type Operator struct {
	Name      Symbol
	Ancestors []Symbol
	Matrix    *mat.CDense
}

// NewGenerator returns a base operator whose ancestry is its own name.
func NewGenerator(name Symbol, m *mat.CDense) Operator {
	return Operator{Name: name, Ancestors: []Symbol{name}, Matrix: m}
}

// NewSymbolic returns an operator without a matrix. With no ancestors given
// the ancestry defaults to the operator's own name.
func NewSymbolic(name Symbol, ancestors ...Symbol) Operator {
	if len(ancestors) == 0 {
		ancestors = []Symbol{name}
	}
	return Operator{Name: name, Ancestors: slices.Clone(ancestors)}
}

// Identity returns the identity operator of dimension d named sym.
// For d <= 0 the operator is symbolic.
func Identity(d int, sym Symbol) Operator {
	return Operator{Name: sym, Ancestors: []Symbol{sym}, Matrix: linalg.Identity(d)}
}

// Dim returns the matrix dimension, 0 for symbolic operators.
func (o Operator) Dim() int {
	return linalg.Dim(o.Matrix)
}

// Compose returns o·other named name. Ancestors are o's followed by other's.
func (o Operator) Compose(other Operator, name Symbol) Operator {
	anc := make([]Symbol, 0, len(o.Ancestors)+len(other.Ancestors))
	anc = append(anc, o.Ancestors...)
	anc = append(anc, other.Ancestors...)
	return Operator{
		Name:      name,
		Ancestors: anc,
		Matrix:    linalg.Mul(o.Matrix, other.Matrix),
	}
}

// Adjoint returns the Hermitian conjugate. The name is toggled with marker;
// the ancestry is reversed and each ancestor toggled independently, since
// (AB)† = B†A†.
func (o Operator) Adjoint(marker string) Operator {
	anc := make([]Symbol, len(o.Ancestors))
	for i, a := range o.Ancestors {
		anc[len(anc)-1-i] = ToggleAdjoint(a, marker)
	}
	return Operator{
		Name:      ToggleAdjoint(o.Name, marker),
		Ancestors: anc,
		Matrix:    linalg.Adjoint(o.Matrix),
	}
}

// Scale returns factor·o named name. The scalar is recorded as a trailing
// ancestor so scaled operators never compare equal to the unscaled one.
func (o Operator) Scale(factor complex128, name Symbol) Operator {
	anc := make([]Symbol, 0, len(o.Ancestors)+1)
	anc = append(anc, o.Ancestors...)
	anc = append(anc, Symbol(strconv.FormatComplex(factor, 'g', -1, 128)))
	return Operator{
		Name:      name,
		Ancestors: anc,
		Matrix:    linalg.Scale(o.Matrix, factor),
	}
}

// Equal reports structural equality on (Name, Ancestors).
func (o Operator) Equal(other Operator) bool {
	return o.Name == other.Name && slices.Equal(o.Ancestors, other.Ancestors)
}

// String renders the operator as name[ancestors].
func (o Operator) String() string {
	return string(o.Name) + "[" + JoinSymbols(o.Ancestors, " ") + "]"
}

// ToggleAdjoint strips a trailing marker from s, or appends one.
// Empty symbols are returned unchanged; a symbol equal to the marker gains
// a second marker rather than becoming empty.
func ToggleAdjoint(s Symbol, marker string) Symbol {
	if s == "" || marker == "" {
		return s
	}
	str := string(s)
	if len(str) > len(marker) && strings.HasSuffix(str, marker) {
		return Symbol(strings.TrimSuffix(str, marker))
	}
	return Symbol(str + marker)
}

// IsAdjointPair reports whether a and b differ by exactly one trailing
// marker, in either order.
func IsAdjointPair(a, b Symbol, marker string) bool {
	if a == "" || b == "" || marker == "" {
		return false
	}
	return string(a)+marker == string(b) || string(b)+marker == string(a)
}

// Sequence is an ordered list of operators, leftmost applied first.
type Sequence []Operator

// Names returns the operator names in order.
func (s Sequence) Names() []Symbol {
	out := make([]Symbol, len(s))
	for i, op := range s {
		out[i] = op.Name
	}
	return out
}

// Clone returns a shallow copy. Operators are values, so the copy is safe
// to splice without affecting s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// Equal reports element-wise structural equality.
func (s Sequence) Equal(other Sequence) bool {
	return slices.EqualFunc(s, other, Operator.Equal)
}

// String renders the names separated by spaces.
func (s Sequence) String() string {
	return JoinSymbols(s.Names(), " ")
}
