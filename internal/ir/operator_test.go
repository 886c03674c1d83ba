package ir

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/roach88/gatesimp/internal/linalg"
)

func tGate() Operator {
	return NewGenerator("T", mat.NewCDense(2, 2, []complex128{1, 0, 0, cmplx.Exp(complex(0, math.Pi/4))}))
}

func hGate() Operator {
	s := complex(1/math.Sqrt2, 0)
	return NewGenerator("H", mat.NewCDense(2, 2, []complex128{s, s, s, -s}))
}

func TestNewGenerator(t *testing.T) {
	op := tGate()
	assert.Equal(t, Symbol("T"), op.Name)
	assert.Equal(t, []Symbol{"T"}, op.Ancestors)
	assert.Equal(t, 2, op.Dim())
}

func TestNewSymbolic(t *testing.T) {
	op := NewSymbolic("X")
	assert.Equal(t, []Symbol{"X"}, op.Ancestors)
	assert.Nil(t, op.Matrix)
	assert.Equal(t, 0, op.Dim())

	anc := []Symbol{"H", "T"}
	op = NewSymbolic("HT", anc...)
	anc[0] = "Z"
	assert.Equal(t, []Symbol{"H", "T"}, op.Ancestors, "ancestors must be copied")
}

func TestIdentity(t *testing.T) {
	id := Identity(2, DefaultIdentity)
	assert.Equal(t, Symbol("I"), id.Name)
	assert.Equal(t, []Symbol{"I"}, id.Ancestors)
	assert.True(t, linalg.EqualApprox(id.Matrix, linalg.Identity(2), 0))

	sym := Identity(0, "E")
	assert.Nil(t, sym.Matrix)
}

func TestCompose(t *testing.T) {
	h, tg := hGate(), tGate()
	ht := h.Compose(tg, "HT")

	assert.Equal(t, Symbol("HT"), ht.Name)
	assert.Equal(t, []Symbol{"H", "T"}, ht.Ancestors)
	assert.True(t, linalg.EqualApprox(ht.Matrix, linalg.Mul(h.Matrix, tg.Matrix), 1e-12))

	// Receivers are untouched.
	assert.Equal(t, []Symbol{"H"}, h.Ancestors)
}

func TestCompose_AncestorsDoNotAlias(t *testing.T) {
	a := NewSymbolic("A", "X", "Y")
	b := NewSymbolic("B")
	ab := a.Compose(b, "AB")
	ab.Ancestors[0] = "Q"
	assert.Equal(t, []Symbol{"X", "Y"}, a.Ancestors)
}

func TestCompose_SymbolicStaysSymbolic(t *testing.T) {
	out := NewSymbolic("A").Compose(tGate(), "AT")
	assert.Nil(t, out.Matrix)
	assert.Equal(t, []Symbol{"A", "T"}, out.Ancestors)
}

func TestAdjoint_Generator(t *testing.T) {
	td := tGate().Adjoint(DefaultAdjointMarker)

	assert.Equal(t, Symbol("Td"), td.Name)
	assert.Equal(t, []Symbol{"Td"}, td.Ancestors)
	assert.True(t, linalg.EqualApprox(linalg.Mul(tGate().Matrix, td.Matrix), linalg.Identity(2), 1e-12))
}

func TestAdjoint_ReversesAndTogglesEachAncestor(t *testing.T) {
	htd := hGate().Compose(tGate().Adjoint("d"), "HTd")
	require.Equal(t, []Symbol{"H", "Td"}, htd.Ancestors)

	adj := htd.Adjoint("d")
	assert.Equal(t, Symbol("HT"), adj.Name)
	assert.Equal(t, []Symbol{"T", "Hd"}, adj.Ancestors)
}

func TestAdjoint_Involution(t *testing.T) {
	op := hGate().Compose(tGate(), "HT")
	back := op.Adjoint("d").Adjoint("d")
	assert.True(t, back.Equal(op))
	assert.True(t, linalg.EqualApprox(back.Matrix, op.Matrix, 1e-12))
}

func TestScale(t *testing.T) {
	op := tGate()
	scaled := op.Scale(2, "T2")

	assert.Equal(t, Symbol("T2"), scaled.Name)
	assert.Equal(t, []Symbol{"T", "(2+0i)"}, scaled.Ancestors)
	assert.Equal(t, complex128(2), scaled.Matrix.At(0, 0))
	assert.Equal(t, complex128(1), op.Matrix.At(0, 0))
	assert.False(t, scaled.Equal(op))
}

func TestEqual_IgnoresMatrix(t *testing.T) {
	a := NewGenerator("T", linalg.Identity(2))
	b := NewGenerator("T", nil)
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(NewSymbolic("T", "T", "T")))
	assert.False(t, a.Equal(NewSymbolic("H")))
}

func TestToggleAdjoint(t *testing.T) {
	testCases := []struct {
		in     Symbol
		marker string
		want   Symbol
	}{
		{"T", "d", "Td"},
		{"Td", "d", "T"},
		{"SX", "d", "SXd"},
		{"d", "d", "dd"},
		{"", "d", ""},
		{"T", "", "T"},
		{"S†", "†", "S"},
		{"S", "†", "S†"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.in)+"/"+tc.marker, func(t *testing.T) {
			assert.Equal(t, tc.want, ToggleAdjoint(tc.in, tc.marker))
		})
	}
}

func TestIsAdjointPair(t *testing.T) {
	assert.True(t, IsAdjointPair("T", "Td", "d"))
	assert.True(t, IsAdjointPair("Td", "T", "d"))
	assert.False(t, IsAdjointPair("T", "T", "d"))
	assert.False(t, IsAdjointPair("T", "Tdd", "d"))
	assert.False(t, IsAdjointPair("", "d", "d"))
}

func TestSequence(t *testing.T) {
	seq := Sequence{hGate(), tGate()}
	assert.Equal(t, []Symbol{"H", "T"}, seq.Names())
	assert.Equal(t, "H T", seq.String())

	clone := seq.Clone()
	clone[0] = tGate()
	assert.Equal(t, Symbol("H"), seq[0].Name)

	assert.True(t, seq.Equal(Sequence{hGate(), tGate()}))
	assert.False(t, seq.Equal(Sequence{hGate()}))
	assert.Nil(t, Sequence(nil).Clone())
}

func TestConfigError(t *testing.T) {
	err := NewConfigError(ErrCodeUnknownSymbol, "Q", "symbol %q is not in the catalog", "Q")
	assert.Equal(t, `UNKNOWN_SYMBOL: symbol "Q" is not in the catalog (Q)`, err.Error())

	wrapped := wrap(err)
	assert.True(t, IsConfigError(wrapped))
	assert.True(t, HasCode(wrapped, ErrCodeUnknownSymbol))
	assert.False(t, HasCode(wrapped, ErrCodeNilRule))
	assert.False(t, IsConfigError(assert.AnError))
}

func wrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
