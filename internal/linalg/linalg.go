package linalg

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// DefaultTolerance is the element-wise tolerance used by EqualApprox callers
// that have no better bound.
const DefaultTolerance = 1e-9

// Identity returns the d×d identity matrix, or nil when d <= 0.
func Identity(d int) *mat.CDense {
	if d <= 0 {
		return nil
	}
	m := mat.NewCDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Dim returns the row count of a square matrix, or 0 for nil.
func Dim(m *mat.CDense) int {
	if m == nil {
		return 0
	}
	r, _ := m.Dims()
	return r
}

// IsSquare reports whether m is non-nil and square.
func IsSquare(m *mat.CDense) bool {
	if m == nil {
		return false
	}
	r, c := m.Dims()
	return r == c && r > 0
}

// FromRows builds a matrix from row-major entries.
// Every row must have the same length as the number of rows.
func FromRows(rows [][]complex128) (*mat.CDense, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("matrix has no rows")
	}
	data := make([]complex128, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d entries, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewCDense(n, n, data), nil
}

// Mul returns the product a·b. Either operand being nil yields nil.
// Panics with mat.ErrShape when the inner dimensions disagree.
func Mul(a, b *mat.CDense) *mat.CDense {
	if a == nil || b == nil {
		return nil
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(mat.ErrShape)
	}
	c := mat.NewCDense(ar, bc, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, a.RawCMatrix(), b.RawCMatrix(), 0, c.RawCMatrix())
	return c
}

// Product multiplies the matrices left to right. Returns nil when ms is
// empty or any element is nil.
func Product(ms ...*mat.CDense) *mat.CDense {
	if len(ms) == 0 {
		return nil
	}
	acc := ms[0]
	for _, m := range ms[1:] {
		acc = Mul(acc, m)
	}
	return acc
}

// Adjoint returns the conjugate transpose of m as a new matrix.
func Adjoint(m *mat.CDense) *mat.CDense {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	out := mat.NewCDense(c, r, nil)
	out.Copy(m.H())
	return out
}

// Scale returns factor·m as a new matrix.
func Scale(m *mat.CDense, factor complex128) *mat.CDense {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	out := mat.NewCDense(r, c, nil)
	out.Copy(m)
	raw := out.RawCMatrix()
	cblas128.Scal(factor, cblas128.Vector{N: len(raw.Data), Inc: 1, Data: raw.Data})
	return out
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(m *mat.CDense) complex128 {
	var tr complex128
	for i := 0; i < Dim(m); i++ {
		tr += m.At(i, i)
	}
	return tr
}

// EqualApprox reports element-wise equality within tol.
// Two nil matrices are equal; nil and non-nil are not.
func EqualApprox(a, b *mat.CDense, tol float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return mat.CEqualApprox(a, b, tol)
}

// FowlerDistance is the global-phase-invariant distance
// sqrt(|d - |tr(a†b)|| / d). It is zero iff a and b agree up to a phase.
func FowlerDistance(a, b *mat.CDense) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("fowler distance: missing matrix")
	}
	d := Dim(a)
	if d != Dim(b) || !IsSquare(a) || !IsSquare(b) {
		return 0, fmt.Errorf("fowler distance: shape mismatch (%d vs %d)", Dim(a), Dim(b))
	}
	tr := Trace(Mul(Adjoint(a), b))
	frac := math.Abs((float64(d) - cmplx.Abs(tr)) / float64(d))
	// Below this, frac is rounding in the trace; the square root would
	// inflate it to about 1e-8.
	if frac < fowlerNoise {
		return 0, nil
	}
	return math.Sqrt(frac), nil
}

const fowlerNoise = 1e-12

// TraceNorm returns sqrt(Re tr(m·m†)), the Frobenius norm of m.
func TraceNorm(m *mat.CDense) float64 {
	if m == nil {
		return 0
	}
	return math.Sqrt(real(Trace(Mul(m, Adjoint(m)))))
}

// TraceDistance returns the Frobenius norm of a-b.
func TraceDistance(a, b *mat.CDense) (float64, error) {
	if Dim(a) != Dim(b) || a == nil {
		return 0, fmt.Errorf("trace distance: shape mismatch (%d vs %d)", Dim(a), Dim(b))
	}
	return TraceNorm(sub(a, b)), nil
}

// DirectSum returns the block-diagonal matrix diag(a, b).
func DirectSum(a, b *mat.CDense) *mat.CDense {
	if a == nil || b == nil {
		return nil
	}
	na, nb := Dim(a), Dim(b)
	out := mat.NewCDense(na+nb, na+nb, nil)
	for i := 0; i < na; i++ {
		for j := 0; j < na; j++ {
			out.Set(i, j, a.At(i, j))
		}
	}
	for i := 0; i < nb; i++ {
		for j := 0; j < nb; j++ {
			out.Set(na+i, na+j, b.At(i, j))
		}
	}
	return out
}

// Format renders m one row per line, entries as Go complex literals
// rounded to four decimals.
func Format(m *mat.CDense) string {
	if m == nil {
		return "<symbolic>"
	}
	var b strings.Builder
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		b.WriteString("[")
		for j := 0; j < c; j++ {
			if j > 0 {
				b.WriteString(" ")
			}
			v := m.At(i, j)
			fmt.Fprintf(&b, "%+.4f%+.4fi", round(real(v)), round(imag(v)))
		}
		b.WriteString("]")
		if i < r-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func sub(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)-b.At(i, j))
		}
	}
	return out
}

// round avoids printing -0.0000 for tiny negative noise.
func round(x float64) float64 {
	if math.Abs(x) < 5e-5 {
		return 0
	}
	return x
}
