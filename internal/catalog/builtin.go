package catalog

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/roach88/gatesimp/internal/ir"
)

// BuiltinCliffordT is the single-qubit Clifford+T generator set:
// H, T, Td and the Pauli matrices SX, SY, SZ.
const BuiltinCliffordT = "clifford_t"

var builtins = map[string]func(identity ir.Symbol, marker string) (*Registry, error){
	BuiltinCliffordT: cliffordT,
}

// Builtin returns a fresh registry for a named builtin generator set.
func Builtin(name string, identity ir.Symbol, marker string) (*Registry, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin catalog %q (known: %v)", name, BuiltinNames())
	}
	return build(identity, marker)
}

// BuiltinNames lists the builtin catalog names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CliffordT returns the Clifford+T registry with default symbol conventions.
func CliffordT() *Registry {
	r, err := cliffordT(ir.DefaultIdentity, ir.DefaultAdjointMarker)
	if err != nil {
		panic(err)
	}
	return r
}

func cliffordT(identity ir.Symbol, marker string) (*Registry, error) {
	if marker == "" {
		marker = ir.DefaultAdjointMarker
	}
	h := complex(1/math.Sqrt2, 0)
	phase := cmplx.Exp(complex(0, math.Pi/4))

	t := ir.NewGenerator("T", mat.NewCDense(2, 2, []complex128{1, 0, 0, phase}))

	gens := []ir.Operator{
		ir.NewGenerator("H", mat.NewCDense(2, 2, []complex128{h, h, h, -h})),
		t,
		t.Adjoint(marker),
		ir.NewGenerator("SX", mat.NewCDense(2, 2, []complex128{0, 1, 1, 0})),
		ir.NewGenerator("SY", mat.NewCDense(2, 2, []complex128{0, -1i, 1i, 0})),
		ir.NewGenerator("SZ", mat.NewCDense(2, 2, []complex128{1, 0, 0, -1})),
	}

	r := New(identity)
	for _, g := range gens {
		if err := r.Register(g); err != nil {
			return nil, fmt.Errorf("builtin %s: %w", BuiltinCliffordT, err)
		}
	}
	return r, nil
}
