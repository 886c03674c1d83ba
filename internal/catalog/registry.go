package catalog

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"

	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/linalg"
)

// Registry maps symbols to generator operators of one shared dimension.
//
// Thread-safety: a Registry must not be mutated concurrently with reads.
// After setup it is read-only and safe to share.
type Registry struct {
	identity ir.Symbol
	dim      int
	ops      map[ir.Symbol]ir.Operator
	order    []ir.Symbol // registration order
}

// New creates an empty registry using identity as the identity symbol.
// An empty identity falls back to ir.DefaultIdentity.
func New(identity ir.Symbol) *Registry {
	if identity == "" {
		identity = ir.DefaultIdentity
	}
	return &Registry{
		identity: identity,
		ops:      make(map[ir.Symbol]ir.Operator),
	}
}

// Register adds a generator. The first registered generator fixes the
// registry dimension; later generators must be square and match it.
func (r *Registry) Register(op ir.Operator) error {
	if op.Name == "" {
		return ir.NewConfigError(ir.ErrCodeInvalidOperands, "", "generator name is empty")
	}
	if _, exists := r.ops[op.Name]; exists {
		return ir.NewConfigError(ir.ErrCodeDuplicateSymbol, string(op.Name), "generator registered twice")
	}
	if !linalg.IsSquare(op.Matrix) {
		return ir.NewConfigError(ir.ErrCodeNotSquare, string(op.Name), "generator matrix is missing or not square")
	}

	d := op.Dim()
	if r.dim == 0 {
		r.dim = d
	} else if d != r.dim {
		err := ir.NewConfigError(ir.ErrCodeDimensionMismatch, string(op.Name),
			"generator dimension %d does not match catalog dimension %d", d, r.dim)
		err.Details = map[string]string{
			"want": fmt.Sprintf("%d", r.dim),
			"got":  fmt.Sprintf("%d", d),
		}
		return err
	}

	r.ops[op.Name] = op
	r.order = append(r.order, op.Name)
	return nil
}

// RegisterMatrix is shorthand for Register(ir.NewGenerator(name, m)).
func (r *Registry) RegisterMatrix(name ir.Symbol, m *mat.CDense) error {
	return r.Register(ir.NewGenerator(name, m))
}

// Dim returns the registry dimension, 0 while empty.
func (r *Registry) Dim() int {
	return r.dim
}

// IdentitySymbol returns the symbol used for the identity element.
func (r *Registry) IdentitySymbol() ir.Symbol {
	return r.identity
}

// Len returns the number of registered generators.
func (r *Registry) Len() int {
	return len(r.ops)
}

// Identity returns the identity operator at the registry dimension.
func (r *Registry) Identity() ir.Operator {
	return ir.Identity(r.dim, r.identity)
}

// Lookup returns the operator for sym. The identity symbol resolves even
// when not registered explicitly, provided the registry is non-empty.
func (r *Registry) Lookup(sym ir.Symbol) (ir.Operator, bool) {
	if op, ok := r.ops[sym]; ok {
		return op, true
	}
	if sym == r.identity && r.dim > 0 {
		return r.Identity(), true
	}
	return ir.Operator{}, false
}

// Sequence resolves symbols to a sequence of operators.
func (r *Registry) Sequence(syms ...ir.Symbol) (ir.Sequence, error) {
	if len(syms) > 0 && len(r.ops) == 0 {
		return nil, ir.NewConfigError(ir.ErrCodeEmptyCatalog, string(syms[0]),
			"catalog has no generators")
	}
	seq := make(ir.Sequence, len(syms))
	for i, sym := range syms {
		op, ok := r.Lookup(sym)
		if !ok {
			err := ir.NewConfigError(ir.ErrCodeUnknownSymbol, string(sym), "symbol is not in the catalog")
			err.Details = map[string]string{"position": fmt.Sprintf("%d", i)}
			return nil, err
		}
		seq[i] = op
	}
	return seq, nil
}

// Parse resolves a sequence written in the ParseSymbols text form.
func (r *Registry) Parse(text string) (ir.Sequence, error) {
	return r.Sequence(ParseSymbols(text)...)
}

// Symbols returns the registered symbols sorted lexically.
func (r *Registry) Symbols() []ir.Symbol {
	syms := maps.Keys(r.ops)
	slices.Sort(syms)
	return syms
}

// Ordered returns the registered symbols in registration order.
func (r *Registry) Ordered() []ir.Symbol {
	return slices.Clone(r.order)
}

// Reconstruct rebuilds an operator's matrix as the ordered product of the
// generators named by its ancestry. Ancestors that name the identity are
// skipped; unknown ancestors are an error.
func (r *Registry) Reconstruct(op ir.Operator) (*mat.CDense, error) {
	acc := linalg.Identity(r.dim)
	if acc == nil {
		return nil, ir.NewConfigError(ir.ErrCodeEmptyCatalog, string(op.Name), "catalog has no generators")
	}
	for _, anc := range op.Ancestors {
		if anc == r.identity {
			continue
		}
		gen, ok := r.ops[anc]
		if !ok {
			return nil, ir.NewConfigError(ir.ErrCodeUnknownSymbol, string(anc),
				"ancestor of %s is not in the catalog", op.Name)
		}
		acc = linalg.Mul(acc, gen.Matrix)
	}
	return acc, nil
}

// Product returns the matrix of the whole sequence, reconstructing each
// operator from its ancestry. An empty sequence yields the identity.
func (r *Registry) Product(seq ir.Sequence) (*mat.CDense, error) {
	acc := linalg.Identity(r.dim)
	if acc == nil {
		return nil, ir.NewConfigError(ir.ErrCodeEmptyCatalog, "", "catalog has no generators")
	}
	for _, op := range seq {
		m, err := r.Reconstruct(op)
		if err != nil {
			return nil, err
		}
		acc = linalg.Mul(acc, m)
	}
	return acc, nil
}
