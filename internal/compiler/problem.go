package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/gatesimp/internal/ir"
)

// CompileProblem parses a CUE problem value into an ir.Problem.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The value should already be unified with the schema (see ApplySchema);
// missing identity and adjoint_marker still fall back to the defaults so
// tests can compile bare values.
func CompileProblem(v cue.Value) (*ir.Problem, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &ir.Problem{
		Identity:      ir.DefaultIdentity,
		AdjointMarker: ir.DefaultAdjointMarker,
	}

	if s, ok, err := optionalString(v, "identity"); err != nil {
		return nil, err
	} else if ok {
		p.Identity = ir.Symbol(s)
	}
	if s, ok, err := optionalString(v, "adjoint_marker"); err != nil {
		return nil, err
	} else if ok {
		p.AdjointMarker = s
	}
	if s, ok, err := optionalString(v, "catalog"); err != nil {
		return nil, err
	} else if ok {
		p.Catalog = s
	}

	gens, err := parseGenerators(v)
	if err != nil {
		return nil, err
	}
	p.Generators = gens

	rules, err := parseRules(v)
	if err != nil {
		return nil, err
	}
	p.Rules = rules

	return p, nil
}

func optionalString(v cue.Value, field string) (string, bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", false, nil
	}
	if d, ok := fv.Default(); ok {
		fv = d
	}
	// Unset optional schema fields look up as their type.
	if !fv.IsConcrete() {
		return "", false, nil
	}
	s, err := fv.String()
	if err != nil {
		return "", false, formatCUEError(err)
	}
	return s, true, nil
}

// parseGenerators reads generator: NAME: matrix: [[...]] in declaration
// order.
func parseGenerators(v cue.Value) ([]ir.GeneratorSpec, error) {
	genVal := v.LookupPath(cue.ParsePath("generator"))
	if !genVal.Exists() {
		return nil, nil
	}

	iter, err := genVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var gens []ir.GeneratorSpec
	for iter.Next() {
		name := iter.Label()
		matrixVal := iter.Value().LookupPath(cue.ParsePath("matrix"))
		if !matrixVal.Exists() {
			return nil, fieldError(iter.Value(), fmt.Sprintf("generator.%s.matrix", name), "matrix is required")
		}

		rows, err := parseMatrix(matrixVal, name)
		if err != nil {
			return nil, err
		}
		gens = append(gens, ir.GeneratorSpec{Name: ir.Symbol(name), Rows: rows})
	}
	return gens, nil
}

func parseMatrix(v cue.Value, name string) ([][]complex128, error) {
	rowIter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var rows [][]complex128
	for rowIter.Next() {
		entryIter, err := rowIter.Value().List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var row []complex128
		for entryIter.Next() {
			z, err := parseEntry(entryIter.Value(), name)
			if err != nil {
				return nil, err
			}
			row = append(row, z)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseEntry reads a number or an [re, im] pair.
func parseEntry(v cue.Value, name string) (complex128, error) {
	if v.Kind() == cue.ListKind {
		iter, err := v.List()
		if err != nil {
			return 0, formatCUEError(err)
		}
		var parts []float64
		for iter.Next() {
			f, err := iter.Value().Float64()
			if err != nil {
				return 0, formatCUEError(err)
			}
			parts = append(parts, f)
		}
		if len(parts) != 2 {
			return 0, fieldError(v, fmt.Sprintf("generator.%s.matrix", name), "complex entry must be [re, im], got %d numbers", len(parts))
		}
		return complex(parts[0], parts[1]), nil
	}

	f, err := v.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return complex(f, 0), nil
}

// parseRules reads the ordered rule list.
func parseRules(v cue.Value) ([]ir.RuleSpec, error) {
	ruleVal := v.LookupPath(cue.ParsePath("rule"))
	if !ruleVal.Exists() {
		return nil, nil
	}

	iter, err := ruleVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var specs []ir.RuleSpec
	for i := 0; iter.Next(); i++ {
		spec, err := parseRule(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseRule(v cue.Value, idx int) (ir.RuleSpec, error) {
	var (
		entry ruleEntry
		err   error
		ok    bool
	)

	if entry.Kind, ok, err = optionalString(v, "kind"); err != nil {
		return ir.RuleSpec{}, err
	} else if !ok {
		return ir.RuleSpec{}, fieldError(v, fmt.Sprintf("rule[%d].kind", idx), "kind is required")
	}
	if entry.ID, _, err = optionalString(v, "id"); err != nil {
		return ir.RuleSpec{}, err
	}
	if entry.Symbol, _, err = optionalString(v, "symbol"); err != nil {
		return ir.RuleSpec{}, err
	}
	if entry.Result, _, err = optionalString(v, "result"); err != nil {
		return ir.RuleSpec{}, err
	}

	patVal := v.LookupPath(cue.ParsePath("pattern"))
	if patVal.Exists() {
		iter, err := patVal.List()
		if err != nil {
			return ir.RuleSpec{}, formatCUEError(err)
		}
		entry.Pattern = []string{}
		for iter.Next() {
			s, err := iter.Value().String()
			if err != nil {
				return ir.RuleSpec{}, formatCUEError(err)
			}
			entry.Pattern = append(entry.Pattern, s)
		}
	}

	return entry.spec(), nil
}

// ruleEntry is the file form of one rule, shared by the CUE and YAML
// front ends.
type ruleEntry struct {
	Kind    string   `yaml:"kind"`
	ID      string   `yaml:"id"`
	Symbol  string   `yaml:"symbol"`
	Pattern []string `yaml:"pattern"`
	Result  string   `yaml:"result"`
}

// spec converts the entry to an ir.RuleSpec. symbol and pattern both map
// to Operands, symbol first.
func (e ruleEntry) spec() ir.RuleSpec {
	var ops []ir.Symbol
	if e.Symbol != "" {
		ops = append(ops, ir.Symbol(e.Symbol))
	}
	ops = append(ops, ir.Symbols(e.Pattern...)...)
	if len(ops) == 0 {
		ops = nil
	}
	return ir.RuleSpec{
		ID:       e.ID,
		Kind:     e.Kind,
		Operands: ops,
		Result:   ir.Symbol(e.Result),
	}
}
