package compiler

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gatesimp/internal/ir"
)

// problemFile is the YAML form of a problem. Field names match the CUE
// schema.
type problemFile struct {
	Identity      *string     `yaml:"identity"`
	AdjointMarker *string     `yaml:"adjoint_marker"`
	Catalog       string      `yaml:"catalog"`
	Generator     yaml.Node   `yaml:"generator"`
	Rule          []ruleEntry `yaml:"rule"`
}

type generatorFile struct {
	Matrix [][]entry `yaml:"matrix"`
}

// entry is a matrix element: a number or an [re, im] pair.
type entry complex128

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("line %d: matrix entry: %w", node.Line, err)
		}
		*e = entry(complex(f, 0))
		return nil
	case yaml.SequenceNode:
		var parts []float64
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: matrix entry: %w", node.Line, err)
		}
		if len(parts) != 2 {
			return fmt.Errorf("line %d: complex entry must be [re, im], got %d numbers", node.Line, len(parts))
		}
		*e = entry(complex(parts[0], parts[1]))
		return nil
	default:
		return fmt.Errorf("line %d: matrix entry must be a number or [re, im]", node.Line)
	}
}

// ParseYAML decodes a YAML problem. Unknown fields are rejected.
func ParseYAML(data []byte) (*ir.Problem, error) {
	var f problemFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse problem yaml: %w", err)
	}

	p := &ir.Problem{
		Identity:      ir.DefaultIdentity,
		AdjointMarker: ir.DefaultAdjointMarker,
		Catalog:       f.Catalog,
	}
	if f.Identity != nil {
		p.Identity = ir.Symbol(*f.Identity)
	}
	if f.AdjointMarker != nil {
		p.AdjointMarker = *f.AdjointMarker
	}

	gens, err := decodeGenerators(&f.Generator)
	if err != nil {
		return nil, err
	}
	p.Generators = gens

	for _, r := range f.Rule {
		p.Rules = append(p.Rules, r.spec())
	}
	return p, nil
}

// decodeGenerators walks the generator mapping in document order.
func decodeGenerators(node *yaml.Node) ([]ir.GeneratorSpec, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: generator must be a mapping", node.Line)
	}

	var gens []ir.GeneratorSpec
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var g generatorFile
		if err := node.Content[i+1].Decode(&g); err != nil {
			return nil, fmt.Errorf("generator %s: %w", name, err)
		}
		if g.Matrix == nil {
			return nil, fmt.Errorf("line %d: generator %s: matrix is required", node.Content[i].Line, name)
		}

		rows := make([][]complex128, len(g.Matrix))
		for r, row := range g.Matrix {
			rows[r] = make([]complex128, len(row))
			for c, z := range row {
				rows[r][c] = complex128(z)
			}
		}
		gens = append(gens, ir.GeneratorSpec{Name: ir.Symbol(name), Rows: rows})
	}
	return gens, nil
}
