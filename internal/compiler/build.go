package compiler

import (
	"fmt"

	"github.com/roach88/gatesimp/internal/catalog"
	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/linalg"
	"github.com/roach88/gatesimp/internal/rules"
)

// Compiled is a problem ready to run: the generator registry, the rules
// in priority order, and the content hash of the rule set.
type Compiled struct {
	Problem     *ir.Problem
	Catalog     *catalog.Registry
	Rules       []*rules.Rule
	RuleSetHash string
}

// ValidationErrors is returned by Build when Validate reports problems.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}

// Build validates p and constructs its registry and rule set.
func Build(p *ir.Problem) (*Compiled, error) {
	if errs := Validate(p); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	reg := catalog.New(p.Identity)
	if p.Catalog != "" {
		builtin, err := catalog.Builtin(p.Catalog, p.Identity, p.AdjointMarker)
		if err != nil {
			return nil, err
		}
		reg = builtin
	}

	for _, g := range p.Generators {
		m, err := linalg.FromRows(g.Rows)
		if err != nil {
			return nil, fmt.Errorf("generator %s: %w", g.Name, err)
		}
		if err := reg.Register(ir.NewGenerator(g.Name, m)); err != nil {
			return nil, fmt.Errorf("generator %s: %w", g.Name, err)
		}
	}

	factory := rules.NewFactory(p.Identity, p.AdjointMarker)
	rs, err := factory.FromSpecs(p.Rules)
	if err != nil {
		return nil, err
	}

	specs := make([]ir.RuleSpec, len(rs))
	for i, r := range rs {
		specs[i] = r.Spec()
	}
	hash, err := ir.RuleSetHash(p.Identity, p.AdjointMarker, specs)
	if err != nil {
		return nil, err
	}

	return &Compiled{
		Problem:     p,
		Catalog:     reg,
		Rules:       rs,
		RuleSetHash: hash,
	}, nil
}
