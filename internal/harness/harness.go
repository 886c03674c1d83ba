package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gatesimp/internal/compiler"
	"github.com/roach88/gatesimp/internal/engine"
	"github.com/roach88/gatesimp/internal/ir"
)

// Harness runs the cases of one scenario against a compiled problem.
type Harness struct {
	compiled *compiler.Compiled
	engine   *engine.Engine
	logger   *slog.Logger
}

// New builds a harness for an already compiled problem.
// A nil logger discards engine output.
func New(c *compiler.Compiled, logger *slog.Logger) (*Harness, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eng, err := engine.New(c.Rules, engine.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return &Harness{compiled: c, engine: eng, logger: logger}, nil
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Load and build the scenario's problem
//  2. Resolve each case's symbols against the problem's catalog
//  3. Simplify each case with the real engine
//  4. Check expectations and the run properties
//
// An error is returned only when the scenario cannot be executed (bad
// problem, unknown symbol). Failed checks are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	c, err := compiler.LoadAndBuild(scenario.Problem)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem %s: %w", scenario.Problem, err)
	}

	h, err := New(c, nil)
	if err != nil {
		return nil, err
	}
	return h.Run(scenario)
}

// Run executes the scenario's cases against the harness's problem,
// ignoring scenario.Problem.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	seqs := make([]ir.Sequence, len(scenario.Cases))
	for i, c := range scenario.Cases {
		seq, err := h.compiled.Catalog.Sequence(c.Sequence...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.label(i), err)
		}
		seqs[i] = seq
	}

	// Cases are independent; the batch keeps them in scenario order.
	runs, err := h.engine.SimplifyAll(context.Background(), seqs)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	for i, c := range scenario.Cases {
		name := c.label(i)
		seq, run := seqs[i], runs[i]

		cr := CaseResult{
			Name:    name,
			Input:   seq.Names(),
			Output:  run.Sequence.Names(),
			Removed: run.Removed,
			Firings: run.Firings,
		}
		if cr.Firings == nil {
			cr.Firings = []ir.Firing{}
		}
		result.AddCase(cr)

		for _, err := range checkExpect(cr, c.Expect) {
			result.AddError(err.Error())
		}
		for _, err := range checkProperties(h.engine, cr, run.Sequence) {
			result.AddError(err.Error())
		}

		h.logger.Debug("case completed",
			"scenario", scenario.Name,
			"case", name,
			"removed", cr.Removed,
			"firings", len(cr.Firings),
		)
	}

	return result, nil
}
