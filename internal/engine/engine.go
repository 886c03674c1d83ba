package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/rules"
)

// Engine simplifies operator sequences with an ordered rule set.
//
// Thread-safety: an Engine is read-only after New. Simplify, Run and
// SimplifyAll may be called from any number of goroutines.
//
// INVARIANTS:
//   - rules order NEVER changes after construction (it is the tie-break)
//   - rule IDs within rules are unique
//   - every rule has arity >= 2
type Engine struct {
	rules    []*rules.Rule // declaration order
	maxArity int
	workers  int
	logger   *slog.Logger
}

// Result is the outcome of one simplify run.
type Result struct {
	Removed  int
	Sequence ir.Sequence
	Firings  []ir.Firing
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for firing detail. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers bounds the goroutines SimplifyAll uses.
// Default: runtime.GOMAXPROCS(0). Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// New creates an Engine with the given rules in priority order.
//
// The rules slice is copied. An empty rule set is valid and yields an
// engine that returns every input unchanged.
func New(rs []*rules.Rule, opts ...Option) (*Engine, error) {
	rulesCopy := make([]*rules.Rule, 0, len(rs))
	seen := make(map[string]int, len(rs))
	maxArity := 0

	for i, r := range rs {
		if r == nil {
			return nil, ir.NewConfigError(ir.ErrCodeNilRule, fmt.Sprintf("rule[%d]", i), "rule is nil")
		}
		if r.Arity() < 2 {
			return nil, ir.NewConfigError(ir.ErrCodeInvalidArity, r.ID(),
				"rule arity must be at least 2, got %d", r.Arity())
		}
		if prev, dup := seen[r.ID()]; dup {
			return nil, ir.NewConfigError(ir.ErrCodeDuplicateRule, r.ID(),
				"rule ID already used by rule[%d]", prev)
		}
		seen[r.ID()] = i
		if r.Arity() > maxArity {
			maxArity = r.Arity()
		}
		rulesCopy = append(rulesCopy, r)
	}

	e := &Engine{
		rules:    rulesCopy,
		maxArity: maxArity,
		workers:  runtime.GOMAXPROCS(0),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// MaxArity returns the largest rule arity, 0 for an empty rule set.
func (e *Engine) MaxArity() int {
	return e.maxArity
}

// Rules returns the rule set in priority order.
func (e *Engine) Rules() []*rules.Rule {
	out := make([]*rules.Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Simplify rewrites seq to its normal form under the rule set and returns
// the number of operators removed along with the simplified sequence.
//
// seq is not modified. Empty input yields (0, empty).
func (e *Engine) Simplify(seq ir.Sequence) (int, ir.Sequence) {
	res := e.Run(seq)
	return res.Removed, res.Sequence
}

// Run is Simplify plus the ordered trace of rule firings.
func (e *Engine) Run(seq ir.Sequence) Result {
	if len(seq) == 0 {
		return Result{Sequence: ir.Sequence{}}
	}
	if e.maxArity == 0 {
		return Result{Sequence: seq.Clone()}
	}

	tr := newTrace(e.logger)

	w := newWindow(seq, e.maxArity)
	for {
		w.fill()
		if w.empty() {
			break
		}
		if mark, fired := e.pass(w, tr); fired {
			w.recenter(mark)
			continue
		}
		w.retire()
	}

	out := w.result()
	removed := len(seq) - len(out)
	e.logger.Debug("simplify complete",
		"input_len", len(seq),
		"output_len", len(out),
		"removed", removed,
		"firings", len(tr.firings))

	return Result{Removed: removed, Sequence: out, Firings: tr.firings}
}

// pass tests every rule once, in order, against the current scratch
// window. It returns the scratch index of the last replacement and
// whether any rule fired.
func (e *Engine) pass(w *window, tr *trace) (int, bool) {
	mark, fired := 0, false

	for _, r := range e.rules {
		if len(w.scratch) < r.Arity() {
			continue
		}
		excess, win := w.split(r.ID(), r.Arity())

		ok, replacement := r.Apply(win)
		if !ok {
			continue
		}
		if len(replacement) >= len(win) {
			panic(&PreconditionError{
				RuleID: r.ID(), Arity: r.Arity(), Got: len(replacement),
				Reason: "replacement does not shorten the window",
			})
		}

		tr.record(r.ID(), win, replacement)
		mark = w.splice(excess, replacement)
		fired = true
	}
	return mark, fired
}

// SimplifyAll runs every sequence through the engine on a bounded pool of
// goroutines. Results are returned in input order.
//
// If ctx is cancelled, sequences not yet started are skipped and ctx.Err()
// is returned alongside the partial results.
func (e *Engine) SimplifyAll(ctx context.Context, seqs []ir.Sequence) ([]Result, error) {
	results := make([]Result, len(seqs))
	if len(seqs) == 0 {
		return results, nil
	}

	workers := e.workers
	if workers > len(seqs) {
		workers = len(seqs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = e.Run(seqs[idx])
			}
		}()
	}

	var err error
dispatch:
	for i := range seqs {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	removed := 0
	for _, r := range results {
		removed += r.Removed
	}
	e.logger.Info("batch simplify complete",
		"sequences", len(seqs),
		"workers", workers,
		"removed", removed,
		"cancelled", err != nil)

	return results, err
}
