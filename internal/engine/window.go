package engine

import (
	"slices"

	"github.com/roach88/gatesimp/internal/ir"
)

// window is the mutable state of one simplify run.
//
// The conceptual sequence is remaining ++ scratch ++ reverse(settled).
// settled is stored reversed so retiring and pulling back are both
// operations on the slice end.
type window struct {
	size      int
	remaining ir.Sequence // tail is the next operator to enter scratch
	scratch   ir.Sequence
	settled   ir.Sequence // processed suffix, last element is its front
}

func newWindow(seq ir.Sequence, size int) *window {
	return &window{
		size:      size,
		remaining: seq.Clone(),
		scratch:   make(ir.Sequence, 0, size),
		settled:   make(ir.Sequence, 0, len(seq)),
	}
}

// fill moves operators from the tail of remaining onto the front of
// scratch until scratch is full or remaining is empty.
func (w *window) fill() {
	need := w.size - len(w.scratch)
	if need <= 0 || len(w.remaining) == 0 {
		return
	}
	if need > len(w.remaining) {
		need = len(w.remaining)
	}
	cut := len(w.remaining) - need

	next := make(ir.Sequence, 0, w.size)
	next = append(next, w.remaining[cut:]...)
	next = append(next, w.scratch...)
	w.scratch = next
	w.remaining = w.remaining[:cut]
}

// split returns the excess prefix and the last arity operators of scratch.
func (w *window) split(ruleID string, arity int) (excess, win ir.Sequence) {
	n := len(w.scratch)
	if arity > n || arity < 2 {
		panic(&PreconditionError{RuleID: ruleID, Arity: arity, Got: n, Reason: "window shorter than rule arity"})
	}
	return w.scratch[:n-arity], w.scratch[n-arity:]
}

// splice replaces the last len(win) scratch operators with replacement and
// returns the index of the replacement in the new scratch.
func (w *window) splice(excess, replacement ir.Sequence) int {
	next := make(ir.Sequence, 0, len(excess)+len(replacement))
	next = append(next, excess...)
	next = append(next, replacement...)
	w.scratch = next
	return len(excess)
}

// recenter makes the replacement at scratch[mark:] the new rewrite point.
// Operators before it return to remaining; up to size-len(replacement)
// settled operators are pulled back behind it.
func (w *window) recenter(mark int) {
	w.remaining = append(w.remaining, w.scratch[:mark]...)
	w.scratch = slices.Clone(w.scratch[mark:])
	for len(w.scratch) < w.size && len(w.settled) > 0 {
		last := len(w.settled) - 1
		w.scratch = append(w.scratch, w.settled[last])
		w.settled = w.settled[:last]
	}
}

// retire moves the last scratch operator to the front of the processed
// suffix.
func (w *window) retire() {
	last := len(w.scratch) - 1
	w.settled = append(w.settled, w.scratch[last])
	w.scratch = w.scratch[:last]
}

// empty reports whether every operator has been settled.
func (w *window) empty() bool {
	return len(w.scratch) == 0 && len(w.remaining) == 0
}

// result returns the settled operators in sequence order.
func (w *window) result() ir.Sequence {
	out := make(ir.Sequence, len(w.settled))
	for i, op := range w.settled {
		out[len(out)-1-i] = op
	}
	return out
}
