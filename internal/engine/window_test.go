package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gatesimp/internal/ir"
)

func sym(names ...string) ir.Sequence {
	out := make(ir.Sequence, len(names))
	for i, n := range names {
		out[i] = ir.NewSymbolic(ir.Symbol(n))
	}
	return out
}

func TestWindow_FillTakesFromTail(t *testing.T) {
	w := newWindow(sym("a", "b", "c", "d", "e"), 3)
	w.fill()
	assert.Equal(t, []string{"c", "d", "e"}, names(w.scratch))
	assert.Equal(t, []string{"a", "b"}, names(w.remaining))

	w.retire()
	w.fill()
	assert.Equal(t, []string{"b", "c", "d"}, names(w.scratch))
	assert.Equal(t, []string{"e"}, names(w.result()))
}

func TestWindow_Recenter(t *testing.T) {
	w := newWindow(sym("a", "b", "c", "d", "e", "f"), 3)
	w.fill()
	w.retire() // f
	w.fill()
	w.retire() // e
	w.fill()
	require.Equal(t, []string{"b", "c", "d"}, names(w.scratch))

	excess, _ := w.split("r", 2)
	mark := w.splice(excess, sym("X"))
	assert.Equal(t, 1, mark)
	assert.Equal(t, []string{"b", "X"}, names(w.scratch))

	w.recenter(mark)
	assert.Equal(t, []string{"X", "e", "f"}, names(w.scratch))
	assert.Equal(t, []string{"a", "b"}, names(w.remaining))
	assert.Empty(t, w.result())
}

func TestWindow_SplitPanicsOnShortScratch(t *testing.T) {
	w := newWindow(sym("a"), 2)
	w.fill()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		pe, ok := r.(*PreconditionError)
		require.True(t, ok)
		assert.Equal(t, "r", pe.RuleID)
		assert.Equal(t, 2, pe.Arity)
		assert.Equal(t, 1, pe.Got)
		assert.True(t, IsPreconditionError(pe))
	}()
	w.split("r", 2)
}

func TestWindow_DoesNotAliasInput(t *testing.T) {
	in := sym("a", "b", "c")
	w := newWindow(in, 2)
	w.fill()
	excess, _ := w.split("r", 2)
	w.recenter(w.splice(excess, sym("X")))
	w.fill()

	assert.Equal(t, []string{"a", "b", "c"}, names(in))
}
