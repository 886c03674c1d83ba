package engine

import (
	"log/slog"

	"github.com/roach88/gatesimp/internal/ir"
)

// trace records the firings of one run. Seq numbers start at 1 and are
// local to the run, so concurrent runs never share a counter.
type trace struct {
	logger  *slog.Logger
	firings []ir.Firing
}

func newTrace(logger *slog.Logger) *trace {
	return &trace{logger: logger}
}

// record appends a firing of ruleID that replaced window with replacement.
func (t *trace) record(ruleID string, window, replacement ir.Sequence) ir.Firing {
	f := ir.Firing{
		Seq:         int64(len(t.firings) + 1),
		RuleID:      ruleID,
		Window:      window.Names(),
		Replacement: replacement.Names(),
	}
	t.firings = append(t.firings, f)
	t.logger.Debug("rule fired",
		"rule", f.RuleID,
		"seq", f.Seq,
		"window", ir.JoinSymbols(f.Window, " "),
		"replacement", ir.JoinSymbols(f.Replacement, " "))
	return f
}
