package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/gatesimp/internal/ir"
)

// RuleInfo describes one rule in priority order.
type RuleInfo struct {
	Priority int         `json:"priority"` // 1-based position in the rule set
	ID       string      `json:"id"`
	Kind     string      `json:"kind"`
	Arity    int         `json:"arity"`
	Operands []ir.Symbol `json:"operands,omitempty"`
	Result   ir.Symbol   `json:"result"`
	Slogan   string      `json:"slogan"`
}

// RulesResult is the JSON payload of the rules command.
type RulesResult struct {
	RuleSetHash string     `json:"rule_set_hash"`
	MaxArity    int        `json:"max_arity"`
	Rules       []RuleInfo `json:"rules"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules <problem>",
		Short: "List a problem's rules in priority order",
		Long: `List the rules of a problem in the order the engine tries them.

Earlier rules win when several match the same window.

Examples:
  gatesimp rules testdata/problems/clifford_t.cue
  gatesimp rules testdata/problems/pauli --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runRules(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	c, err := BuildProblem(path)
	if err != nil {
		return formatter.Fail(ErrCodeBuildFailed, err)
	}

	result := RulesResult{
		RuleSetHash: c.RuleSetHash,
		Rules:       make([]RuleInfo, len(c.Rules)),
	}
	for i, r := range c.Rules {
		spec := r.Spec()
		result.Rules[i] = RuleInfo{
			Priority: i + 1,
			ID:       r.ID(),
			Kind:     r.Kind().String(),
			Arity:    r.Arity(),
			Operands: spec.Operands,
			Result:   r.Result(),
			Slogan:   r.Slogan(),
		}
		result.MaxArity = max(result.MaxArity, r.Arity())
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}

	if len(result.Rules) == 0 {
		fmt.Fprintln(formatter.Writer, "No rules defined.")
		return nil
	}

	rows := make([][]string, len(result.Rules))
	for i, r := range result.Rules {
		rows[i] = []string{strconv.Itoa(r.Priority), r.ID, r.Kind, strconv.Itoa(r.Arity), r.Slogan}
	}
	formatter.Table([]string{"#", "ID", "KIND", "ARITY", "RELATION"}, rows)
	formatter.VerboseLog("rule set hash: %s", result.RuleSetHash)
	return nil
}
