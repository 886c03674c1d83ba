package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	RuleSet string
	Limit   int
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Reductions []ir.Reduction `json:"reductions"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <db>",
		Short: "List memoized reductions",
		Long: `List the reductions recorded by "simplify --db", oldest first.

Examples:
  gatesimp history ./gatesimp.db
  gatesimp history ./gatesimp.db --rule-set <hash> --limit 20`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RuleSet, "rule-set", "", "only show runs of this rule set hash")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	// Open would create a missing database.
	if _, err := os.Stat(path); err != nil {
		return formatter.Fail(ErrCodeNotFound, fmt.Errorf("database not found: %s", path))
	}

	st, err := store.Open(path)
	if err != nil {
		return formatter.Fail(ErrCodeStoreFailed, err)
	}
	defer st.Close()

	ctx := context.Background()
	reds, err := st.ListReductions(ctx, opts.RuleSet, opts.Limit)
	if err != nil {
		return formatter.Fail(ErrCodeStoreFailed, err)
	}
	if stats, err := st.Stats(ctx); err == nil {
		formatter.VerboseLog("%s: schema v%d, %d reduction(s), %d firing(s)",
			path, stats.Version, stats.Reductions, stats.Firings)
	}

	if formatter.JSON() {
		return formatter.Success(HistoryResult{Reductions: reds})
	}

	if len(reds) == 0 {
		fmt.Fprintln(formatter.Writer, "No reductions recorded.")
		return nil
	}

	rows := make([][]string, len(reds))
	for i, r := range reds {
		rows[i] = []string{
			r.RunID,
			shortHash(r.RuleSetHash),
			strconv.Itoa(r.Removed),
			renderSymbols(r.Input),
			renderSymbols(r.Output),
		}
	}
	formatter.Table([]string{"RUN", "RULE SET", "REMOVED", "INPUT", "OUTPUT"}, rows)
	return nil
}

// shortHash trims a hash for table display.
func shortHash(h string) string {
	const n = 12
	if len(h) <= n {
		return h
	}
	return h[:n]
}
