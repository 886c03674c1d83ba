package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gatesimp/internal/catalog"
	"github.com/roach88/gatesimp/internal/compiler"
	"github.com/roach88/gatesimp/internal/engine"
	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/linalg"
	"github.com/roach88/gatesimp/internal/store"
)

// EnvDatabase names the environment variable that supplies the default
// --db path.
const EnvDatabase = "GATESIMP_DB"

// DefaultTolerance is the largest Fowler distance --verify accepts.
const DefaultTolerance = 1e-6

// SimplifyOptions holds flags for the simplify command.
type SimplifyOptions struct {
	*RootOptions
	Database  string
	Trace     bool
	Verify    bool
	Tolerance float64

	// RunIDs overrides the run ID generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	RunIDs store.RunIDGenerator
}

// SimplifyResult is the outcome of one simplify invocation.
type SimplifyResult struct {
	Input    []ir.Symbol `json:"input"`
	Output   []ir.Symbol `json:"output"`
	Removed  int         `json:"removed"`
	Firings  []ir.Firing `json:"firings,omitempty"`
	Cached   bool        `json:"cached"`
	RunID    string      `json:"run_id,omitempty"`
	Distance *float64    `json:"distance,omitempty"`
}

// NewSimplifyCommand creates the simplify command.
func NewSimplifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimplifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simplify <problem> <symbol>...",
		Short: "Simplify a gate sequence",
		Long: `Simplify a sequence of catalog symbols with the problem's rules and
report how many operators were removed.

Symbols may be separate arguments or one quoted, space or comma separated
string. With --db the result is memoized in SQLite, keyed by the rule set
and the input; a repeated query is answered from the store. The default
database path comes from $` + EnvDatabase + `.

--verify multiplies out the input and the result and reports their
global-phase-invariant (Fowler) distance; the command fails if it exceeds
--tolerance.

Examples:
  gatesimp simplify testdata/problems/clifford_t.cue H T Td H
  gatesimp simplify testdata/problems/clifford_t.cue "T T T T T T T T" --trace
  gatesimp simplify problem.cue H H SX --db ./gatesimp.db --verify --format json`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimplify(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", os.Getenv(EnvDatabase), "path to SQLite reduction memo")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "show the rule firings")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check the result against the input matrix product")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", DefaultTolerance, "maximum Fowler distance accepted by --verify")

	return cmd
}

func runSimplify(opts *SimplifyOptions, path string, symbolArgs []string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := BuildProblem(path)
	if err != nil {
		return formatter.Fail(ErrCodeBuildFailed, err)
	}

	syms := catalog.ParseSymbols(strings.Join(symbolArgs, " "))
	seq, err := c.Catalog.Sequence(syms...)
	if err != nil {
		return formatter.Fail(ErrCodeBadSequence, err)
	}

	var result *SimplifyResult
	if opts.Database != "" {
		result, err = simplifyWithStore(ctx, opts, c, seq)
		if err != nil {
			return formatter.Fail(ErrCodeStoreFailed, err)
		}
	} else {
		result, err = simplifyDirect(c, seq)
		if err != nil {
			return formatter.Fail(ErrCodeBuildFailed, err)
		}
	}

	slog.Info("simplify complete",
		"input_len", len(result.Input),
		"output_len", len(result.Output),
		"removed", result.Removed,
		"cached", result.Cached)

	var verifyErr error
	if opts.Verify {
		d, err := verifyResult(c.Catalog, seq, result.Output)
		if err != nil {
			return formatter.Fail(ErrCodeVerify, err)
		}
		result.Distance = &d
		if d > opts.Tolerance {
			verifyErr = NewExitError(ExitFailure,
				fmt.Sprintf("verification failed: distance %g exceeds tolerance %g", d, opts.Tolerance)).reported()
		}
	}

	if !opts.Trace {
		result.Firings = nil
	}

	if err := outputSimplify(formatter, result, verifyErr); err != nil {
		return err
	}
	return verifyErr
}

func newEngine(c *compiler.Compiled) (*engine.Engine, error) {
	return engine.New(c.Rules, engine.WithLogger(slog.Default()))
}

func simplifyDirect(c *compiler.Compiled, seq ir.Sequence) (*SimplifyResult, error) {
	eng, err := newEngine(c)
	if err != nil {
		return nil, err
	}
	run := eng.Run(seq)
	return &SimplifyResult{
		Input:   seq.Names(),
		Output:  run.Sequence.Names(),
		Removed: run.Removed,
		Firings: run.Firings,
	}, nil
}

// simplifyWithStore answers from the memo when possible and records new
// runs. Entries written by another engine version are recomputed but not
// replaced.
func simplifyWithStore(ctx context.Context, opts *SimplifyOptions, c *compiler.Compiled, seq ir.Sequence) (*SimplifyResult, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	input := seq.Names()
	inputHash, err := ir.SequenceHash(input)
	if err != nil {
		return nil, err
	}

	red, err := st.ReadReduction(ctx, c.RuleSetHash, inputHash)
	switch {
	case err == nil && red.EngineVersion == ir.EngineVersion:
		firings, err := st.ReadFirings(ctx, red.RunID)
		if err != nil {
			return nil, err
		}
		return &SimplifyResult{
			Input:   input,
			Output:  red.Output,
			Removed: red.Removed,
			Firings: firings,
			Cached:  true,
			RunID:   red.RunID,
		}, nil
	case err == nil:
		slog.Warn("ignoring reduction from another engine version",
			"run_id", red.RunID,
			"engine_version", red.EngineVersion)
	case !store.IsNotFound(err):
		return nil, err
	}

	result, err := simplifyDirect(c, seq)
	if err != nil {
		return nil, err
	}

	gen := opts.RunIDs
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}
	runID, inserted, err := st.WriteReduction(ctx, ir.Reduction{
		RuleSetHash:   c.RuleSetHash,
		InputHash:     inputHash,
		Input:         result.Input,
		Output:        result.Output,
		Removed:       result.Removed,
		RunID:         gen.Generate(),
		EngineVersion: ir.EngineVersion,
	}, result.Firings)
	if err != nil {
		return nil, err
	}
	if inserted {
		result.RunID = runID
	}
	return result, nil
}

// verifyResult returns the Fowler distance between the products of the
// input and the simplified output.
func verifyResult(reg *catalog.Registry, in ir.Sequence, out []ir.Symbol) (float64, error) {
	outSeq, err := reg.Sequence(out...)
	if err != nil {
		return 0, fmt.Errorf("verify: %w", err)
	}
	a, err := reg.Product(in)
	if err != nil {
		return 0, fmt.Errorf("verify: %w", err)
	}
	b, err := reg.Product(outSeq)
	if err != nil {
		return 0, fmt.Errorf("verify: %w", err)
	}
	return linalg.FowlerDistance(a, b)
}

func outputSimplify(formatter *OutputFormatter, result *SimplifyResult, verifyErr error) error {
	if formatter.JSON() {
		if verifyErr != nil {
			return formatter.Failure(ErrCodeVerify, verifyErr.Error(), result)
		}
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s -> %s (removed %d)\n", renderSymbols(result.Input), renderSymbols(result.Output), result.Removed)

	if len(result.Firings) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, len(result.Firings))
		for i, f := range result.Firings {
			rows[i] = []string{
				strconv.FormatInt(f.Seq, 10),
				f.RuleID,
				ir.JoinSymbols(f.Window, " "),
				ir.JoinSymbols(f.Replacement, " "),
			}
		}
		formatter.Table([]string{"SEQ", "RULE", "WINDOW", "REPLACEMENT"}, rows)
	}

	if result.Distance != nil {
		status := "✓"
		if verifyErr != nil {
			status = "✗"
		}
		fmt.Fprintf(w, "%s fowler distance %.3g\n", status, *result.Distance)
	}

	switch {
	case result.Cached:
		formatter.VerboseLog("answered from store, run %s", result.RunID)
	case result.RunID != "":
		formatter.VerboseLog("stored run %s", result.RunID)
	}
	return nil
}

func renderSymbols(syms []ir.Symbol) string {
	if len(syms) == 0 {
		return "(empty)"
	}
	return ir.JoinSymbols(syms, " ")
}
