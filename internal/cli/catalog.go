package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gatesimp/internal/ir"
	"github.com/roach88/gatesimp/internal/linalg"
)

// GeneratorInfo describes one catalog entry.
type GeneratorInfo struct {
	Symbol    ir.Symbol   `json:"symbol"`
	Ancestors []ir.Symbol `json:"ancestors"`
	Matrix    string      `json:"matrix,omitempty"` // only with --matrices
}

// CatalogResult is the JSON payload of the catalog command.
type CatalogResult struct {
	Identity   ir.Symbol       `json:"identity"`
	Dimension  int             `json:"dimension"`
	Generators []GeneratorInfo `json:"generators"`
}

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Matrices bool
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog <problem>",
		Short: "List the generators a problem's sequences may use",
		Long: `List the generator catalog of a problem in registration order.

Derived generators (such as Td, the adjoint of T) show the ancestry their
matrix is rebuilt from.

Examples:
  gatesimp catalog testdata/problems/clifford_t.cue
  gatesimp catalog testdata/problems/pauli --matrices`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Matrices, "matrices", false, "include generator matrices")

	return cmd
}

func runCatalog(opts *CatalogOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	c, err := BuildProblem(path)
	if err != nil {
		return formatter.Fail(ErrCodeBuildFailed, err)
	}
	reg := c.Catalog

	result := CatalogResult{
		Identity:   reg.IdentitySymbol(),
		Dimension:  reg.Dim(),
		Generators: make([]GeneratorInfo, 0, reg.Len()),
	}
	for _, sym := range reg.Ordered() {
		op, _ := reg.Lookup(sym)
		info := GeneratorInfo{Symbol: sym, Ancestors: op.Ancestors}
		if opts.Matrices {
			info.Matrix = linalg.Format(op.Matrix)
		}
		result.Generators = append(result.Generators, info)
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "identity %s, dimension %d\n\n", result.Identity, result.Dimension)

	rows := make([][]string, len(result.Generators))
	for i, g := range result.Generators {
		rows[i] = []string{string(g.Symbol), ir.JoinSymbols(g.Ancestors, " ")}
	}
	formatter.Table([]string{"SYMBOL", "ANCESTORS"}, rows)

	if opts.Matrices {
		for _, g := range result.Generators {
			fmt.Fprintf(w, "\n%s =\n%s\n", g.Symbol, g.Matrix)
		}
	}
	return nil
}
