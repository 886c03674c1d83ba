package cli

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gatesimp/internal/harness"
)

// ErrCodeTestFailed is reported when one or more scenarios fail.
const ErrCodeTestFailed = "E_TEST_FAILED"

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Cases  int      `json:"cases"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario files against their problems",
		Long: `Run the scenario harness over every YAML file in a directory.

Each scenario names a problem file (relative to the scenario) and a list
of sequences with expected results. Besides the stated expectations every
case is checked for length accounting, firing accounting and idempotence.
When golden/<scenario>.golden exists next to the scenario, the firing
trace must match it byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  gatesimp test testdata/scenarios
  gatesimp test testdata/scenarios --filter "clifford_*"
  gatesimp test testdata/scenarios --update
  gatesimp test testdata/scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	files, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}

	if len(files) == 0 {
		if formatter.JSON() {
			return formatter.Success(result)
		}
		fmt.Fprintln(formatter.Writer, "No scenarios found.")
		return nil
	}

	for _, file := range files {
		sr := runScenario(file, opts)
		if !formatter.JSON() {
			printScenario(formatter, sr)
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	return outputTestResult(formatter, result)
}

// findScenarioFiles finds all YAML scenario files under dir, in lexical
// order.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(d.Name(), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// runScenario loads, runs and golden-checks one scenario file.
func runScenario(file string, opts *TestOptions) ScenarioResult {
	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(file),
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	sr := ScenarioResult{Name: scenario.Name, Cases: len(scenario.Cases)}

	result, err := harness.Run(scenario)
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return sr
	}

	snapshot := harness.TraceSnapshot{ScenarioName: scenario.Name, Cases: result.Cases}
	trace, err := snapshot.Marshal()
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("failed to marshal trace: %v", err)}
		return sr
	}

	goldenPath := goldenFilePath(file)
	if opts.Update {
		if err := writeGolden(goldenPath, trace); err != nil {
			sr.Errors = []string{fmt.Sprintf("failed to update golden file: %v", err)}
			return sr
		}
	} else if want, err := os.ReadFile(goldenPath); err == nil {
		if !bytes.Equal(want, trace) {
			result.AddError("trace does not match golden file (run with --update to regenerate)")
		}
	} else if !os.IsNotExist(err) {
		sr.Errors = []string{fmt.Sprintf("failed to read golden file: %v", err)}
		return sr
	}

	sr.Pass = result.Pass
	sr.Errors = result.Errors
	return sr
}

// goldenFilePath returns the path to the golden file for a scenario.
func goldenFilePath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

func writeGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func printScenario(formatter *OutputFormatter, sr ScenarioResult) {
	w := formatter.Writer
	if sr.Pass {
		fmt.Fprintf(w, "✓ %s (%d cases)\n", sr.Name, sr.Cases)
		return
	}
	fmt.Fprintf(w, "✗ %s\n", sr.Name)
	for _, e := range sr.Errors {
		for _, line := range strings.Split(strings.TrimRight(e, "\n"), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func outputTestResult(formatter *OutputFormatter, result TestResult) error {
	var failErr error
	if result.Failed > 0 {
		// Test failures = exit code 1
		failErr = NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed)).reported()
	}

	if formatter.JSON() {
		if failErr != nil {
			if err := formatter.Failure(ErrCodeTestFailed, failErr.Error(), result); err != nil {
				return err
			}
			return failErr
		}
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if failErr != nil {
		return failErr
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
