package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gatesimp/internal/testutil"
)

var scenariosDir = testutil.ScenariosDir()

// writeScenarioFile writes a one-case scenario against the Clifford+T YAML
// problem into dir.
func writeScenarioFile(t *testing.T, dir, name, sequence string, removed int) {
	t.Helper()
	problem := testutil.ProblemPath("clifford_t.yaml")

	content := fmt.Sprintf(`name: %s
description: "generated"
problem: %s
cases:
  - name: only
    sequence: %q
    expect:
      removed: %d
`, name, problem, sequence, removed)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0644))
}

func runTestCmd(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runTestCmd(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := runTestCmd(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.False(t, IsReported(err), "nothing was written for a missing directory")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	buf, err := runTestCmd(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	buf, err := runTestCmd(t, "json", t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandRepositoryScenarios(t *testing.T) {
	buf, err := runTestCmd(t, "text", scenariosDir)
	require.NoError(t, err, buf.String())

	out := buf.String()
	assert.Contains(t, out, "✓ clifford_t_basics (8 cases)")
	assert.Contains(t, out, "✓ clifford_t_yaml (2 cases)")
	assert.Contains(t, out, "✓ pauli_involutions (4 cases)")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	buf, err := runTestCmd(t, "json", scenariosDir, "--filter", "clifford_*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Passed)
	assert.Equal(t, "clifford_t_basics", resp.Data.Scenarios[0].Name)
}

func TestTestCommandExpectationFailure(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "good", "H H", 1)
	writeScenarioFile(t, dir, "wrong", "H H", 2)

	buf, err := runTestCmd(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out := buf.String()
	assert.Contains(t, out, "✓ good (1 cases)")
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "only: check failed: removed")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
	assert.True(t, IsReported(err))
}

func TestTestCommandFailureJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "wrong", "H H", 2)

	buf, err := runTestCmd(t, "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\n"), 0644))

	buf, err := runTestCmd(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ broken.yaml")
	assert.Contains(t, buf.String(), "failed to load scenario")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "pair", "H H", 1)
	goldenPath := filepath.Join(dir, "golden", "pair.golden")

	_, err := runTestCmd(t, "text", dir, "--update")
	require.NoError(t, err)

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"pair"`)
	assert.Contains(t, string(data), `"rule_id":"self_inverse(H)"`)

	_, err = runTestCmd(t, "text", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"cases":[],"scenario_name":"pair"}`), 0644))
	buf, err := runTestCmd(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "trace does not match golden file")
}

func TestTestHelpText(t *testing.T) {
	buf, err := runTestCmd(t, "text", "--help")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "scenario harness")
	assert.Contains(t, output, "--update")
	assert.Contains(t, output, "--filter")
	assert.Contains(t, output, "scenarios-dir")
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test1.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test2.yml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignore.txt"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"pauli-x.yaml", "pauli-y.yaml", "clifford.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte(""), 0644))
	}

	files, err := findScenarioFiles(tmpDir, "pauli-*")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "pauli-x.yaml", filepath.Base(files[0]))
	assert.Equal(t, "pauli-y.yaml", filepath.Base(files[1]))
}

func TestFindScenarioFilesBadFilter(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.yaml"), []byte(""), 0644))

	_, err := findScenarioFiles(tmpDir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestFindScenarioFilesSubdirectories(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "root.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "sub.yaml"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestGoldenFilePath(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"/path/to/scenario.yaml", "/path/to/golden/scenario.golden"},
		{"/path/to/scenario.yml", "/path/to/golden/scenario.golden"},
		{"scenarios/test.yaml", "scenarios/golden/test.golden"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, goldenFilePath(tc.input))
	}
}
