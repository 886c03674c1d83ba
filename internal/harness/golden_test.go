package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gatesimp/internal/ir"
)

// Golden files live in testdata/golden. To regenerate after an intended
// engine change:
//
//	go test ./internal/harness -run Golden -update
func TestRunWithGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"clifford_t_basics", "clifford_t_yaml", "pauli_involutions"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join(scenariosDir(), name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestAssertGolden_ReusesResult(t *testing.T) {
	s, err := LoadScenario(filepath.Join(scenariosDir(), "pauli_involutions.yaml"))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, "pauli_involutions", result))
}

func TestTraceSnapshot_Marshal(t *testing.T) {
	snap := TraceSnapshot{
		ScenarioName: "tiny",
		Cases: []CaseResult{{
			Name:    "pair",
			Input:   ir.Symbols("T", "Td"),
			Output:  ir.Symbols("I"),
			Removed: 1,
			Firings: []ir.Firing{{
				Seq: 1, RuleID: "adjoint",
				Window: ir.Symbols("T", "Td"), Replacement: ir.Symbols("I"),
			}},
		}},
	}

	got, err := snap.Marshal()
	require.NoError(t, err)

	want := `{"cases":[{"firings":[{"replacement":["I"],"rule_id":"adjoint","seq":1,"window":["T","Td"]}],` +
		`"input":["T","Td"],"name":"pair","output":["I"],"removed":1}],"scenario_name":"tiny"}`
	assert.Equal(t, want, string(got))
}

func TestTraceSnapshot_Deterministic(t *testing.T) {
	s, err := LoadScenario(filepath.Join(scenariosDir(), "clifford_t_basics.yaml"))
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	a, err := (&TraceSnapshot{ScenarioName: s.Name, Cases: first.Cases}).Marshal()
	require.NoError(t, err)
	b, err := (&TraceSnapshot{ScenarioName: s.Name, Cases: second.Cases}).Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
