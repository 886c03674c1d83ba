package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/gatesimp/internal/ir"
)

// TraceSnapshot captures the firing traces of every case in a scenario.
// It is serialized with canonical JSON for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Cases        []CaseResult `json:"cases"`
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// ir.MarshalCanonical only handles primitives, symbols and generic containers.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	cases := make([]any, len(s.Cases))
	for i, c := range s.Cases {
		firings := make([]any, len(c.Firings))
		for j, f := range c.Firings {
			firings[j] = map[string]any{
				"seq":         f.Seq,
				"rule_id":     f.RuleID,
				"window":      f.Window,
				"replacement": f.Replacement,
			}
		}
		cases[i] = map[string]any{
			"name":    c.Name,
			"input":   c.Input,
			"output":  c.Output,
			"removed": c.Removed,
			"firings": firings,
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"cases":         cases,
	}
}

// Marshal returns the canonical JSON form of the snapshot.
func (s *TraceSnapshot) Marshal() ([]byte, error) {
	return ir.MarshalCanonical(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its traces against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the traces don't match the golden file; failed checks are
// returned in the Result, not reported here.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Cases:        result.Cases,
	}
	traceJSON, err := snapshot.Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
