package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/gatesimp/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestReduction builds a reduction of input to output under a fixed
// rule-set hash.
func createTestReduction(runID string, input, output []ir.Symbol) ir.Reduction {
	return ir.Reduction{
		RuleSetHash:   "rules-a",
		InputHash:     ir.MustSequenceHash(input),
		Input:         input,
		Output:        output,
		Removed:       len(input) - len(output),
		RunID:         runID,
		EngineVersion: ir.EngineVersion,
	}
}
