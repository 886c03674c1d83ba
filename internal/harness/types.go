package harness

import "github.com/roach88/gatesimp/internal/ir"

// CaseResult is what the engine produced for one case.
type CaseResult struct {
	Name    string      `json:"name"`
	Input   []ir.Symbol `json:"input"`
	Output  []ir.Symbol `json:"output"`
	Removed int         `json:"removed"`
	Firings []ir.Firing `json:"firings"`
}

// Fired returns the IDs of the rules that fired, in firing order.
func (c CaseResult) Fired() []string {
	ids := make([]string, len(c.Firings))
	for i, f := range c.Firings {
		ids[i] = f.RuleID
	}
	return ids
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true when every expectation and property held.
	Pass bool `json:"pass"`

	// Cases holds one entry per scenario case, in scenario order.
	Cases []CaseResult `json:"cases"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCase appends a case outcome.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
}
