package ir

import "strings"

// Symbol is a generator or operator label, e.g. "H", "T", "Td", "I".
type Symbol string

// Default symbol conventions.
const (
	// DefaultIdentity names the identity element.
	DefaultIdentity Symbol = "I"

	// DefaultAdjointMarker is appended to a symbol to name its adjoint
	// ("T" -> "Td").
	DefaultAdjointMarker = "d"
)

// Symbols converts plain strings to symbols.
func Symbols(names ...string) []Symbol {
	out := make([]Symbol, len(names))
	for i, n := range names {
		out[i] = Symbol(n)
	}
	return out
}

// SymbolStrings converts symbols back to plain strings.
func SymbolStrings(syms []Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = string(s)
	}
	return out
}

// JoinSymbols renders symbols separated by sep.
func JoinSymbols(syms []Symbol, sep string) string {
	return strings.Join(SymbolStrings(syms), sep)
}

// RuleSpec is the declarative form of one rewrite rule, as read from a
// problem file. Kind is one of "identity", "self_inverse", "adjoint",
// "fixed_pattern".
type RuleSpec struct {
	ID       string   `json:"id" yaml:"id"`
	Kind     string   `json:"kind" yaml:"kind"`
	Operands []Symbol `json:"operands,omitempty" yaml:"operands,omitempty"`
	Result   Symbol   `json:"result,omitempty" yaml:"result,omitempty"`
}

// GeneratorSpec declares one generator matrix in row-major order.
type GeneratorSpec struct {
	Name Symbol         `json:"name"`
	Rows [][]complex128 `json:"-"`
}

// Problem is one compiled problem instance: the generator catalog and the
// ordered rule set.
type Problem struct {
	Identity      Symbol          `json:"identity"`
	AdjointMarker string          `json:"adjoint_marker"`
	Catalog       string          `json:"catalog,omitempty"` // builtin generator set, "" for none
	Generators    []GeneratorSpec `json:"generators,omitempty"`
	Rules         []RuleSpec      `json:"rules"`
}

// Firing records one rule application during a simplify run.
type Firing struct {
	Seq         int64    `json:"seq"` // 1-based, in firing order
	RuleID      string   `json:"rule_id"`
	Window      []Symbol `json:"window"`
	Replacement []Symbol `json:"replacement"`
}

// Reduction is a stored simplify result, keyed by the rule-set hash and the
// input sequence hash.
type Reduction struct {
	RuleSetHash   string   `json:"rule_set_hash"`
	InputHash     string   `json:"input_hash"`
	Input         []Symbol `json:"input"`
	Output        []Symbol `json:"output"`
	Removed       int      `json:"removed"`
	RunID         string   `json:"run_id"`
	EngineVersion string   `json:"engine_version"`
}
