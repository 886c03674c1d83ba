// Package compiler turns problem files into a generator catalog and an
// ordered rule set.
//
// A problem file is CUE or YAML:
//
//	identity:       "I"
//	adjoint_marker: "d"
//	catalog:        "clifford_t"
//	generator: S: matrix: [[1, 0], [0, [0, 1]]]
//	rule: [
//		{kind: "fixed_pattern", pattern: ["T", "T", "T", "T", "T", "T", "T", "T"]},
//		{kind: "identity"},
//		{kind: "self_inverse", symbol: "H"},
//		{kind: "adjoint"},
//	]
//
// Matrix entries are numbers or [re, im] pairs. CUE input is unified with
// the embedded #Problem schema before compilation, so unknown fields and
// wrong types are reported with source positions.
//
// Compilation is split the same way for both formats: parse into
// ir.Problem, Validate (collects every error), then Build the registry and
// rules.
package compiler
