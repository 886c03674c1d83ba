// Package rules defines the closed set of rewrite rules the simplifier
// applies to operator windows.
//
// A Rule is a tagged variant over four kinds:
//
//   - identity: I·x and x·I collapse to x
//   - self_inverse: x·x collapses to I for one configured symbol x
//   - adjoint: x·xd and xd·x collapse to I
//   - fixed_pattern: a literal symbol sequence collapses to I
//
// Every kind matches on operator names only. Matrices are carried through
// (identity replacements are sized to the window) but never compared.
//
// Rules are built through a Factory, which fixes the identity symbol and
// adjoint marker for a whole rule set and rejects anything outside the
// closed kind set with an ir.ConfigError.
package rules
