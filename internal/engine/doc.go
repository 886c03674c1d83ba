// Package engine implements the windowed fixpoint simplifier.
//
// The engine owns an ordered rule set and rewrites an operator sequence
// until no rule matches anywhere in it.
//
// ALGORITHM:
//
// The sequence is split into three parts: remaining input (consumed from
// its tail), a scratch window of at most maxArity operators, and the
// processed suffix of the result. Each step fills the scratch window from
// remaining, then runs one pass over the rules in declaration order. A
// rule whose arity fits is tested against the last Arity() scratch
// operators; when it fires the window is replaced and later rules in the
// same pass see the rewritten scratch.
//
// After a pass that fired, the scratch window is re-centered on the last
// replacement: operators before it go back to remaining and up to
// maxArity-1 operators are pulled back from processed, so every window
// that spans the rewrite point is tested again. After a pass that did not
// fire, the last scratch operator is retired to processed.
//
// Every firing strictly shortens the sequence and every quiet pass moves
// the window one operator left, so the loop terminates. On exit no rule
// matches any window of the result, which makes Simplify idempotent.
//
// RULE ORDER:
//
// When several rules could match the same window, the first in
// declaration order wins for that pass. Callers order rules from most
// specific (long fixed patterns) to most general.
package engine
