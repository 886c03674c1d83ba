// Package store provides SQLite-backed memoization of simplify runs.
//
// The store keeps two tables:
//   - reductions: one row per (rule_set_hash, input_hash), the simplified
//     output and the run that produced it
//   - firings: the ordered rule firings of each stored run
//
// A reduction is content-addressed: the rule-set hash covers the symbol
// conventions and the ordered rule specs, the input hash covers the input
// symbol sequence (see internal/ir/hash.go). Writing the same key twice is
// a no-op and the first run wins, so the memo never changes an answer
// once recorded.
//
// Symbol lists are stored as canonical JSON arrays.
//
// # Database Configuration
//
// Pragmas are passed as driver DSN parameters so every pooled connection
// gets them:
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: firings must reference a stored run
package store
