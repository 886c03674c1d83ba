// Package ir provides the canonical value types shared by every gatesimp
// package: symbols, operators, sequences, rule and problem specifications,
// firing records, and the configuration error taxonomy.
//
// ir imports no other internal package except linalg, which it uses to carry
// operator matrices. Everything else builds on ir, never the reverse.
//
// Key design constraints:
//   - Operators are values. Methods return new operators and never mutate
//     the receiver's matrix or ancestor slice.
//   - Operator identity is symbolic: (Name, Ancestors). Matrices never take
//     part in equality.
//   - Content hashes use canonical JSON with NFC-normalized strings so that
//     the same rule set or sequence always hashes identically.
package ir
