// Package catalog holds generator registries: the mapping from symbol to
// operator that a simplify run draws its alphabet from.
//
// A Registry is built once per problem and is read-only afterwards. The
// first generator registered fixes the dimension; every later generator
// must match it. The identity symbol always resolves, built on demand at
// the registry's dimension.
//
// Builtin sets (see Builtin) cover the single-qubit Clifford+T alphabet.
// Generalized bases for arbitrary dimension are produced elsewhere and
// registered through Register.
package catalog
