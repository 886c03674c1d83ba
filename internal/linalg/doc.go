// Package linalg holds the small set of dense complex matrix operations the
// simplifier needs: identity construction, products, adjoints, scaling and a
// few distance measures used to check numeric equivalence of gate sequences.
//
// Storage is gonum's mat.CDense. Products go through blas/cblas128 (Zgemm),
// which gonum backs with its pure-Go implementation unless a cgo BLAS is
// registered.
//
// All operators handed to this package are square. A nil *mat.CDense stands
// for "no matrix" (purely symbolic operators) and is propagated rather than
// treated as an error.
package linalg
