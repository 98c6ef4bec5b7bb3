// SPDX-License-Identifier: MIT

// Package matrix provides the correlation-matrix toolkit used by the Nataf
// engine: validation of correlation matrices, element-wise sanitisers,
// Cholesky factorisation with triangular solves, and projection onto the
// nearest positive semi-definite correlation matrix.
//
// All routines operate on gonum types (mat.Symmetric, *mat.SymDense,
// *mat.TriDense, *mat.Dense). Inputs are never mutated; every result is a
// freshly allocated matrix.
//
// Errors:
//
//	Every failure is reported through the package sentinels in errors.go,
//	wrapped with an operation tag ("CholeskyLower: matrix: ..."). Match with
//	errors.Is; never compare strings.
//
// Complexity:
//
//	Validators are O(n²); CholeskyLower is O(n³); NearestPSD is
//	O(k·n³) for k alternating-projection iterations.
package matrix
