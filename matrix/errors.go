// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All routines MUST return these sentinels and tests MUST check them
// via errors.Is. No routine should panic on user-triggered error conditions.
// Panics are reserved for programmer errors in option constructors.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with matrixErrorf(op, ErrX) at the
// detection site; callers still match with errors.Is.
//
// ERROR PRIORITY (enforced by ValidateCorrelation and tested):
// nil -> shape -> NaN/Inf -> symmetry -> unit diagonal -> bounds.

var (
	// ErrNilMatrix indicates that a nil matrix argument was supplied.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. a sample batch whose column count differs from the factor order.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNotUnitDiagonal signals a correlation matrix whose diagonal is not 1.
	ErrNotUnitDiagonal = errors.New("matrix: diagonal is not unit within eps")

	// ErrOutOfRange signals a correlation entry outside [-1, 1].
	ErrOutOfRange = errors.New("matrix: correlation entry outside [-1, 1]")

	// ErrNotPositiveDefinite is returned when a Cholesky factorisation fails.
	// It is the decomposition error surfaced by the Nataf engine.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrEigenFailed indicates that the symmetric eigen decomposition used by
	// the PSD projection did not converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)
