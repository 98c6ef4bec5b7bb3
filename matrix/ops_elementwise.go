// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small element-wise kernels over symmetric matrices used by the
//     ITAM fixed point (sanitise, distance, off-diagonal extrema).
//
// Determinism & Performance:
//   - Fixed loop orders over the upper triangle (i ≤ j).
//   - No hidden allocations beyond the output matrix.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opReplaceInfNaN     = "ReplaceInfNaN"
	opFrobeniusDistance = "FrobeniusDistance"
	opSubSym            = "SubSym"
)

// ReplaceInfNaN returns a copy of a where every {±Inf, NaN} is replaced by val.
// Time: O(n²). Space: O(n²). Deterministic.
//
// Policy: val must be finite; otherwise ErrNaNInf is returned.
func ReplaceInfNaN(a mat.Symmetric, val float64) (*mat.SymDense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opReplaceInfNaN, err)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return nil, matrixErrorf(opReplaceInfNaN, ErrNaNInf)
	}
	n := a.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = val
			}
			out.SetSym(i, j, v)
		}
	}
	return out, nil
}

// FrobeniusDistance returns ‖a − b‖_F.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func FrobeniusDistance(a, b mat.Matrix) (float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return 0, matrixErrorf(opFrobeniusDistance, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return 0, matrixErrorf(opFrobeniusDistance, err)
	}
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != cb {
		return 0, matrixErrorf(opFrobeniusDistance, ErrDimensionMismatch)
	}
	var diff mat.Dense
	diff.Sub(a, b)
	return mat.Norm(&diff, 2), nil
}

// SubSym returns a − b for two symmetric matrices of the same order.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(n²).
func SubSym(a, b mat.Symmetric) (*mat.SymDense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opSubSym, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSubSym, err)
	}
	n := a.SymmetricDim()
	if b.SymmetricDim() != n {
		return nil, matrixErrorf(opSubSym, ErrDimensionMismatch)
	}
	out := mat.NewSymDense(n, nil)
	subSymTo(out, a, b)
	return out, nil
}

// subSymTo writes a − b into dst over the upper triangle; orders must match.
func subSymTo(dst *mat.SymDense, a, b mat.Symmetric) {
	n := dst.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dst.SetSym(i, j, a.At(i, j)-b.At(i, j))
		}
	}
}

// MaxAbsOffDiagonal returns max |a[i,j]| over i≠j, or 0 for a 1×1 matrix.
// Complexity: O(n²).
func MaxAbsOffDiagonal(a mat.Symmetric) float64 {
	n := a.SymmetricDim()
	maxOff := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v := math.Abs(a.At(i, j)); v > maxOff {
				maxOff = v
			}
		}
	}
	return maxOff
}
