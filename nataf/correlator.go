// SPDX-License-Identifier: MIT

package nataf

import (
	"github.com/katalvlaran/nataf/matrix"
	"gonum.org/v1/gonum/mat"
)

const (
	opCorrelate   = "Correlate"
	opDecorrelate = "Decorrelate"
)

// Correlate maps independent standard normal rows u to rows with correlation
// cz: Z = (H·Uᵀ)ᵀ where H is the lower Cholesky factor of cz.
//
// Errors: matrix.ErrNotPositiveDefinite, matrix.ErrDimensionMismatch and the
// matrix validation sentinels.
func Correlate(u mat.Matrix, cz mat.Symmetric) (*mat.Dense, error) {
	h, err := matrix.CholeskyLower(cz)
	if err != nil {
		return nil, natafErrorf(opCorrelate, err)
	}
	z, err := correlate(h, u)
	if err != nil {
		return nil, natafErrorf(opCorrelate, err)
	}
	return z, nil
}

// Decorrelate inverts Correlate: it solves H·Uᵀ = Zᵀ with a triangular solve.
//
// Errors: as Correlate.
func Decorrelate(z mat.Matrix, cz mat.Symmetric) (*mat.Dense, error) {
	h, err := matrix.CholeskyLower(cz)
	if err != nil {
		return nil, natafErrorf(opDecorrelate, err)
	}
	u, err := decorrelate(h, z)
	if err != nil {
		return nil, natafErrorf(opDecorrelate, err)
	}
	return u, nil
}

func correlate(h *mat.TriDense, u mat.Matrix) (*mat.Dense, error) {
	return matrix.LowerTimesRows(h, u)
}

func decorrelate(h *mat.TriDense, z mat.Matrix) (*mat.Dense, error) {
	n, _ := h.Dims()
	if err := matrix.ValidateColumns(z, n); err != nil {
		return nil, err
	}
	ut, err := matrix.SolveLower(h, z.T())
	if err != nil {
		return nil, err
	}
	u := mat.DenseCopyOf(ut.T())
	return u, nil
}
