// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nataf/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNearestPSD_RepairsIndefinite(t *testing.T) {
	t.Parallel()

	// Classic indefinite "correlation": pairwise consistent, jointly impossible.
	a := symFromRows(t, [][]float64{
		{1, 0.9, 0.7},
		{0.9, 1, -0.9},
		{0.7, -0.9, 1},
	})
	require.Less(t, minEigenvalue(t, a), 0.0)

	out, err := matrix.NearestPSD(a)
	require.NoError(t, err)

	assert.NoError(t, matrix.ValidateCorrelation(out))
	assert.GreaterOrEqual(t, minEigenvalue(t, out), -1e-10)
	assert.Equal(t, -0.9, a.At(1, 2), "input must not be mutated")
}

func TestNearestPSD_KeepsValidCorrelation(t *testing.T) {
	t.Parallel()

	a := symFromRows(t, [][]float64{
		{1, 0.5, 0.2},
		{0.5, 1, 0.3},
		{0.2, 0.3, 1},
	})
	out, err := matrix.NearestPSD(a)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(out, a, 1e-9))
}

func TestNearestPSD_EigenFloorAllowsCholesky(t *testing.T) {
	t.Parallel()

	a := symFromRows(t, [][]float64{{1, 1.2}, {1.2, 1}})
	out, err := matrix.NearestPSD(a, matrix.WithEigenFloor(1e-6), matrix.WithPSDIterations(20))
	require.NoError(t, err)

	_, err = matrix.CholeskyLower(out)
	assert.NoError(t, err)
	assert.Less(t, out.At(0, 1), 1.0)
}

func TestNearestPSD_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.NearestPSD(symFromRows(t, [][]float64{{1, math.Inf(1)}, {0, 1}}))
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.ProjectPSD(symFromRows(t, [][]float64{{1}}), -1)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestProjectPSD_ClampsNegativeEigenvalues(t *testing.T) {
	t.Parallel()

	a := symFromRows(t, [][]float64{{1, 2}, {2, 1}}) // eigenvalues 3, -1
	out, err := matrix.ProjectPSD(a, 0)
	require.NoError(t, err)

	// Projection keeps the positive eigenpair only: 1.5·[[1,1],[1,1]].
	want := symFromRows(t, [][]float64{{1.5, 1.5}, {1.5, 1.5}})
	assert.True(t, mat.EqualApprox(out, want, 1e-12))
}

func TestSampleCorrelation(t *testing.T) {
	t.Parallel()

	x := denseFromRows(t, [][]float64{
		{1, 2, 5},
		{2, 4, 3},
		{3, 6, 4},
		{4, 8, 1},
	})
	c, err := matrix.SampleCorrelation(x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, c.At(2, 2), 1e-12)

	_, err = matrix.SampleCorrelation(mat.NewDense(1, 2, nil))
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
