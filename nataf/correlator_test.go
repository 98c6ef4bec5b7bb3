// SPDX-License-Identifier: MIT

package nataf_test

import (
	"testing"

	"github.com/katalvlaran/nataf/matrix"
	"github.com/katalvlaran/nataf/nataf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCorrelate_DecorrelateRoundTrip(t *testing.T) {
	t.Parallel()

	cz := corr(t, [][]float64{
		{1, 0.5, 0.2},
		{0.5, 1, 0.4},
		{0.2, 0.4, 1},
	})
	u := mat.NewDense(3, 3, []float64{
		0.1, -1.2, 0.7,
		2.0, 0.3, -0.4,
		-0.6, 0.9, 1.5,
	})
	orig := mat.DenseCopyOf(u)

	z, err := nataf.Correlate(u, cz)
	require.NoError(t, err)
	assert.True(t, mat.Equal(orig, u))

	// First column is untouched: H[0,0] = 1.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, u.At(i, 0), z.At(i, 0), 1e-15)
	}

	back, err := nataf.Decorrelate(z, cz)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(u, back, 1e-12))
}

func TestCorrelate_InducesCorrelation(t *testing.T) {
	t.Parallel()

	cz := corr(t, [][]float64{{1, -0.7}, {-0.7, 1}})
	rnd := nataf.NewRand(13)
	n := 20000
	data := make([]float64, 2*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	z, err := nataf.Correlate(mat.NewDense(n, 2, data), cz)
	require.NoError(t, err)

	got, err := matrix.SampleCorrelation(z)
	require.NoError(t, err)
	assert.InDelta(t, -0.7, got.At(0, 1), 0.02)
}

func TestCorrelate_Errors(t *testing.T) {
	t.Parallel()

	cz := corr(t, [][]float64{{1, 0.5}, {0.5, 1}})
	_, err := nataf.Correlate(mat.NewDense(2, 3, nil), cz)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = nataf.Decorrelate(mat.NewDense(2, 3, nil), cz)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	singular := corr(t, [][]float64{{1, 1}, {1, 1}})
	_, err = nataf.Correlate(mat.NewDense(1, 2, nil), singular)
	assert.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
	_, err = nataf.Decorrelate(mat.NewDense(1, 2, nil), singular)
	assert.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
}
