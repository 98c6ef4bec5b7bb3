// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for correlation-matrix tests.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// symFromRows builds a *mat.SymDense from the upper triangle of rows.
func symFromRows(t *testing.T, rows [][]float64) *mat.SymDense {
	t.Helper()
	n := len(rows)
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		require.Len(t, rows[i], n, "row %d", i)
		for j := i; j < n; j++ {
			s.SetSym(i, j, rows[i][j])
		}
	}
	return s
}

// denseFromRows builds a *mat.Dense from row slices.
func denseFromRows(t *testing.T, rows [][]float64) *mat.Dense {
	t.Helper()
	r := len(rows)
	c := len(rows[0])
	d := mat.NewDense(r, c, nil)
	for i := range rows {
		require.Len(t, rows[i], c, "row %d", i)
		d.SetRow(i, rows[i])
	}
	return d
}

// minEigenvalue returns the smallest eigenvalue of a symmetric matrix.
func minEigenvalue(t *testing.T, a mat.Symmetric) float64 {
	t.Helper()
	var es mat.EigenSym
	require.True(t, es.Factorize(a, false), "eigen decomposition failed")
	values := es.Values(nil)
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
