// SPDX-License-Identifier: MIT

// Package nataf: deterministic random sources for Generate.
//
// math/rand.Rand is not goroutine-safe. Do not share one *rand.Rand across
// goroutines; derive one per worker with NewRand.
package nataf

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// DefaultSeed is used when callers pass seed == 0 or a nil source.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand. seed == 0 selects DefaultSeed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// standardNormal fills an rows×cols matrix with independent N(0, 1) draws in
// row-major order.
func standardNormal(rnd *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}
