// SPDX-License-Identifier: MIT

package nataf

import (
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// grid holds Gauss–Legendre nodes and weights on [-zmax, zmax]. The 2-D rule
// is the tensor product of the 1-D rule with itself. Grids are read-only once
// built.
type grid struct {
	nodes   []float64
	weights []float64
	probs   []float64 // Φ(nodes)
}

type gridKey struct {
	order int
	zmax  float64
}

var (
	gridMu    sync.Mutex
	gridCache = map[gridKey]*grid{}
)

// legendreGrid returns the cached grid for (order, zmax), building it on
// first use.
func legendreGrid(order int, zmax float64) *grid {
	key := gridKey{order: order, zmax: zmax}

	gridMu.Lock()
	defer gridMu.Unlock()
	if g, ok := gridCache[key]; ok {
		return g
	}
	g := &grid{
		nodes:   make([]float64, order),
		weights: make([]float64, order),
		probs:   make([]float64, order),
	}
	quad.Legendre{}.FixedLocations(g.nodes, g.weights, -zmax, zmax)
	for k, t := range g.nodes {
		g.probs[k] = distuv.UnitNormal.CDF(t)
	}
	gridCache[key] = g
	return g
}
