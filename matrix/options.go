// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance used by symmetry, unit-diagonal and
	// bound checks on correlation matrices.
	DefaultEpsilon = 1e-9

	// DefaultPSDIterations is the number of alternating projections performed
	// by NearestPSD.
	DefaultPSDIterations = 10

	// DefaultEigenFloor is the smallest eigenvalue kept by the PSD cone
	// projection. Zero yields a semi-definite result.
	DefaultEigenFloor = 0.0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid    = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicIterationsInvalid = "matrix: WithPSDIterations: iterations must be > 0"
	panicFloorInvalid      = "matrix: WithEigenFloor: floor must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps        float64 // >= 0; DefaultEpsilon
	iterations int     // > 0; DefaultPSDIterations
	eigenFloor float64 // >= 0; DefaultEigenFloor
}

// defaultOptions returns the zero-configuration policy.
func defaultOptions() Options {
	return Options{
		eps:        DefaultEpsilon,
		iterations: DefaultPSDIterations,
		eigenFloor: DefaultEigenFloor,
	}
}

// gatherOptions applies opts on top of the defaults in order.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// WithEpsilon sets the tolerance of structural checks.
// Panics if eps is negative, NaN or Inf.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithPSDIterations sets the number of alternating projections in NearestPSD.
// Panics if k <= 0.
func WithPSDIterations(k int) Option {
	if k <= 0 {
		panic(panicIterationsInvalid)
	}
	return func(o *Options) { o.iterations = k }
}

// WithEigenFloor sets the lower clamp applied to eigenvalues in the PSD cone
// projection. A small positive floor keeps the result strictly positive
// definite so that a later Cholesky factorisation succeeds.
// Panics if floor is negative, NaN or Inf.
func WithEigenFloor(floor float64) Option {
	if floor < 0 || math.IsNaN(floor) || math.IsInf(floor, 0) {
		panic(panicFloorInvalid)
	}
	return func(o *Options) { o.eigenFloor = floor }
}
