// SPDX-License-Identifier: MIT

// Package nataf: functional options shared by the integrator, the solver and
// the Transform constructor. Each function reads only the options relevant to
// it; the rest are ignored.
package nataf

import (
	"log/slog"
	"math"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultMaxIter bounds the number of ITAM iterations.
	DefaultMaxIter = 100

	// DefaultBeta is the damping exponent of the multiplicative update.
	DefaultBeta = 1.0

	// DefaultThreshold1 bounds the Frobenius norm of Cx - Cx_est.
	DefaultThreshold1 = 0.001

	// DefaultThreshold2 bounds the relative change of that norm between
	// consecutive iterations.
	DefaultThreshold2 = 0.01

	// DefaultQuadratureOrder is the number of Gauss–Legendre nodes per axis.
	DefaultQuadratureOrder = 1024

	// DefaultZMax is the half-width of the integration square [-z_max, z_max]².
	DefaultZMax = 8.0
)

const (
	panicMaxIterInvalid    = "nataf: WithMaxIter: n must be > 0"
	panicBetaInvalid       = "nataf: WithBeta: beta must be finite and > 0"
	panicThresholdsInvalid = "nataf: WithThresholds: thresholds must be non-negative and not NaN"
	panicQuadInvalid       = "nataf: WithQuadrature: order must be > 1 and zmax finite and > 0"
	panicWorkersInvalid    = "nataf: WithWorkers: n must be >= 0"
)

// Option configures IntegratePair, DistortZ2X, SolveDistortion and New.
type Option func(*options)

type options struct {
	corrX, corrZ mat.Symmetric

	maxIter    int
	beta       float64
	threshold1 float64
	threshold2 float64

	order int
	zmax  float64

	workers int
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		maxIter:    DefaultMaxIter,
		beta:       DefaultBeta,
		threshold1: DefaultThreshold1,
		threshold2: DefaultThreshold2,
		order:      DefaultQuadratureOrder,
		zmax:       DefaultZMax,
		logger:     slog.New(slog.DiscardHandler),
	}
}

func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// WithCorrX supplies the target physical-space correlation matrix to New.
func WithCorrX(c mat.Symmetric) Option {
	return func(o *options) { o.corrX = c }
}

// WithCorrZ supplies the normal-space correlation matrix to New.
func WithCorrZ(c mat.Symmetric) Option {
	return func(o *options) { o.corrZ = c }
}

// WithMaxIter bounds the ITAM iterations. Panics if n <= 0.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}
	return func(o *options) { o.maxIter = n }
}

// WithBeta sets the damping exponent of the ITAM update. Panics unless beta
// is finite and positive.
func WithBeta(beta float64) Option {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta <= 0 {
		panic(panicBetaInvalid)
	}
	return func(o *options) { o.beta = beta }
}

// WithThresholds sets the absolute (t1) and relative (t2) stopping bounds.
// +Inf is accepted and stops after the first iteration whose error is finite.
// Panics on negative or NaN values.
func WithThresholds(t1, t2 float64) Option {
	if math.IsNaN(t1) || math.IsNaN(t2) || t1 < 0 || t2 < 0 {
		panic(panicThresholdsInvalid)
	}
	return func(o *options) {
		o.threshold1 = t1
		o.threshold2 = t2
	}
}

// WithQuadrature sets the Gauss–Legendre order per axis and the half-width of
// the integration square. Panics on order < 2 or a non-positive zmax.
func WithQuadrature(order int, zmax float64) Option {
	if order < 2 || math.IsNaN(zmax) || math.IsInf(zmax, 0) || zmax <= 0 {
		panic(panicQuadInvalid)
	}
	return func(o *options) {
		o.order = order
		o.zmax = zmax
	}
}

// WithWorkers bounds the goroutines evaluating correlation pairs.
// Zero selects runtime.GOMAXPROCS(0). Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}
	return func(o *options) { o.workers = n }
}

// WithLogger routes solver progress to l. A nil logger keeps the default,
// which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
