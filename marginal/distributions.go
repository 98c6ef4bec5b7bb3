// SPDX-License-Identifier: MIT

package marginal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// distribution is the subset of gonum's distuv API wrapped by dist.
type distribution interface {
	CDF(x float64) float64
	Quantile(p float64) float64
	Prob(x float64) float64
	Mean() float64
	Variance() float64
}

// dist adapts a distuv distribution to Marginal.
type dist struct {
	name     string
	d        distribution
	gaussian bool
}

var (
	_ Marginal = dist{}
	_ Gaussian = dist{}
)

func (m dist) CDF(x float64) float64  { return m.d.CDF(x) }
func (m dist) ICDF(p float64) float64 { return m.d.Quantile(p) }
func (m dist) PDF(x float64) float64  { return m.d.Prob(x) }
func (m dist) IsGaussian() bool       { return m.gaussian }
func (m dist) String() string         { return m.name }

func (m dist) Moments() (mean, variance float64) {
	return m.d.Mean(), m.d.Variance()
}

// finite reports whether every value is neither NaN nor ±Inf.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func invalid(name string, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", name, fmt.Sprintf(format, args...), ErrInvalidParameter)
}

// Normal returns N(mu, sigma²). Requires sigma > 0.
func Normal(mu, sigma float64) (Marginal, error) {
	if !finite(mu, sigma) || sigma <= 0 {
		return nil, invalid("normal", "mu=%g sigma=%g", mu, sigma)
	}
	return dist{
		name:     fmt.Sprintf("normal(mu=%g, sigma=%g)", mu, sigma),
		d:        distuv.Normal{Mu: mu, Sigma: sigma},
		gaussian: true,
	}, nil
}

// StandardNormal returns N(0, 1).
func StandardNormal() Marginal {
	return dist{name: "normal(mu=0, sigma=1)", d: distuv.UnitNormal, gaussian: true}
}

// Uniform returns U(min, max). Requires min < max.
func Uniform(min, max float64) (Marginal, error) {
	if !finite(min, max) || min >= max {
		return nil, invalid("uniform", "min=%g max=%g", min, max)
	}
	return dist{
		name: fmt.Sprintf("uniform(min=%g, max=%g)", min, max),
		d:    distuv.Uniform{Min: min, Max: max},
	}, nil
}

// LogNormal returns the distribution of exp(N(mu, sigma²)). Requires sigma > 0.
func LogNormal(mu, sigma float64) (Marginal, error) {
	if !finite(mu, sigma) || sigma <= 0 {
		return nil, invalid("lognormal", "mu=%g sigma=%g", mu, sigma)
	}
	return dist{
		name: fmt.Sprintf("lognormal(mu=%g, sigma=%g)", mu, sigma),
		d:    distuv.LogNormal{Mu: mu, Sigma: sigma},
	}, nil
}

// Exponential returns Exp(rate). Requires rate > 0.
func Exponential(rate float64) (Marginal, error) {
	if !finite(rate) || rate <= 0 {
		return nil, invalid("exponential", "rate=%g", rate)
	}
	return dist{
		name: fmt.Sprintf("exponential(rate=%g)", rate),
		d:    distuv.Exponential{Rate: rate},
	}, nil
}

// Gamma returns Gamma(shape, rate). Requires shape > 0 and rate > 0.
func Gamma(shape, rate float64) (Marginal, error) {
	if !finite(shape, rate) || shape <= 0 || rate <= 0 {
		return nil, invalid("gamma", "alpha=%g beta=%g", shape, rate)
	}
	return dist{
		name: fmt.Sprintf("gamma(alpha=%g, beta=%g)", shape, rate),
		d:    distuv.Gamma{Alpha: shape, Beta: rate},
	}, nil
}

// Beta returns Beta(alpha, beta) on [0, 1]. Requires alpha > 0 and beta > 0.
func Beta(alpha, beta float64) (Marginal, error) {
	if !finite(alpha, beta) || alpha <= 0 || beta <= 0 {
		return nil, invalid("beta", "alpha=%g beta=%g", alpha, beta)
	}
	return dist{
		name: fmt.Sprintf("beta(alpha=%g, beta=%g)", alpha, beta),
		d:    distuv.Beta{Alpha: alpha, Beta: beta},
	}, nil
}

// Weibull returns Weibull(k, lambda). Requires k > 0 and lambda > 0.
func Weibull(k, lambda float64) (Marginal, error) {
	if !finite(k, lambda) || k <= 0 || lambda <= 0 {
		return nil, invalid("weibull", "k=%g lambda=%g", k, lambda)
	}
	return dist{
		name: fmt.Sprintf("weibull(k=%g, lambda=%g)", k, lambda),
		d:    distuv.Weibull{K: k, Lambda: lambda},
	}, nil
}

// Laplace returns Laplace(mu, scale). Requires scale > 0.
func Laplace(mu, scale float64) (Marginal, error) {
	if !finite(mu, scale) || scale <= 0 {
		return nil, invalid("laplace", "mu=%g scale=%g", mu, scale)
	}
	return dist{
		name: fmt.Sprintf("laplace(mu=%g, scale=%g)", mu, scale),
		d:    distuv.Laplace{Mu: mu, Scale: scale},
	}, nil
}

// StudentsT returns the location-scale Student's t distribution.
// Requires sigma > 0 and nu > 0. For nu ≤ 2 the variance is not finite and
// CheckMoments rejects the marginal.
func StudentsT(mu, sigma, nu float64) (Marginal, error) {
	if !finite(mu, sigma, nu) || sigma <= 0 || nu <= 0 {
		return nil, invalid("studentst", "mu=%g sigma=%g nu=%g", mu, sigma, nu)
	}
	return dist{
		name: fmt.Sprintf("studentst(mu=%g, sigma=%g, nu=%g)", mu, sigma, nu),
		d:    distuv.StudentsT{Mu: mu, Sigma: sigma, Nu: nu},
	}, nil
}

// Triangle returns the triangular distribution on [a, b] with mode c.
// Requires a < b and a ≤ c ≤ b.
func Triangle(a, b, c float64) (Marginal, error) {
	if !finite(a, b, c) || a >= b || c < a || c > b {
		return nil, invalid("triangle", "a=%g b=%g c=%g", a, b, c)
	}
	return dist{
		name: fmt.Sprintf("triangle(a=%g, b=%g, c=%g)", a, b, c),
		d:    distuv.NewTriangle(a, b, c, nil),
	}, nil
}
