// Package statistics provides scalar random-variable generation by mapping
// a uniform (0,1) generator through an invertible cumulative distribution
// function.
package statistics

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Quantiler is an invertible CDF: Quantile maps a probability in (0,1) to
// the value of the random variable. All distuv continuous distributions
// satisfy it.
type Quantiler interface {
	Quantile(p float64) float64
}

// ContinuousRandomVariable draws values from a distribution by evaluating
// its inverse CDF at uniform random probabilities.
type ContinuousRandomVariable struct {
	dist Quantiler
	rng  *rand.Rand
}

// New builds a generator for the given distribution with a deterministic
// seed.
func New(dist Quantiler, seed int64) *ContinuousRandomVariable {
	return &ContinuousRandomVariable{
		dist: dist,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Value draws the next random value.
func (c *ContinuousRandomVariable) Value() float64 {
	return c.dist.Quantile(c.rng.Float64())
}

// NewGaussian builds a normal generator with the given mean and standard
// deviation.
func NewGaussian(mean, sigma float64, seed int64) *ContinuousRandomVariable {
	return New(distuv.Normal{Mu: mean, Sigma: sigma}, seed)
}

// NewUniform builds a uniform generator on [min, max).
func NewUniform(min, max float64, seed int64) *ContinuousRandomVariable {
	return New(distuv.Uniform{Min: min, Max: max}, seed)
}
