package etas

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Rand bundles the draws the simulator needs: uniform variates and Poisson
// counts, all fed from a single seedable source so runs are reproducible.
type Rand struct {
	src rand.Source
	uni *rand.Rand
}

func NewRand(seed uint64) *Rand {
	src := rand.NewSource(seed)
	return &Rand{src: src, uni: rand.New(src)}
}

// Uniform draws from Uniform(0, 1).
func (r *Rand) Uniform() float64 {
	return r.uni.Float64()
}

// UniformRange draws from Uniform(lo, hi).
func (r *Rand) UniformRange(lo, hi float64) float64 {
	return lo + (hi-lo)*r.uni.Float64()
}

// Poisson draws a Poisson(lambda) count. A non-positive rate yields zero.
func (r *Rand) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: r.src}.Rand())
}

// PoissonEach draws one independent Poisson count per rate.
func (r *Rand) PoissonEach(lambdas []float64) []int {
	counts := make([]int, len(lambdas))
	for i, lambda := range lambdas {
		counts[i] = r.Poisson(lambda)
	}
	return counts
}
