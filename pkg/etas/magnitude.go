package etas

import (
	"math"

	"github.com/seismolab/etas/pkg/datatype/floats"
)

// MagnitudeSampler draws magnitudes from a truncated exponential
// (Gutenberg-Richter) distribution by inverting its CDF.
type MagnitudeSampler struct {
	model MagnitudeModel
	rng   *Rand

	// 1 - exp(-b (maxMag - minMag)), the truncated CDF mass
	uMax float64
}

func NewMagnitudeSampler(model MagnitudeModel, rng *Rand) *MagnitudeSampler {
	return &MagnitudeSampler{
		model: model,
		rng:   rng,
		uMax:  1 - math.Exp(-model.B*(model.MaxMag-model.MinMag)),
	}
}

// Sample draws a single magnitude in [MinMag, MaxMag].
func (s *MagnitudeSampler) Sample() float64 {
	u := s.rng.Uniform() * s.uMax
	return s.model.MinMag - math.Log(1-u)/s.model.B
}

// SampleN draws n magnitudes. n may be zero.
func (s *MagnitudeSampler) SampleN(n int) floats.Slice {
	out := make(floats.Slice, n)
	for i := range out {
		out[i] = s.Sample()
	}
	return out
}

// ExpectedOffspring is E[G], the expected number of direct offspring of a
// parent whose magnitude is itself drawn from the Gutenberg-Richter
// distribution. The branching process is subcritical, and the simulation
// terminates almost surely, only when E[G] <= 1.
//
// The magnitude integral has a removable singularity at alpha == b, so the
// two cases are evaluated separately.
func ExpectedOffspring(params ModelParameters, model MagnitudeModel) float64 {
	var (
		a     = params.Alpha
		b     = model.B
		delta = model.MaxMag - model.MinMag
		norm  = 1 - math.Exp(-b*delta)
		base  = math.Exp(a * (model.MinMag - model.M0))
	)

	var gr float64
	if a == b {
		gr = base * b * delta / norm
	} else {
		gr = base * b / (a - b) * (math.Exp((a-b)*delta) - 1) / norm
	}

	omori := math.Pow(params.C, 1-params.P) / (params.P - 1)
	return params.K * omori * gr
}
