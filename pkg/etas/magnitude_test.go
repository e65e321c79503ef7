package etas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMagnitudeModel = MagnitudeModel{
	M0:     3,
	MinMag: 3,
	MaxMag: 8,
	B:      math.Log(10),
}

func TestMagnitudeSamplerRange(t *testing.T) {
	sampler := NewMagnitudeSampler(testMagnitudeModel, NewRand(7))

	mags := sampler.SampleN(50000)
	require.Equal(t, 50000, mags.Length())
	assert.GreaterOrEqual(t, mags.Min(), testMagnitudeModel.MinMag)
	assert.LessOrEqual(t, mags.Max(), testMagnitudeModel.MaxMag)
}

func TestMagnitudeSamplerCDF(t *testing.T) {
	var (
		model   = testMagnitudeModel
		sampler = NewMagnitudeSampler(model, NewRand(11))
		n       = 200000
		mags    = sampler.SampleN(n)
	)

	cdf := func(m float64) float64 {
		return (1 - math.Exp(-model.B*(m-model.MinMag))) /
			(1 - math.Exp(-model.B*(model.MaxMag-model.MinMag)))
	}

	for _, m := range []float64{3.2, 3.5, 4.0, 5.0} {
		count := 0
		for _, mag := range mags {
			if mag <= m {
				count++
			}
		}
		empirical := float64(count) / float64(n)
		assert.InDelta(t, cdf(m), empirical, 0.01, "cdf mismatch at m=%g", m)
	}
}

func TestMagnitudeSamplerEmpty(t *testing.T) {
	sampler := NewMagnitudeSampler(testMagnitudeModel, NewRand(1))
	assert.Equal(t, 0, sampler.SampleN(0).Length())
}

func TestExpectedOffspringContinuity(t *testing.T) {
	params := ModelParameters{Mu: 0.3, K: 0.02, Alpha: 0, C: 0.04, P: 1.4}

	params.Alpha = testMagnitudeModel.B
	atB := ExpectedOffspring(params, testMagnitudeModel)

	params.Alpha = testMagnitudeModel.B + 1e-6
	nearB := ExpectedOffspring(params, testMagnitudeModel)

	require.Greater(t, atB, 0.0)
	assert.InEpsilon(t, atB, nearB, 1e-3)
}

func TestExpectedOffspringSubcritical(t *testing.T) {
	// the reference parametrization is clearly subcritical
	params := ModelParameters{
		Mu:    0.329505837595229,
		K:     0.0224702963795154,
		Alpha: 1.5839343640414,
		C:     0.037651249192514,
		P:     1.38508560377488,
	}
	eg := ExpectedOffspring(params, testMagnitudeModel)
	assert.Greater(t, eg, 0.0)
	assert.Less(t, eg, 1.0)
}
