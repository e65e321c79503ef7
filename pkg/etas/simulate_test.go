package etas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seismolab/etas/pkg/types"
)

// referenceParams is a catalog-scale parametrization used across tests.
var referenceParams = ModelParameters{
	Mu:    0.329505837595229,
	K:     0.0224702963795154,
	Alpha: 1.5839343640414,
	C:     0.037651249192514,
	P:     1.38508560377488,
}

func TestSimulateEmptyWhenNoBackground(t *testing.T) {
	tests := []struct {
		name   string
		params ModelParameters
		window types.TimeWindow
	}{
		{
			name:   "zero background rate",
			params: ModelParameters{Mu: 0, K: 0.02, Alpha: 1.5, C: 0.04, P: 1.4},
			window: types.NewTimeWindow(0, 1000),
		},
		{
			name:   "zero length window",
			params: ModelParameters{Mu: 0.5, K: 0.02, Alpha: 1.5, C: 0.04, P: 1.4},
			window: types.NewTimeWindow(100, 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Simulate(tt.params, testMagnitudeModel, tt.window, nil, NewRand(5))
			require.NoError(t, err)
			assert.Equal(t, 0, result.Catalog.Len())
			assert.Equal(t, 0.0, result.BranchingRatio)
		})
	}
}

func TestSimulateBackgroundOnlyWhenKVanishes(t *testing.T) {
	params := referenceParams
	params.K = 1e-15

	result, err := Simulate(params, testMagnitudeModel, types.NewTimeWindow(0, 1000), nil, NewRand(9))
	require.NoError(t, err)

	assert.Greater(t, result.Catalog.Len(), 0)
	assert.Equal(t, result.Background, result.Catalog.Len())
	assert.Equal(t, 0, result.Generations)
	assert.Equal(t, 0.0, result.BranchingRatio)
}

func TestSimulateReferenceScenario(t *testing.T) {
	window := types.NewTimeWindow(0, 1000)

	result, err := Simulate(referenceParams, testMagnitudeModel, window, nil, NewRand(42))
	require.NoError(t, err)

	assert.Greater(t, result.Catalog.Len(), result.Background)
	assert.True(t, result.Catalog.IsSortedByTime())
	assert.Equal(t, testMagnitudeModel.M0, result.M0)
	assert.Equal(t, window, result.Window)

	assert.GreaterOrEqual(t, result.BranchingRatio, 0.0)
	assert.Less(t, result.BranchingRatio, 1.0)

	// all magnitudes respect the truncation
	assert.GreaterOrEqual(t, result.Catalog.Mags.Min(), testMagnitudeModel.MinMag)
	assert.LessOrEqual(t, result.Catalog.Mags.Max(), testMagnitudeModel.MaxMag)
}

func TestSimulateDeterministicUnderSeed(t *testing.T) {
	window := types.NewTimeWindow(0, 1000)

	a, err := Simulate(referenceParams, testMagnitudeModel, window, nil, NewRand(42))
	require.NoError(t, err)
	b, err := Simulate(referenceParams, testMagnitudeModel, window, nil, NewRand(42))
	require.NoError(t, err)

	require.Equal(t, a.Catalog.Len(), b.Catalog.Len())
	assert.Equal(t, a.Catalog.Times, b.Catalog.Times)
	assert.Equal(t, a.Catalog.Mags, b.Catalog.Mags)
	assert.Equal(t, a.BranchingRatio, b.BranchingRatio)

	c, err := Simulate(referenceParams, testMagnitudeModel, window, nil, NewRand(43))
	require.NoError(t, err)
	assert.NotEqual(t, a.Catalog.Times, c.Catalog.Times)
}

func TestSimulateReturnWindowFilter(t *testing.T) {
	var (
		background = types.NewTimeWindow(0, 1000)
		ret        = types.NewTimeWindow(200, 600)
	)

	full, err := Simulate(referenceParams, testMagnitudeModel, background, nil, NewRand(17))
	require.NoError(t, err)

	trimmed, err := Simulate(referenceParams, testMagnitudeModel, background, &ret, NewRand(17))
	require.NoError(t, err)

	// same realization, narrower view
	assert.Equal(t, ret, trimmed.Window)
	assert.Equal(t, full.Catalog.Filter(ret).Times, trimmed.Catalog.Times)
	assert.Equal(t, full.BranchingRatio, trimmed.BranchingRatio)

	for _, ts := range trimmed.Catalog.Times {
		assert.True(t, ret.Contains(ts))
	}
	assert.Less(t, trimmed.Catalog.Len(), full.Catalog.Len())
}

func TestSimulateRejectsSupercritical(t *testing.T) {
	params := ModelParameters{Mu: 0.3, K: 1.0, Alpha: 2.0, C: 0.01, P: 1.2}
	require.Greater(t, ExpectedOffspring(params, testMagnitudeModel), 1.0)

	_, err := Simulate(params, testMagnitudeModel, types.NewTimeWindow(0, 100), nil, NewRand(3))
	require.Error(t, err)

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Reason, "supercritical")
}

func TestSimulateRejectsBadModel(t *testing.T) {
	params := referenceParams

	badMag := testMagnitudeModel
	badMag.MinMag = 9 // above MaxMag

	_, err := Simulate(params, badMag, types.NewTimeWindow(0, 100), nil, NewRand(3))
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
}
