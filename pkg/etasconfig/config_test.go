package etasconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `
simulation:
  parameters:
    mu: 0.3295
    k: 0.02247
    alpha: 1.5839
    c: 0.037651
    p: 1.38509
  magnitudes:
    m0: 3
    minMag: 3
    maxMag: 8
    b: 2.302585092994046
  backgroundWindow:
    start: 0
    end: 1000
  seed: 42
estimation:
  start:
    mu: 0.2
    k: 0.01
    alpha: 1.0
    c: 0.01
    p: 1.3
  m0: 3
  window:
    start: 0
    end: 1000
  alphaRange: [0.1, 4]
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	require.NotNil(t, config.Simulation)
	assert.Equal(t, 0.3295, config.Simulation.Parameters.Mu)
	assert.Equal(t, uint64(42), config.Simulation.Seed)
	assert.Nil(t, config.Simulation.ReturnWindow)

	require.NotNil(t, config.Estimation)
	assert.Equal(t, [2]float64{0.1, 4}, config.Estimation.AlphaRange)

	// unset fields fall back to defaults
	assert.Equal(t, [2]float64{1.0001, 10}, config.Estimation.PRange)
	assert.Equal(t, 4, config.Estimation.SignificantDigits)
	assert.Equal(t, 3, config.Estimation.NarrowingRounds)

	require.NoError(t, config.ValidateSimulation())
	require.NoError(t, config.ValidateEstimation())

	opts := config.Estimation.Options()
	assert.Equal(t, 0.1, opts.AlphaRange.Lo)
	assert.Equal(t, 10.0, opts.PRange.Hi)
}

func TestValidateEstimationRejectsBadRanges(t *testing.T) {
	config, err := LoadConfig(writeScenario(t, `
estimation:
  start: {mu: 0.2, k: 0.01, alpha: 1.0, c: 0.01, p: 1.3}
  m0: 3
  window: {start: 0, end: 100}
  pRange: [0.9, 2]
`))
	require.NoError(t, err)

	err = config.ValidateEstimation()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pRange lower bound")
}

func TestValidateSimulationMissingSection(t *testing.T) {
	config, err := LoadConfig(writeScenario(t, `estimation: {m0: 3}`))
	require.NoError(t, err)
	assert.Error(t, config.ValidateSimulation())
}
