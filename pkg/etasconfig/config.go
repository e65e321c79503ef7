// Package etasconfig loads YAML scenario files for the simulate and fit
// commands.
package etasconfig

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/seismolab/etas/pkg/etas"
	"github.com/seismolab/etas/pkg/types"
)

type SimulationConfig struct {
	Parameters etas.ModelParameters `yaml:"parameters"`
	Magnitudes etas.MagnitudeModel  `yaml:"magnitudes"`

	BackgroundWindow types.TimeWindow  `yaml:"backgroundWindow"`
	ReturnWindow     *types.TimeWindow `yaml:"returnWindow,omitempty"`

	Seed uint64 `yaml:"seed"`
}

type EstimationConfig struct {
	Start      etas.ModelParameters `yaml:"start"`
	M0         float64              `yaml:"m0"`
	Window     types.TimeWindow     `yaml:"window"`
	AlphaRange [2]float64           `yaml:"alphaRange,flow"`
	PRange     [2]float64           `yaml:"pRange,flow"`

	SignificantDigits int `yaml:"significantDigits,omitempty"`
	NarrowingRounds   int `yaml:"narrowingRounds,omitempty"`
	Workers           int `yaml:"workers,omitempty"`
}

type Config struct {
	Simulation *SimulationConfig `yaml:"simulation,omitempty"`
	Estimation *EstimationConfig `yaml:"estimation,omitempty"`
}

var defaultEstimationConfig = EstimationConfig{
	AlphaRange:        [2]float64{0.01, 10},
	PRange:            [2]float64{1.0001, 10},
	SignificantDigits: 4,
	NarrowingRounds:   3,
	Workers:           1,
}

// LoadConfig reads a scenario file and fills in estimation defaults.
func LoadConfig(yamlConfigFileName string) (*Config, error) {
	configYaml, err := os.ReadFile(yamlConfigFileName)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(configYaml, &config); err != nil {
		return nil, err
	}

	if config.Estimation != nil {
		est := config.Estimation
		if est.AlphaRange == ([2]float64{}) {
			est.AlphaRange = defaultEstimationConfig.AlphaRange
		}
		if est.PRange == ([2]float64{}) {
			est.PRange = defaultEstimationConfig.PRange
		}
		if est.SignificantDigits == 0 {
			est.SignificantDigits = defaultEstimationConfig.SignificantDigits
		}
		if est.NarrowingRounds == 0 {
			est.NarrowingRounds = defaultEstimationConfig.NarrowingRounds
		}
		if est.Workers == 0 {
			est.Workers = defaultEstimationConfig.Workers
		}
	}

	return &config, nil
}

func (c *Config) ValidateSimulation() error {
	if c.Simulation == nil {
		return errors.New("config has no simulation section")
	}
	if err := c.Simulation.Parameters.Validate(); err != nil {
		return errors.Wrap(err, "simulation.parameters")
	}
	if err := c.Simulation.Magnitudes.Validate(); err != nil {
		return errors.Wrap(err, "simulation.magnitudes")
	}
	if c.Simulation.BackgroundWindow.Length() < 0 {
		return errors.New("simulation.backgroundWindow end precedes start")
	}
	return nil
}

func (c *Config) ValidateEstimation() error {
	if c.Estimation == nil {
		return errors.New("config has no estimation section")
	}
	est := c.Estimation
	if err := est.Start.Validate(); err != nil {
		return errors.Wrap(err, "estimation.start")
	}
	if est.Window.Length() <= 0 {
		return errors.New("estimation.window must have positive length")
	}
	if est.AlphaRange[0] >= est.AlphaRange[1] {
		return errors.Errorf("estimation.alphaRange [%g, %g] is not an interval", est.AlphaRange[0], est.AlphaRange[1])
	}
	if est.PRange[0] <= 1 {
		return errors.Errorf("estimation.pRange lower bound %g must stay above 1", est.PRange[0])
	}
	if est.PRange[0] >= est.PRange[1] {
		return errors.Errorf("estimation.pRange [%g, %g] is not an interval", est.PRange[0], est.PRange[1])
	}
	return nil
}

// Options converts the estimation section into estimator options.
func (e *EstimationConfig) Options() etas.EstimateOptions {
	return etas.EstimateOptions{
		AlphaRange:        etas.Interval{Lo: e.AlphaRange[0], Hi: e.AlphaRange[1]},
		PRange:            etas.Interval{Lo: e.PRange[0], Hi: e.PRange[1]},
		SignificantDigits: e.SignificantDigits,
		NarrowingRounds:   e.NarrowingRounds,
		Workers:           e.Workers,
	}
}
