package etas

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/seismolab/etas/pkg/datatype/floats"
	"github.com/seismolab/etas/pkg/metrics"
	"github.com/seismolab/etas/pkg/types"
)

var log = logrus.WithField("component", "etas")

// SimulationResult is a realization of the branching process.
type SimulationResult struct {
	// Catalog is sorted by ascending time. When a return window was given it
	// holds only the events inside that window.
	Catalog *types.Catalog

	// M0 is the magnitude cutoff the catalog was generated with.
	M0 float64

	// Window is the return window when one was given, otherwise the full
	// background window.
	Window types.TimeWindow

	// BranchingRatio is (total - background) / total over the entire
	// simulated catalog, before any return-window filtering.
	BranchingRatio float64

	// Background is the number of generation-zero events.
	Background int

	// Generations is the number of non-empty offspring generations.
	Generations int
}

// Simulate generates an ETAS catalog over the background window. Background
// events arrive as a homogeneous Poisson process with rate Mu; every event
// then spawns offspring along the Omori-Utsu law, generation by generation,
// until a generation stays empty. A supercritical parametrization
// (ExpectedOffspring > 1) is rejected before any sampling happens.
//
// When returnWindow is non-nil the returned catalog is trimmed to it, both
// ends inclusive; the branching ratio still refers to the full realization.
func Simulate(
	params ModelParameters,
	magModel MagnitudeModel,
	background types.TimeWindow,
	returnWindow *types.TimeWindow,
	rng *Rand,
) (*SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	if err := magModel.Validate(); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}

	if eg := ExpectedOffspring(params, magModel); eg > 1 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("supercritical branching: expected offspring per event %.6g > 1", eg),
		}
	}

	sampler := NewMagnitudeSampler(magModel, rng)

	// generation zero: background seismicity
	nbg := rng.Poisson(params.Mu * background.Length())
	gen := types.NewCatalog(nbg)
	for i := 0; i < nbg; i++ {
		gen.Append(rng.UniformRange(background.Start, background.End), sampler.Sample())
	}

	full := types.NewCatalog(nbg)
	full.Merge(gen)

	// K exp(alpha (m - m0)) integrates against the Omori law to this factor
	prodBase := params.K * math.Pow(params.C, 1-params.P) / (params.P - 1)

	generations := 0
	for gen.Len() > 0 {
		expected := make(floats.Slice, gen.Len())
		for i := range expected {
			expected[i] = prodBase * math.Exp(params.Alpha*(gen.Mags[i]-magModel.M0))
		}
		counts := rng.PoissonEach(expected)

		next := types.NewCatalog(0)
		for i, n := range counts {
			for k := 0; k < n; k++ {
				next.Append(gen.Times[i]+omoriOffset(params, rng), sampler.Sample())
			}
		}

		if next.Len() > 0 {
			generations++
			full.Merge(next)
		}
		gen = next
	}

	full.SortByTime()

	var ratio float64
	if full.Len() > 0 {
		ratio = float64(full.Len()-nbg) / float64(full.Len())
	}

	metrics.SimulatedEventsMetrics.Add(float64(full.Len()))
	metrics.SimulationGenerationsMetrics.Observe(float64(generations))
	metrics.BranchingRatioMetrics.Set(ratio)

	result := &SimulationResult{
		Catalog:        full,
		M0:             magModel.M0,
		Window:         background,
		BranchingRatio: ratio,
		Background:     nbg,
		Generations:    generations,
	}
	if returnWindow != nil {
		result.Catalog = full.Filter(*returnWindow)
		result.Window = *returnWindow
	}

	log.WithFields(logrus.Fields{
		"background":     nbg,
		"total":          full.Len(),
		"returned":       result.Catalog.Len(),
		"generations":    generations,
		"branchingRatio": ratio,
	}).Debug("simulation finished")

	return result, nil
}

// omoriOffset draws a parent-to-child time offset by inverting the shifted
// Pareto CDF of the Omori-Utsu law.
func omoriOffset(params ModelParameters, rng *Rand) float64 {
	u := rng.Uniform()
	return params.C*math.Pow(1-u, -1/(params.P-1)) - params.C
}
