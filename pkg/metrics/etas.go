package metrics

import "github.com/prometheus/client_golang/prometheus"

var SimulatedEventsMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "etas_simulated_events_total",
		Help: "number of events produced by the branching simulator",
	})

var SimulationGenerationsMetrics = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "etas_simulation_generations",
		Help:    "number of offspring generations per simulation run",
		Buckets: prometheus.LinearBuckets(0, 5, 12),
	})

var BranchingRatioMetrics = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "etas_branching_ratio",
		Help: "realized branching ratio of the last simulation run",
	})

var EstimatorOuterIterationsMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "etas_estimator_outer_iterations_total",
		Help: "declustering EM outer iterations across all fits",
	})

var EstimatorInnerCapMetrics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "etas_estimator_inner_cap_hits_total",
		Help: "times the omori c,p fixed-point loop hit its iteration cap",
	})

func init() {
	prometheus.MustRegister(
		SimulatedEventsMetrics,
		SimulationGenerationsMetrics,
		BranchingRatioMetrics,
		EstimatorOuterIterationsMetrics,
		EstimatorInnerCapMetrics,
	)
}
