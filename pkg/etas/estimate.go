package etas

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/seismolab/etas/pkg/metrics"
	"github.com/seismolab/etas/pkg/sigfig"
	"github.com/seismolab/etas/pkg/solver"
	"github.com/seismolab/etas/pkg/types"
)

// innerIterationCap bounds the omori c,p fixed-point loop. Hitting the cap is
// reported but not fatal; the outer loop continues with the last iterate.
const innerIterationCap = 200

// EstimateOptions tune the declustering fit. The zero value picks the
// documented defaults.
type EstimateOptions struct {
	// AlphaRange and PRange are the bracketing intervals handed to the root
	// solves. They are halved and recentered after every narrowing round. An
	// interval that stops bracketing the stationarity root fails the fit with
	// a BracketingError; there is no automatic widening.
	AlphaRange Interval
	PRange     Interval

	// SignificantDigits is the agreement required between consecutive
	// iterates, for the outer loop on all of mu, K, alpha, c and p-1.
	SignificantDigits int

	// NarrowingRounds is the number of outer-convergence passes, each with a
	// tighter search interval.
	NarrowingRounds int

	// Workers splits the pairwise declustering pass across goroutines.
	// Values below 2 keep the fully sequential reference behavior.
	Workers int

	// RoundHook, when set, is called after every finished narrowing round.
	RoundHook func(round int, current ModelParameters)
}

func (o *EstimateOptions) applyDefaults() {
	if o.AlphaRange == (Interval{}) {
		o.AlphaRange = Interval{Lo: 0.01, Hi: 10}
	}
	if o.PRange == (Interval{}) {
		o.PRange = Interval{Lo: 1.0001, Hi: 10}
	}
	if o.SignificantDigits <= 0 {
		o.SignificantDigits = 4
	}
	if o.NarrowingRounds <= 0 {
		o.NarrowingRounds = 3
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
}

// EstimateResult is the frozen output of a fit.
type EstimateResult struct {
	Params ModelParameters

	// OuterIterations counts E/M passes summed over all narrowing rounds,
	// InnerIterations the omori fixed-point steps inside them.
	OuterIterations int
	InnerIterations int
	Rounds          int
}

// Estimate fits the five ETAS parameters to a time-ordered catalog by an
// EM-style declustering iteration. The E-step assigns every event a
// probability of being background or triggered by each earlier event; the
// M-step re-estimates mu in closed form, alpha and p by bracketed
// root-finding, K in closed form and c through a fixed-point alternation
// with p. Outer passes repeat until all parameters are stable to the
// configured significant digits, then the search intervals are narrowed and
// the pass re-runs, NarrowingRounds times in total.
//
// The catalog must be sorted by ascending time and contain no magnitude
// below m0; violations fail with a DataInconsistencyError before any
// iteration.
func Estimate(
	ctx context.Context,
	catalog *types.Catalog,
	m0 float64,
	window types.TimeWindow,
	start ModelParameters,
	opts EstimateOptions,
) (*EstimateResult, error) {
	opts.applyDefaults()

	if catalog.Len() == 0 {
		return nil, &DataInconsistencyError{Index: -1, Reason: "catalog is empty"}
	}
	for i, mag := range catalog.Mags {
		if mag < m0 {
			return nil, &DataInconsistencyError{
				Index:  i,
				Reason: fmt.Sprintf("magnitude %g is below the cutoff m0=%g", mag, m0),
			}
		}
	}
	for i := 1; i < catalog.Len(); i++ {
		if catalog.Times[i] < catalog.Times[i-1] {
			return nil, &DataInconsistencyError{
				Index:  i,
				Reason: "times are not sorted ascending",
			}
		}
	}
	if window.Length() <= 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("estimation window has non-positive length %g", window.Length())}
	}
	if err := start.Validate(); err != nil {
		return nil, &ConfigurationError{Reason: "bad starting parameters: " + err.Error()}
	}

	e := &estimator{
		t:      catalog.Times,
		m:      catalog.Mags,
		n:      catalog.Len(),
		m0:     m0,
		window: window,
		opts:   opts,
		curr:   start,

		lambda: make([]float64, catalog.Len()),
		weight: make([]float64, catalog.Len()),
		prodW:  make([]float64, catalog.Len()),
	}

	result := &EstimateResult{Rounds: opts.NarrowingRounds}
	for round := 0; round < opts.NarrowingRounds; round++ {
		if err := e.converge(ctx, round, result); err != nil {
			return nil, err
		}

		log.WithFields(logrus.Fields{
			"round": round,
			"mu":    e.curr.Mu,
			"k":     e.curr.K,
			"alpha": e.curr.Alpha,
			"c":     e.curr.C,
			"p":     e.curr.P,
		}).Debug("narrowing round converged")

		if opts.RoundHook != nil {
			opts.RoundHook(round, e.curr)
		}

		if round < opts.NarrowingRounds-1 {
			e.opts.AlphaRange = e.opts.AlphaRange.Narrow(e.curr.Alpha, alphaFloor)
			e.opts.PRange = e.opts.PRange.Narrow(e.curr.P, 1+pFloor)
		}
	}

	result.Params = e.curr
	return result, nil
}

const (
	alphaFloor = 1e-6
	pFloor     = 1e-9

	// below this total triggering mass the aftershock parameters are
	// unidentifiable and their updates are skipped for the iteration
	minTriggeringMass = 1e-12
)

type estimator struct {
	t, m []float64
	n    int

	m0     float64
	window types.TimeWindow
	opts   EstimateOptions

	curr ModelParameters

	// declustering snapshot, valid for the parameters of the last E-step
	lambda []float64 // conditional intensity at each event time
	weight []float64 // expected direct offspring of each event inside the window
	prodW  []float64 // K exp(alpha (m_j - m0)) per event
	bgSum  float64   // expected background count
	lhat   float64   // total expected triggering mass
	snapC  float64
	snapP  float64
}

// converge runs E/M passes until every parameter is stable to the configured
// number of significant digits. The loop itself is uncapped; total work is
// bounded by the narrowing-rounds budget.
func (e *estimator) converge(ctx context.Context, round int, result *EstimateResult) error {
	for iter := 1; ; iter++ {
		prev := e.curr

		if err := e.decluster(ctx); err != nil {
			return err
		}
		if err := e.update(round, iter, result); err != nil {
			return err
		}

		result.OuterIterations++
		metrics.EstimatorOuterIterationsMetrics.Inc()

		if e.stable(prev) {
			return nil
		}
	}
}

func (e *estimator) stable(prev ModelParameters) bool {
	d := e.opts.SignificantDigits
	return sigfig.Equal(prev.Mu, e.curr.Mu, d) &&
		sigfig.Equal(prev.K, e.curr.K, d) &&
		sigfig.Equal(prev.Alpha, e.curr.Alpha, d) &&
		sigfig.Equal(prev.C, e.curr.C, d) &&
		sigfig.Equal(prev.P-1, e.curr.P-1, d)
}

// decluster is the E-step: an O(n^2) pass over every ordered pair computing
// the probability that the earlier event triggered the later one, and the
// probability that each event is background.
func (e *estimator) decluster(ctx context.Context) error {
	mu, c, p := e.curr.Mu, e.curr.C, e.curr.P
	for j := 0; j < e.n; j++ {
		e.prodW[j] = e.curr.K * math.Exp(e.curr.Alpha*(e.m[j]-e.m0))
		e.weight[j] = 0
	}
	e.snapC, e.snapP = c, p

	accumulate := func(lo, hi int, weight []float64) float64 {
		g := make([]float64, hi)
		var bg float64
		for i := lo; i < hi; i++ {
			trig := 0.0
			for j := 0; j < i; j++ {
				g[j] = e.prodW[j] * math.Pow(e.t[i]-e.t[j]+c, -p)
				trig += g[j]
			}
			lam := mu + trig
			e.lambda[i] = lam
			if lam <= 0 {
				continue
			}
			for j := 0; j < i; j++ {
				weight[j] += g[j] / lam
			}
			bg += mu / lam
		}
		return bg
	}

	if e.opts.Workers < 2 || e.n < 2*e.opts.Workers {
		e.bgSum = accumulate(0, e.n, e.weight)
	} else {
		var (
			nw      = e.opts.Workers
			bounds  = chunkBounds(e.n, nw)
			partsW  = make([][]float64, nw)
			partsBg = make([]float64, nw)
		)
		eg, _ := errgroup.WithContext(ctx)
		for w := 0; w < nw; w++ {
			w := w
			partsW[w] = make([]float64, e.n)
			eg.Go(func() error {
				partsBg[w] = accumulate(bounds[w], bounds[w+1], partsW[w])
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		// reduce in chunk order so the summation order matches the
		// sequential pass
		e.bgSum = 0
		for w := 0; w < nw; w++ {
			e.bgSum += partsBg[w]
			for j := range e.weight {
				e.weight[j] += partsW[w][j]
			}
		}
	}

	e.lhat = 0
	for j := 0; j < e.n; j++ {
		e.lhat += e.weight[j]
	}
	return nil
}

// update is the M-step: mu and K in closed form, alpha by root-finding, and
// the omori pair c,p by a nested fixed-point loop.
func (e *estimator) update(round, iter int, result *EstimateResult) error {
	e.curr.Mu = e.bgSum / e.window.Length()

	if e.lhat < minTriggeringMass {
		log.WithFields(logrus.Fields{"round": round, "iteration": iter}).
			Warn("triggering mass is negligible, keeping aftershock parameters")
		return nil
	}

	// alpha: root of the tilted-mean stationarity equation, built from the
	// aggregates zeta1 = 1/L and eta1 = 1/sum((m_j - m0) l_j)
	var (
		zeta1 = 1 / e.lhat
		eta1  float64
	)
	for j := 0; j < e.n; j++ {
		eta1 += (e.m[j] - e.m0) * e.weight[j]
	}
	eta1 = 1 / eta1
	target := zeta1 / eta1

	alphaEq := func(a float64) float64 {
		var num, den float64
		for j := 0; j < e.n; j++ {
			w := math.Exp(a * (e.m[j] - e.m0))
			num += (e.m[j] - e.m0) * w
			den += w
		}
		return num/den - target
	}

	alphaNew, err := solver.Brent(alphaEq, e.opts.AlphaRange.Lo, e.opts.AlphaRange.Hi)
	if err != nil {
		return &BracketingError{
			Param: "alpha", Round: round, Iteration: iter,
			Lo: e.opts.AlphaRange.Lo, Hi: e.opts.AlphaRange.Hi, Err: err,
		}
	}

	// K in closed form from the expected triggering mass, at the new alpha
	// and the current omori parameters
	var sumExp float64
	for j := 0; j < e.n; j++ {
		sumExp += math.Exp(alphaNew * (e.m[j] - e.m0))
	}
	e.curr.Alpha = alphaNew
	e.curr.K = e.lhat * (e.curr.P - 1) * math.Pow(e.curr.C, e.curr.P-1) / sumExp

	return e.updateOmori(round, iter, result)
}

// updateOmori alternates a bracketed solve for p with the closed-form c
// update until both stabilize, holding the declustering probabilities fixed.
func (e *estimator) updateOmori(round, iter int, result *EstimateResult) error {
	for k := 0; k < innerIterationCap; k++ {
		result.InnerIterations++

		alpha1, beta1 := e.omoriAggregates(e.curr.C)

		pEq := func(p float64) float64 {
			return math.Log((p-1)/p) + 1/(p-1) - math.Log(alpha1) - beta1
		}
		pNew, err := solver.Brent(pEq, e.opts.PRange.Lo, e.opts.PRange.Hi)
		if err != nil {
			return &BracketingError{
				Param: "p", Round: round, Iteration: iter,
				Lo: e.opts.PRange.Lo, Hi: e.opts.PRange.Hi, Err: err,
			}
		}
		cNew := (pNew - 1) / (pNew * alpha1)

		d := e.opts.SignificantDigits
		stable := sigfig.Equal(pNew-1, e.curr.P-1, d) && sigfig.Equal(cNew, e.curr.C, d)
		e.curr.P, e.curr.C = pNew, cNew
		if stable {
			return nil
		}
	}

	metrics.EstimatorInnerCapMetrics.Inc()
	log.WithFields(logrus.Fields{
		"round":     round,
		"iteration": iter,
		"c":         e.curr.C,
		"p":         e.curr.P,
	}).Warnf("omori fixed point did not stabilize within %d steps, continuing with last values", innerIterationCap)
	return nil
}

// omoriAggregates computes
//
//	alpha1 = (1/L) sum prob(j->i) / (t_i - t_j + c)
//	beta1  = (1/L) sum prob(j->i) ln(t_i - t_j + c)
//
// at the given c, with the triggering probabilities frozen at the last
// E-step's parameters.
func (e *estimator) omoriAggregates(c float64) (alpha1, beta1 float64) {
	accumulate := func(lo, hi int) (a1, b1 float64) {
		for i := lo; i < hi; i++ {
			if e.lambda[i] <= 0 {
				continue
			}
			for j := 0; j < i; j++ {
				dt := e.t[i] - e.t[j]
				prob := e.prodW[j] * math.Pow(dt+e.snapC, -e.snapP) / e.lambda[i]
				a1 += prob / (dt + c)
				b1 += prob * math.Log(dt+c)
			}
		}
		return a1, b1
	}

	if e.opts.Workers < 2 || e.n < 2*e.opts.Workers {
		alpha1, beta1 = accumulate(0, e.n)
	} else {
		var (
			nw     = e.opts.Workers
			bounds = chunkBounds(e.n, nw)
			partsA = make([]float64, nw)
			partsB = make([]float64, nw)
		)
		var eg errgroup.Group
		for w := 0; w < nw; w++ {
			w := w
			eg.Go(func() error {
				partsA[w], partsB[w] = accumulate(bounds[w], bounds[w+1])
				return nil
			})
		}
		_ = eg.Wait()
		for w := 0; w < nw; w++ {
			alpha1 += partsA[w]
			beta1 += partsB[w]
		}
	}

	return alpha1 / e.lhat, beta1 / e.lhat
}

// chunkBounds splits [0, n) into k contiguous ranges, returned as k+1 fence
// indices.
func chunkBounds(n, k int) []int {
	bounds := make([]int, k+1)
	for w := 0; w <= k; w++ {
		bounds[w] = w * n / k
	}
	return bounds
}
