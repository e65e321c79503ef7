// Package etas implements the temporal Epidemic-Type Aftershock Sequence
// model: a branching-process simulator producing synthetic catalogs, and a
// declustering maximum-likelihood estimator recovering the model parameters
// from an observed catalog.
package etas

import "github.com/pkg/errors"

// ModelParameters are the five parameters of the temporal ETAS conditional
// intensity
//
//	lambda(t) = mu + sum_{t_j < t} K exp(alpha (m_j - m0)) (t - t_j + c)^(-p)
type ModelParameters struct {
	// Mu is the background occurrence rate per unit time.
	Mu float64 `json:"mu" yaml:"mu"`

	// K is the aftershock productivity constant.
	K float64 `json:"k" yaml:"k"`

	// Alpha scales productivity with parent magnitude.
	Alpha float64 `json:"alpha" yaml:"alpha"`

	// C is the Omori-Utsu time offset.
	C float64 `json:"c" yaml:"c"`

	// P is the Omori-Utsu decay exponent, strictly above one.
	P float64 `json:"p" yaml:"p"`
}

func (p ModelParameters) Validate() error {
	if p.Mu < 0 {
		return errors.Errorf("mu must be non-negative, got %g", p.Mu)
	}
	if p.K < 0 {
		return errors.Errorf("k must be non-negative, got %g", p.K)
	}
	if p.C <= 0 {
		return errors.Errorf("c must be positive, got %g", p.C)
	}
	if p.P <= 1 {
		return errors.Errorf("p must be greater than 1, got %g", p.P)
	}
	return nil
}

// MagnitudeModel is a truncated exponential (Gutenberg-Richter) magnitude
// distribution on [MinMag, MaxMag] with rate B. M0 is the cutoff magnitude
// below which events do not enter the intensity.
type MagnitudeModel struct {
	M0     float64 `json:"m0" yaml:"m0"`
	MinMag float64 `json:"minMag" yaml:"minMag"`
	MaxMag float64 `json:"maxMag" yaml:"maxMag"`
	B      float64 `json:"b" yaml:"b"`
}

func (m MagnitudeModel) Validate() error {
	if m.M0 > m.MinMag {
		return errors.Errorf("m0 (%g) must not exceed minMag (%g)", m.M0, m.MinMag)
	}
	if m.MinMag >= m.MaxMag {
		return errors.Errorf("minMag (%g) must be below maxMag (%g)", m.MinMag, m.MaxMag)
	}
	if m.B <= 0 {
		return errors.Errorf("b must be positive, got %g", m.B)
	}
	return nil
}

// Interval is a closed search interval for the bracketed parameter solves.
type Interval struct {
	Lo float64
	Hi float64
}

func (iv Interval) Width() float64 {
	return iv.Hi - iv.Lo
}

// Narrow halves the interval width, recentered on x and clamped so the lower
// bound never drops below floor.
func (iv Interval) Narrow(x, floor float64) Interval {
	quarter := iv.Width() / 4
	lo := x - quarter
	if lo < floor {
		lo = floor
	}
	return Interval{Lo: lo, Hi: x + quarter}
}
