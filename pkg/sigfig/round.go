// Package sigfig rounds floating point values to a number of significant
// figures, which is how the estimator decides two successive parameter
// iterates are "the same".
package sigfig

import "math"

// Round rounds x to digits significant figures.
//
//	Round(123.456, 4)   == 123.5
//	Round(0.0004567, 2) == 0.00046
func Round(x float64, digits int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	exp := math.Ceil(math.Log10(math.Abs(x)))
	scale := math.Pow(10, float64(digits)-exp)
	return math.Round(x*scale) / scale
}

// Equal reports whether a and b agree after rounding both to digits
// significant figures.
func Equal(a, b float64, digits int) bool {
	return Round(a, digits) == Round(b, digits)
}
