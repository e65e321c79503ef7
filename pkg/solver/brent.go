// Package solver provides a bracketed scalar root-finder.
//
// gonum does not ship a one-dimensional root-finder, so the classic Brent
// method (inverse quadratic interpolation with bisection fallback) is
// implemented here. The caller must supply an interval whose endpoints
// straddle the root; a non-bracketing interval is reported as an error
// instead of silently returning a boundary value.
package solver

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNoBracket is returned when f(lo) and f(hi) do not have opposite signs.
var ErrNoBracket = errors.New("solver: interval does not bracket a root")

const (
	maxIterations = 200
	epsilon       = 2.220446049250313e-16 // 2^-52
)

// Brent finds a root of f on the bracketing interval [lo, hi] to double
// precision.
func Brent(f func(float64) float64, lo, hi float64) (float64, error) {
	a, b := lo, hi
	fa, fb := f(a), f(b)

	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if fa*fb > 0 || math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, errors.Wrapf(ErrNoBracket, "f(%g)=%g, f(%g)=%g", a, fa, b, fb)
	}

	c, fc := a, fa
	d := b - a
	e := d

	for i := 0; i < maxIterations; i++ {
		if math.Abs(fc) < math.Abs(fb) {
			// c is the better approximation, swap so that b stays best
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2*epsilon*math.Abs(b) + epsilon
		m := 0.5 * (c - b)
		if math.Abs(m) <= tol || fb == 0 {
			return b, nil
		}

		if math.Abs(e) < tol || math.Abs(fa) <= math.Abs(fb) {
			// progress too slow, bisect
			d = m
			e = m
		} else {
			s := fb / fa
			var p, q float64
			if a == c {
				// secant step
				p = 2 * m * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*m*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if 2*p < math.Min(3*m*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = m
				e = m
			}
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if m > 0 {
			b += tol
		} else {
			b -= tol
		}

		fb = f(b)
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return b, nil
}
