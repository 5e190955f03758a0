// Package numeric has small closed-form helpers: linear interpolation,
// numerical integration and SI-prefix scaling.
package numeric

import (
	"math"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/TFMV/lazywalk/internal/errs"
)

// checkSamples requires matching lengths, at least two points and strictly
// increasing xs.
func checkSamples(op string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return errs.Invalidf(op, "", "xs and ys differ in length: %d != %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return errs.Invalidf(op, "", "need at least 2 samples, got %d", len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return errs.Invalidf(op, "", "xs must be strictly increasing at index %d", i)
		}
	}
	return nil
}

// Interpolate evaluates the piecewise-linear function through (xs, ys) at x.
// Outside [xs[0], xs[n-1]] the nearest end value is returned.
func Interpolate(xs, ys []float64, x float64) (float64, error) {
	if err := checkSamples("interpolate", xs, ys); err != nil {
		return 0, err
	}
	if math.IsNaN(x) {
		return 0, errs.Invalidf("interpolate", "", "x is NaN")
	}
	n := len(xs)
	if x <= xs[0] {
		return ys[0], nil
	}
	if x >= xs[n-1] {
		return ys[n-1], nil
	}
	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i], nil
	}
	x0, x1 := xs[i-1], xs[i]
	y0, y1 := ys[i-1], ys[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0), nil
}

// Trapezoid integrates sampled data with the trapezoidal rule.
func Trapezoid(xs, ys []float64) (float64, error) {
	if err := checkSamples("trapezoid", xs, ys); err != nil {
		return 0, err
	}
	var sum float64
	for i := 1; i < len(xs); i++ {
		sum += (xs[i] - xs[i-1]) * (ys[i] + ys[i-1]) / 2
	}
	return sum, nil
}

// Simpson integrates f over [a, b] with composite Simpson's rule on n
// subintervals; n must be even and positive.
func Simpson(f func(float64) float64, a, b float64, n int) (float64, error) {
	if f == nil {
		return 0, errs.Invalidf("simpson", "", "nil integrand")
	}
	if n <= 0 || n%2 != 0 {
		return 0, errs.Invalidf("simpson", "", "subintervals must be even and positive, got %d", n)
	}
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}
	return sum * h / 3, nil
}

// ScaleSI splits v into a mantissa and SI prefix, e.g. 1500 -> (1.5, "k").
func ScaleSI(v float64) (float64, string) {
	return humanize.ComputeSI(v)
}

// FormatSI renders v with an SI prefix and unit, e.g. "2.2345 pF".
func FormatSI(v float64, unit string) string {
	return humanize.SI(v, unit)
}

// ParseSI is the inverse of FormatSI, returning the value and bare unit.
func ParseSI(s string) (float64, string, error) {
	v, unit, err := humanize.ParseSI(s)
	if err != nil {
		return 0, "", errs.Invalid("parse si", "", err)
	}
	return v, unit, nil
}
