package epicycles

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Partition returns count equally spaced parameter values covering [−π, π],
// both ends included: t_i = i·2π/(count−1) − π. It returns nil for count < 2.
func Partition(count int) []float64 {
	if count < 2 {
		return nil
	}
	ts := floats.Span(make([]float64, count), -math.Pi, math.Pi)
	// Pin the upper end against rounding in l + step·(n−1).
	ts[count-1] = math.Pi
	return ts
}

// Integrate returns the definite integral over [−π, π] of a function given
// by samples at [Partition](len(samples)).
//
// Simpson's rule is used for three or more samples. An even number of
// samples, and thus an odd number of intervals, is handled by a corrected
// final panel rather than rejected. The correction is exact for cubics only,
// so for periodic integrands an even count is much less accurate than an odd
// one: a single harmonic integrates to rounding error with an odd count but
// to errors of order h⁴ with an even one. Two samples fall back to the
// trapezoidal rule and fewer than two integrate to 0.
func Integrate(samples []float64) float64 {
	switch n := len(samples); {
	case n < 2:
		return 0
	case n == 2:
		return integrate.Trapezoidal(Partition(n), samples)
	default:
		return integrate.Simpsons(Partition(n), samples)
	}
}
