package epicycles

import "math"

// UnitExp returns e^(i·n·t), the point at angle n·t on the unit circle.
// n is usually an integer frequency but need not be.
func UnitExp(t, n float64) complex128 {
	s, c := math.Sincos(n * t)
	return complex(c, s)
}
