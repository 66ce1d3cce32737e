package epicycles

// Sample evaluates f at each value of [Partition](count). It returns nil for
// count < 2.
func Sample(count int, f func(t float64) float64) []float64 {
	ts := Partition(count)
	if ts == nil {
		return nil
	}
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = f(t)
	}
	return out
}

// SampleCurve evaluates the parametric curve (x(t), y(t)) at each value of
// [Partition](count).
func SampleCurve(count int, x, y func(t float64) float64) []Point {
	ts := Partition(count)
	if ts == nil {
		return nil
	}
	out := make([]Point, len(ts))
	for i, t := range ts {
		out[i] = Point{X: x(t), Y: y(t)}
	}
	return out
}

// SampleTerms evaluates the sparse Fourier series Σ A_n·e^(int) described by
// terms at each value of [Partition](count). It returns nil when there are no
// terms.
func SampleTerms(count int, terms Terms) []Point {
	if len(terms) == 0 {
		return nil
	}
	ts := Partition(count)
	if ts == nil {
		return nil
	}
	out := make([]Point, len(ts))
	for i, t := range ts {
		var z complex128
		for _, term := range terms {
			z += term.Coefficient() * UnitExp(t, float64(term.Frequency))
		}
		out[i] = PointFromComplex(z)
	}
	return out
}
