package epicycles

// EpicycleChain returns the epicycle chain of the series at time t: the
// running sums of the 2N+1 vectors
//
//	A_0, A_1·e^(it), A_−1·e^(−it), A_2·e^(2it), A_−2·e^(−2it), …
//
// in that order. Element i is the tip of vector i when all vectors are
// placed tip to tail; the last element is the point of the approximated
// curve at t. Circle colouring depends on this order, see [CircleIndex].
//
// It returns nil for invalid coefficients.
func EpicycleChain(t float64, c Coefficients) []complex128 {
	N := c.N()
	if N < 0 {
		return nil
	}
	out := make([]complex128, 0, 2*N+1)
	sum := c.At(0)
	out = append(out, sum)
	for n := 1; n <= N; n++ {
		sum += c.At(n) * UnitExp(t, float64(n))
		out = append(out, sum)
		sum += c.At(-n) * UnitExp(t, float64(-n))
		out = append(out, sum)
	}
	return out
}

// Evaluate returns the value of the series at t, the last element of
// [EpicycleChain] without building the chain. It returns 0 for invalid
// coefficients.
func Evaluate(t float64, c Coefficients) complex128 {
	N := c.N()
	if N < 0 {
		return 0
	}
	sum := c.At(0)
	for n := 1; n <= N; n++ {
		sum += c.At(n) * UnitExp(t, float64(n))
		sum += c.At(-n) * UnitExp(t, float64(-n))
	}
	return sum
}

// Trajectory samples the approximated curve at each value of
// [Partition](sampleCount). It returns nil for invalid coefficients or
// sampleCount < 2.
func Trajectory(sampleCount int, c Coefficients) []Point {
	if !c.Valid() {
		return nil
	}
	ts := Partition(sampleCount)
	if ts == nil {
		return nil
	}
	out := make([]Point, len(ts))
	for i, t := range ts {
		out[i] = PointFromComplex(Evaluate(t, c))
	}
	return out
}

func complexPoints(zs []complex128) []Point {
	if zs == nil {
		return nil
	}
	out := make([]Point, len(zs))
	for i, z := range zs {
		out[i] = PointFromComplex(z)
	}
	return out
}
