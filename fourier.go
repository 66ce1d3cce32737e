package epicycles

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Coefficients are the complex Fourier coefficients A_−N … A_N of a curve,
// stored at index n+N. A valid vector has odd length.
//
// Coefficients are not modified after they have been produced; functions
// returning them may share the backing array with a cache.
type Coefficients []complex128

// N returns the highest frequency of the vector, or -1 if it is invalid.
func (c Coefficients) N() int {
	if !c.Valid() {
		return -1
	}
	return (len(c) - 1) / 2
}

// Valid reports whether the vector has odd length.
func (c Coefficients) Valid() bool {
	return len(c)%2 == 1
}

// At returns A_n. Frequencies beyond N have a zero coefficient.
func (c Coefficients) At(n int) complex128 {
	N := c.N()
	if N < 0 || n < -N || n > N {
		return 0
	}
	return c[n+N]
}

// EstimateCoefficients estimates A_−N … A_N of the closed curve sampled by
// points, which must lie on [Partition](len(points)).
//
// Each coefficient is assembled from four real integrals:
//
//	cx_re =  1/2π ∫ x(t)·cos(nt) dt     cx_im = −1/2π ∫ x(t)·sin(nt) dt
//	cy_re =  1/2π ∫ y(t)·cos(nt) dt     cy_im = −1/2π ∫ y(t)·sin(nt) dt
//	A_n   = (cx_re − cy_im) + i·(cx_im + cy_re)
//
// The cost is O(N·len(points)). It returns nil for N < 0 or fewer than two
// points.
func EstimateCoefficients(N int, points []Point) Coefficients {
	count := len(points)
	if N < 0 || count < 2 {
		return nil
	}

	xs := make([]float64, count)
	ys := make([]float64, count)
	for i, pt := range points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	ts := Partition(count)
	cosn := make([]float64, count)
	sinn := make([]float64, count)
	prod := make([]float64, count)
	integral := func(a, b []float64) float64 {
		return Integrate(floats.MulTo(prod, a, b)) / (2 * math.Pi)
	}

	out := make(Coefficients, 2*N+1)
	for n := -N; n <= N; n++ {
		for i, t := range ts {
			sinn[i], cosn[i] = math.Sincos(float64(n) * t)
		}
		cxRe := integral(xs, cosn)
		cxIm := -integral(xs, sinn)
		cyRe := integral(ys, cosn)
		cyIm := -integral(ys, sinn)
		out[n+N] = complex(cxRe-cyIm, cxIm+cyRe)
	}
	return out
}

// EstimateCoefficientsFFT computes the same coefficients as
// [EstimateCoefficients] with a single complex FFT. The duplicated end point
// of the partition is dropped and the remaining M samples are treated as one
// period. When M is too small to resolve frequency N without aliasing it
// falls back to EstimateCoefficients.
func EstimateCoefficientsFFT(N int, points []Point) Coefficients {
	if N < 0 || len(points) < 2 {
		return nil
	}
	m := len(points) - 1
	if m <= 2*N {
		return EstimateCoefficients(N, points)
	}
	seq := make([]complex128, m)
	for i := range seq {
		seq[i] = points[i].Complex()
	}
	coeffs := fourier.NewCmplxFFT(m).Coefficients(nil, seq)

	// The samples start at t = −π, which shifts the phase of A_n by nπ.
	out := make(Coefficients, 2*N+1)
	for n := -N; n <= N; n++ {
		k := n
		if k < 0 {
			k += m
		}
		z := coeffs[k] / complex(float64(m), 0)
		if n%2 != 0 {
			z = -z
		}
		out[n+N] = z
	}
	return out
}

// SuggestTermsForSampleCount returns a term count N for a curve with count
// samples, following the sampling theorem: count/2π samples per unit of
// parameter resolve frequencies up to half that. The result is clamped to
// [1, MaxTerms].
func SuggestTermsForSampleCount(count int) int {
	n := int(float64(count) / (2 * math.Pi) / 2)
	return min(max(n, 1), MaxTerms)
}

// SuggestTermsForTerms returns the term count that reproduces terms exactly,
// the highest absolute frequency, clamped to [1, MaxTerms].
func SuggestTermsForTerms(terms Terms) int {
	return min(max(terms.HighestFrequency(), 1), MaxTerms)
}

// SuggestTerms returns the term count suited to src sampled at sampleCount
// points. Drawn curves use their own point count, term series their highest
// frequency, and everything else, including user curves too short to be
// used, the sample count.
func SuggestTerms(src CurveSource, sampleCount int) int {
	switch src := src.(type) {
	case DrawnPoints:
		if len(src.Points) > MinimumPointCount {
			return SuggestTermsForSampleCount(len(src.Points))
		}
	case TermSeries:
		if len(src.Terms) > 0 {
			return SuggestTermsForTerms(src.Terms)
		}
	}
	return SuggestTermsForSampleCount(sampleCount)
}
