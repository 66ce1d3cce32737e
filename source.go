package epicycles

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// CurveSource is the curve a frame is built from. It is one of [Parametric],
// [DrawnPoints] or [TermSeries].
type CurveSource interface {
	// resolve returns the curve's points on the uniform partition and
	// whether they can be used. Unusable sources are replaced by
	// DefaultCurve.
	resolve(sampleCount int) ([]Point, bool)
	// fingerprint identifies the curve for caching, given the points
	// resolve returned.
	fingerprint(sampleCount int, points []Point) uint64
}

// Parametric is a curve given by a pair of functions of t ∈ [−π, π].
type Parametric struct {
	// Name is shown to users. Curves are told apart by their samples, so
	// two curves may share a name.
	Name string
	X    func(t float64) float64
	Y    func(t float64) float64
}

// DrawnPoints is a curve drawn by hand, in mathematical orientation. The
// points are taken to lie on the uniform partition of [−π, π].
type DrawnPoints struct {
	Points []Point
}

// TermSeries is a curve given directly as a sparse Fourier series.
type TermSeries struct {
	Terms Terms
}

var (
	_ CurveSource = Parametric{}
	_ CurveSource = DrawnPoints{}
	_ CurveSource = TermSeries{}
)

func (p Parametric) resolve(sampleCount int) ([]Point, bool) {
	if p.X == nil || p.Y == nil {
		return nil, false
	}
	return SampleCurve(sampleCount, p.X, p.Y), true
}

func (p DrawnPoints) resolve(int) ([]Point, bool) {
	if len(p.Points) <= MinimumPointCount {
		return nil, false
	}
	return p.Points, true
}

func (p TermSeries) resolve(sampleCount int) ([]Point, bool) {
	pts := SampleTerms(sampleCount, p.Terms)
	if len(pts) <= MinimumPointCount {
		return nil, false
	}
	return pts, true
}

// resolveSource returns the points of src, or of DefaultCurve together with
// true if src is missing or unusable.
func resolveSource(src CurveSource, sampleCount int) (CurveSource, []Point, bool) {
	if src != nil {
		if pts, ok := src.resolve(sampleCount); ok {
			return src, pts, false
		}
	}
	pts, _ := DefaultCurve.resolve(sampleCount)
	return DefaultCurve, pts, true
}

const (
	tagParametric = iota + 1
	tagDrawn
	tagTerms
)

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(tag byte, sampleCount int) *hasher {
	h := &hasher{d: xxhash.New()}
	h.d.Write([]byte{tag})
	h.int(sampleCount)
	return h
}

func (h *hasher) int(v int) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	h.d.Write(h.buf[:])
}

func (h *hasher) float(v float64) {
	binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v))
	h.d.Write(h.buf[:])
}

func (h *hasher) points(pts []Point) {
	h.int(len(pts))
	for _, pt := range pts {
		h.float(pt.X)
		h.float(pt.Y)
	}
}

func (p Parametric) fingerprint(sampleCount int, points []Point) uint64 {
	// Functions can't be compared, their samples can.
	h := newHasher(tagParametric, sampleCount)
	h.points(points)
	return h.d.Sum64()
}

func (p DrawnPoints) fingerprint(int, []Point) uint64 {
	// The sample count doesn't affect drawn curves.
	h := newHasher(tagDrawn, 0)
	h.points(p.Points)
	return h.d.Sum64()
}

func (p TermSeries) fingerprint(sampleCount int, _ []Point) uint64 {
	h := newHasher(tagTerms, sampleCount)
	for _, t := range p.Terms {
		h.float(t.Amplitude)
		h.float(t.Phase)
		h.int(t.Frequency)
	}
	return h.d.Sum64()
}
