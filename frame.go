package epicycles

import (
	"fmt"
	"iter"
	"math"

	"github.com/sgostarter/i/commerr"
)

// FrameRequest describes one frame of the animation.
type FrameRequest struct {
	// T is the time of the frame. The chain repeats with period 2π.
	T float64
	// SampleCount is the number of samples taken of parametric curves and
	// term series. Zero selects DefaultSampleCount.
	SampleCount int
	Viewport    Viewport
	// N is the number of positive (and negative) frequencies of the
	// approximation. Values below 1 select [SuggestTerms].
	N      int
	Source CurveSource
	// Bounds, if not nil, is a rectangle in the view space of frames built
	// without Bounds, for example the union of [Frame.BoundingBox] over a
	// whole animation. It is fitted into the viewport after the curve has
	// been, so that every frame shares one frame of reference.
	Bounds *Rect
}

// Frame is the drawable geometry of one moment of the animation, in view
// space.
type Frame struct {
	// T is the time the chain was evaluated at.
	T float64
	// Curve is the input curve.
	Curve []Point
	// Series is the approximation of Curve by the truncated series.
	Series []Point
	// Chain holds the tips of the 2N+1 chained vectors, see
	// [EpicycleChain].
	Chain []Point
	// Circles holds one circle per pair of consecutive chain points.
	Circles    []Circle
	Terminator Circle

	// Viewport is the viewport the frame was laid out in.
	Viewport Viewport
	// Coefficients are the coefficients the frame was synthesized from, in
	// mathematical space.
	Coefficients Coefficients
	// TooFewPoints reports that the requested curve had too few points and
	// DefaultCurve was drawn instead.
	TooFewPoints bool
}

// N returns the number of positive frequencies drawn.
func (f Frame) N() int { return f.Coefficients.N() }

type analyzer func(N int, src CurveSource, sampleCount int, points []Point) Coefficients

func analyze(N int, _ CurveSource, _ int, points []Point) Coefficients {
	return EstimateCoefficients(N, points)
}

// BuildFrame samples the requested curve, approximates it and lays out the
// resulting geometry in the viewport.
//
// A drawn curve or term series with no more than MinimumPointCount points
// is replaced by DefaultCurve and the frame is marked TooFewPoints. A curve
// whose bounds have no extent cannot be fitted and yields an error wrapping
// ErrDegenerateBounds.
func BuildFrame(req FrameRequest) (Frame, error) {
	return buildFrame(req, analyze)
}

func buildFrame(req FrameRequest, analyze analyzer) (Frame, error) {
	count := req.SampleCount
	if count == 0 {
		count = DefaultSampleCount
	}
	if count < 2 {
		return Frame{}, fmt.Errorf("sample count %d: %w", count, commerr.ErrInvalidArgument)
	}
	if err := req.Viewport.Validate(); err != nil {
		return Frame{}, err
	}

	N := req.N
	if N < 1 {
		N = SuggestTerms(req.Source, count)
	}
	src, curve, tooFew := resolveSource(req.Source, count)
	coeffs := analyze(N, src, count, curve)
	if !coeffs.Valid() {
		return Frame{}, ErrInvalidCoefficients
	}
	series := Trajectory(len(curve), coeffs)
	chain := complexPoints(EpicycleChain(req.T, coeffs))

	h := req.Viewport.Size.Height
	sets := [][]Point{FlipY(curve, h), FlipY(series, h), FlipY(chain, h)}
	if bounds, ok := BoundingRect(sets[0]); ok {
		var err error
		sets, err = ScaleIntoViewport(sets, bounds, req.Viewport)
		if err != nil {
			return Frame{}, fmt.Errorf("fitting curve: %w", err)
		}
	}
	if req.Bounds != nil {
		var err error
		sets, err = ScaleIntoViewport(sets, *req.Bounds, req.Viewport)
		if err != nil {
			return Frame{}, fmt.Errorf("fitting bounds: %w", err)
		}
	}

	f := Frame{
		T:            req.T,
		Curve:        sets[0],
		Series:       sets[1],
		Chain:        sets[2],
		Circles:      Epicircles(sets[2]),
		Viewport:     req.Viewport,
		Coefficients: coeffs,
		TooFewPoints: tooFew,
	}
	f.Terminator, _ = Terminator(f.Chain, TerminatorRadius)
	return f, nil
}

// Artifact names one of the five drawable parts of a frame.
type Artifact int

const (
	ArtifactCurve Artifact = iota
	ArtifactSeries
	ArtifactRadii
	ArtifactCircles
	ArtifactTerminator
)

// Artifacts lists all artifacts in drawing order.
var Artifacts = [...]Artifact{ArtifactCurve, ArtifactSeries, ArtifactRadii, ArtifactCircles, ArtifactTerminator}

func (a Artifact) String() string {
	switch a {
	case ArtifactCurve:
		return "curve"
	case ArtifactSeries:
		return "series"
	case ArtifactRadii:
		return "radii"
	case ArtifactCircles:
		return "circles"
	case ArtifactTerminator:
		return "terminator"
	default:
		return fmt.Sprintf("Artifact(%d)", int(a))
	}
}

// circleTolerance is the accuracy of circle paths, in view units.
const circleTolerance = 0.1

// Path returns an artifact as a path. Circles are approximated by cubic
// Béziers, all other artifacts are open polylines.
func (f Frame) Path(a Artifact) BezPath {
	switch a {
	case ArtifactCurve:
		return Polyline(f.Curve, false)
	case ArtifactSeries:
		return Polyline(f.Series, false)
	case ArtifactRadii:
		return Polyline(f.Chain, false)
	case ArtifactCircles:
		var p BezPath
		for _, c := range f.Circles {
			p.Append(c.PathElements(circleTolerance))
		}
		return p
	case ArtifactTerminator:
		if f.Terminator.Radius > 0 {
			return f.Terminator.Path(circleTolerance)
		}
		return nil
	default:
		return nil
	}
}

// Paths returns the artifacts of the frame as paths, in drawing order.
func (f Frame) Paths() iter.Seq2[Artifact, BezPath] {
	return func(yield func(Artifact, BezPath) bool) {
		for _, a := range Artifacts {
			if !yield(a, f.Path(a)) {
				return
			}
		}
	}
}

// BoundingBox returns the smallest rectangle enclosing all five artifacts.
// It reports false for an empty frame.
func (f Frame) BoundingBox() (Rect, bool) {
	var rects []Rect
	for _, pts := range [][]Point{f.Curve, f.Series, f.Chain} {
		if r, ok := BoundingRect(pts); ok {
			rects = append(rects, r)
		}
	}
	for _, c := range f.Circles {
		rects = append(rects, c.BoundingBox())
	}
	if f.Terminator.Radius > 0 {
		rects = append(rects, f.Terminator.BoundingBox())
	}
	return UnionRects(rects)
}

// ChainIndex returns the index in the epicycle chain of the vector with
// frequency n: 2n−1 for n > 0, −2n for n < 0, and 0 for the constant term.
func ChainIndex(n int) int {
	switch {
	case n > 0:
		return 2*n - 1
	case n < 0:
		return -2 * n
	default:
		return 0
	}
}

// CircleIndex returns the index in [Frame.Circles] of the circle traced by
// the vector with frequency n in a chain of 2N+1 vectors. The constant term
// has no circle, and frequencies beyond N are not drawn; ok is false for
// both.
func CircleIndex(n, N int) (k int, ok bool) {
	if n == 0 {
		return 0, false
	}
	k = ChainIndex(n) - 1
	if k < 0 || k >= 2*N {
		return 0, false
	}
	return k, true
}

// TrailAlpha returns the opacity of segment j of a series of count points
// drawn as a fading trail at time t. The segment under the chain's tip is
// opaque and opacity falls off behind it, faster for larger trailLength.
func TrailAlpha(j int, t float64, count int, trailLength float64) float64 {
	if count < 2 {
		return 1
	}
	g := (t+math.Pi)/(2*math.Pi) + (1 - float64(j)/float64(count-1))
	return math.Pow(1-math.Mod(g, 1), trailLength)
}
