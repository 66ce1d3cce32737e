package epicycles

import (
	"errors"
	"math"
	"testing"

	"github.com/sgostarter/i/commerr"
)

func TestBuildFrameUnitCircle(t *testing.T) {
	f, err := BuildFrame(FrameRequest{
		T:           0,
		SampleCount: 1000,
		Viewport:    NewViewport(500, 500),
		N:           1,
		Source:      unitCircle(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if f.TooFewPoints {
		t.Error("circle reported as too few points")
	}
	if len(f.Chain) != 3 {
		t.Fatalf("got chain of %d points, want 3", len(f.Chain))
	}
	tip := f.Chain[len(f.Chain)-1]
	if d := tip.Distance(Pt(490, 250)); d > 1 {
		t.Errorf("got tip at %v, want within 1 of (490, 250)", tip)
	}
	diff(t, tip, f.Terminator.Center)
	assertNearFloat(t, f.Terminator.Radius, TerminatorRadius, 0)

	// The circle is inscribed in the 480×480 plot area.
	r, _ := BoundingRect(f.Curve)
	diff(t, Rect{10, 10, 490, 490}, r, approx(0.5))
	if len(f.Circles) != 2 {
		t.Fatalf("got %d circles, want 2", len(f.Circles))
	}
	assertNearFloat(t, f.Circles[0].Radius, 240, 0.01)
	assertNearFloat(t, f.Circles[1].Radius, 0, 0.01)
}

func TestBuildFrameShapes(t *testing.T) {
	heart, _ := LookupPreset("heart")
	for _, N := range []int{1, 3, 10} {
		f, err := BuildFrame(FrameRequest{
			T:           0.7,
			SampleCount: 400,
			Viewport:    NewViewport(300, 200),
			N:           N,
			Source:      heart,
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(f.Curve) != 400 || len(f.Series) != 400 {
			t.Errorf("N=%d: got %d curve and %d series points, want 400", N, len(f.Curve), len(f.Series))
		}
		if len(f.Chain) != 2*N+1 || len(f.Circles) != 2*N {
			t.Errorf("N=%d: got %d chain points and %d circles", N, len(f.Chain), len(f.Circles))
		}
		if f.N() != N {
			t.Errorf("got N=%d, want %d", f.N(), N)
		}
		r, _ := BoundingRect(f.Curve)
		plot := NewViewport(300, 200).Plot()
		if r.X0 < plot.X0-1e-9 || r.Y0 < plot.Y0-1e-9 || r.X1 > plot.X1+1e-9 || r.Y1 > plot.Y1+1e-9 {
			t.Errorf("N=%d: curve %v leaves plot area %v", N, r, plot)
		}
	}
}

func TestBuildFrameOrientation(t *testing.T) {
	// The heart's cusp at t = 0 is above its tip at t = −π, which in view
	// space means a smaller y.
	heart, _ := LookupPreset("heart")
	f, err := BuildFrame(FrameRequest{Viewport: NewViewport(500, 500), N: 10, Source: heart})
	if err != nil {
		t.Fatal(err)
	}
	cusp := f.Curve[len(f.Curve)/2]
	tip := f.Curve[0]
	if !(cusp.Y < tip.Y) {
		t.Errorf("cusp at %v should be above tip at %v", cusp, tip)
	}
}

func TestBuildFrameZeroTerms(t *testing.T) {
	if pts := SampleTerms(DefaultSampleCount, nil); len(pts) != 0 {
		t.Fatalf("got %d points for no terms", len(pts))
	}
	f, err := BuildFrame(FrameRequest{
		Viewport: NewViewport(500, 500),
		N:        1,
		Source:   TermSeries{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !f.TooFewPoints {
		t.Error("frame not marked as having too few points")
	}
	want, _ := BuildFrame(FrameRequest{Viewport: NewViewport(500, 500), N: 1, Source: DefaultCurve})
	want.TooFewPoints = true
	diff(t, want, f)
}

func TestBuildFrameDrawnPoints(t *testing.T) {
	few := SampleCurve(MinimumPointCount, math.Cos, math.Sin)
	f, err := BuildFrame(FrameRequest{Viewport: NewViewport(100, 100), N: 2, Source: DrawnPoints{Points: few}})
	if err != nil {
		t.Fatal(err)
	}
	if !f.TooFewPoints || len(f.Curve) != DefaultSampleCount {
		t.Errorf("got TooFewPoints=%t with %d points, want the default curve", f.TooFewPoints, len(f.Curve))
	}

	// Drawn points are used as given, regardless of the sample count.
	square, _ := LookupPreset("square")
	drawn := SampleCurve(MinimumPointCount+1, square.X, square.Y)
	f, err = BuildFrame(FrameRequest{Viewport: NewViewport(100, 100), N: 2, Source: DrawnPoints{Points: drawn}})
	if err != nil {
		t.Fatal(err)
	}
	if f.TooFewPoints || len(f.Curve) != len(drawn) || len(f.Series) != len(drawn) {
		t.Errorf("got TooFewPoints=%t with %d points, want %d drawn points", f.TooFewPoints, len(f.Curve), len(drawn))
	}
}

func TestBuildFrameSuggestsN(t *testing.T) {
	terms := Terms{{Amplitude: 1, Frequency: 1}, {Amplitude: 0.5, Frequency: -4}}
	f, err := BuildFrame(FrameRequest{Viewport: NewViewport(100, 100), Source: TermSeries{Terms: terms}})
	if err != nil {
		t.Fatal(err)
	}
	if f.N() != 4 {
		t.Errorf("got N=%d, want 4", f.N())
	}
}

func TestBuildFrameExternalBounds(t *testing.T) {
	vp := NewViewport(500, 500)
	req := FrameRequest{Viewport: vp, N: 1, Source: unitCircle()}
	f, err := BuildFrame(req)
	if err != nil {
		t.Fatal(err)
	}
	bounds, ok := f.BoundingBox()
	if !ok {
		t.Fatal("empty frame")
	}

	// The union covers the circle, the chain's circles and the terminator.
	if bounds.Width() < 480 || bounds.Height() < 480 {
		t.Errorf("bounds %v smaller than the curve", bounds)
	}

	req.Bounds = &bounds
	g, err := BuildFrame(req)
	if err != nil {
		t.Fatal(err)
	}
	// The frame's own bounds now fit the plot area. The terminator keeps its
	// radius under scaling, hence the slack.
	r, _ := g.BoundingBox()
	plot := vp.Plot()
	const slack = 0.5
	if r.X0 < plot.X0-slack || r.Y0 < plot.Y0-slack || r.X1 > plot.X1+slack || r.Y1 > plot.Y1+slack {
		t.Errorf("frame bounds %v exceed plot area %v", r, plot)
	}
	assertNearFloat(t, r.Width(), plot.Width(), slack)

	req.Bounds = &Rect{1, 1, 1, 1}
	if _, err := BuildFrame(req); !errors.Is(err, ErrDegenerateBounds) {
		t.Errorf("got error %v, want %v", err, ErrDegenerateBounds)
	}
}

func TestBuildFrameErrors(t *testing.T) {
	if _, err := BuildFrame(FrameRequest{SampleCount: 1, Viewport: NewViewport(10, 10)}); !errors.Is(err, commerr.ErrInvalidArgument) {
		t.Errorf("got error %v for one sample", err)
	}
	if _, err := BuildFrame(FrameRequest{}); !errors.Is(err, commerr.ErrInvalidArgument) {
		t.Errorf("got error %v for an empty viewport", err)
	}

	point := Parametric{
		Name: "point",
		X:    func(float64) float64 { return 1 },
		Y:    func(float64) float64 { return 1 },
	}
	if _, err := BuildFrame(FrameRequest{Viewport: NewViewport(100, 100), N: 1, Source: point}); !errors.Is(err, ErrDegenerateBounds) {
		t.Errorf("got error %v, want %v", err, ErrDegenerateBounds)
	}

	// The inset has to leave room to plot in.
	for _, inset := range []float64{20, 5, -1, math.NaN()} {
		vp := Viewport{Size: Sz(10, 10), Inset: inset}
		if _, err := BuildFrame(FrameRequest{Viewport: vp, N: 1}); !errors.Is(err, commerr.ErrOutOfRange) {
			t.Errorf("inset %g: got error %v, want %v", inset, err, commerr.ErrOutOfRange)
		}
	}
	if _, err := BuildFrame(FrameRequest{Viewport: Viewport{Size: Sz(10, 10), Inset: 4.9}, N: 1}); err != nil {
		t.Errorf("inset 4.9: %v", err)
	}
}

func TestFramePaths(t *testing.T) {
	f, err := BuildFrame(FrameRequest{Viewport: NewViewport(200, 200), N: 2, Source: unitCircle(), SampleCount: 50})
	if err != nil {
		t.Fatal(err)
	}
	var got []Artifact
	for a, p := range f.Paths() {
		got = append(got, a)
		if len(p) == 0 {
			t.Errorf("%s: empty path", a)
		}
	}
	diff(t, Artifacts[:], got)

	if n := len(f.Path(ArtifactCurve)); n != 50 {
		t.Errorf("got curve path of %d elements, want 50", n)
	}
	if n := len(f.Path(ArtifactRadii)); n != 5 {
		t.Errorf("got radii path of %d elements, want 5", n)
	}
	var moves int
	for _, el := range f.Path(ArtifactCircles) {
		if el.Kind == MoveToKind {
			moves++
		}
	}
	if moves != 4 {
		t.Errorf("got %d circles in path, want 4", moves)
	}
	if p := (Frame{}).Path(ArtifactTerminator); p != nil {
		t.Errorf("got terminator path %v for empty frame", p)
	}
	if _, ok := (Frame{}).BoundingBox(); ok {
		t.Error("got bounding box for empty frame")
	}
}

func TestCircleIndex(t *testing.T) {
	tests := []struct {
		n, N  int
		chain int
		k     int
		ok    bool
	}{
		{0, 3, 0, 0, false},
		{1, 3, 1, 0, true},
		{-1, 3, 2, 1, true},
		{2, 3, 3, 2, true},
		{-2, 3, 4, 3, true},
		{3, 3, 5, 4, true},
		{-3, 3, 6, 5, true},
		{4, 3, 7, 0, false},
		{-4, 3, 8, 0, false},
		{1, 0, 1, 0, false},
	}
	for _, tt := range tests {
		if got := ChainIndex(tt.n); got != tt.chain {
			t.Errorf("ChainIndex(%d) = %d, want %d", tt.n, got, tt.chain)
		}
		k, ok := CircleIndex(tt.n, tt.N)
		if k != tt.k || ok != tt.ok {
			t.Errorf("CircleIndex(%d, %d) = %d, %t, want %d, %t", tt.n, tt.N, k, ok, tt.k, tt.ok)
		}
	}

	// The circle of frequency n has radius |A_n|.
	c := Coefficients{0.5, 0.25, 0, 2, 1}
	chain := complexPoints(EpicycleChain(0.4, c))
	circles := Epicircles(chain)
	for n := -2; n <= 2; n++ {
		if k, ok := CircleIndex(n, 2); ok {
			assertNearFloat(t, circles[k].Radius, math.Abs(real(c.At(n))), 1e-12)
		}
	}
}

func TestTrailAlpha(t *testing.T) {
	const count = 101
	// At t = −π the trail ends at the last point.
	assertNearFloat(t, TrailAlpha(count-1, -math.Pi, count, 1), 1, 1e-12)
	assertNearFloat(t, TrailAlpha(50, -math.Pi, count, 1), 0.5, 1e-12)
	assertNearFloat(t, TrailAlpha(50, -math.Pi, count, 2), 0.25, 1e-12)
	// A trail length of 0 disables fading.
	assertNearFloat(t, TrailAlpha(10, 1, count, 0), 1, 0)
	// Halfway through the period, the point halfway along is opaque.
	assertNearFloat(t, TrailAlpha(50, 0, count, 3), 1, 1e-12)
	assertNearFloat(t, TrailAlpha(3, 0, 1, 3), 1, 0)
}
