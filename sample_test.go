package epicycles

import (
	"math"
	"testing"
)

func TestSample(t *testing.T) {
	got := Sample(3, func(t float64) float64 { return 2 * t })
	diff(t, []float64{-2 * math.Pi, 0, 2 * math.Pi}, got, approx(1e-15))

	if got := Sample(1, math.Sin); got != nil {
		t.Errorf("got %v for one sample, want nil", got)
	}
}

func TestSampleCurve(t *testing.T) {
	got := SampleCurve(5, math.Cos, math.Sin)
	want := []Point{Pt(-1, 0), Pt(0, -1), Pt(1, 0), Pt(0, 1), Pt(-1, 0)}
	diff(t, want, got, approx(1e-15))
}

func TestSampleTerms(t *testing.T) {
	if got := SampleTerms(100, nil); len(got) != 0 {
		t.Errorf("got %d points for no terms, want none", len(got))
	}

	terms := Terms{
		{Amplitude: 1, Frequency: 1},
		{Amplitude: 0.5, Phase: math.Pi / 2, Frequency: -2},
	}
	got := SampleTerms(9, terms)
	if len(got) != 9 {
		t.Fatalf("got %d points, want 9", len(got))
	}
	for i, tv := range Partition(9) {
		want := UnitExp(tv, 1) + complex(0, 0.5)*UnitExp(tv, -2)
		diff(t, PointFromComplex(want), got[i], approx(1e-12))
	}
}

func TestWavefunction(t *testing.T) {
	tests := []struct {
		typ  WaveType
		p    float64
		want float64
	}{
		{Sine, 0.25, 1},
		{Square, 0.25, 1},
		{Square, 0.75, -1},
		{Triangle, 0.125, 0.5},
		{Triangle, 0.5, 0},
		{Triangle, 0.875, -0.5},
		{Sawtooth, 0.25, 0.25},
		{SquareFourier, 0, 0},
		{SawtoothFourier, 0, 0.5},
	}
	for _, tt := range tests {
		got := Wavefunction(tt.p, 1, 1, 0, tt.typ)
		assertNearFloat(t, got, tt.want, 1e-12)
	}

	// Frequency, amplitude and offset.
	assertNearFloat(t, Wavefunction(0.5, 0.5, 2, 0.25, Square), -2, 1e-12)
	// Periodicity.
	assertNearFloat(t, Wavefunction(3.25, 1, 1, 0, Sine), 1, 1e-12)
}

func TestPresets(t *testing.T) {
	ps := Presets()
	if len(ps) != 10 {
		t.Fatalf("got %d presets, want 10", len(ps))
	}
	if ps[len(ps)-1].Name != DefaultCurve.Name {
		t.Errorf("got %q as the last preset, want %q", ps[len(ps)-1].Name, DefaultCurve.Name)
	}
	seen := map[string]bool{}
	for _, p := range ps {
		if seen[p.Name] {
			t.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		pts := SampleCurve(DefaultSampleCount, p.X, p.Y)
		for _, pt := range pts {
			if math.IsNaN(pt.X+pt.Y) || math.IsInf(pt.X+pt.Y, 0) {
				t.Fatalf("preset %q produced %v", p.Name, pt)
			}
		}
		if r, _ := BoundingRect(pts); r.IsDegenerate() {
			t.Errorf("preset %q has degenerate bounds %v", p.Name, r)
		}
	}

	p, ok := LookupPreset("Heart")
	if !ok {
		t.Fatal("heart not found")
	}
	// The heart's top center cusp.
	diff(t, Pt(0, 5), Pt(p.X(0), p.Y(0)), approx(1e-12))

	if _, ok := LookupPreset("nope"); ok {
		t.Error("found preset that doesn't exist")
	}
}
