package epicycles

import (
	"testing"
)

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Identity.ThenTranslate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(Reflect(10)), Pt(3, 6), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	px := Pt(1, 0)
	py := Pt(0, 1)
	pxy := Pt(1, 1)

	assertNear(t, px.Transform(a2).Transform(a1), px.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, py.Transform(a2).Transform(a1), py.Transform(a1.Mul(a2)), epsilon)
	assertNear(t, pxy.Transform(a2).Transform(a1), pxy.Transform(a1.Mul(a2)), epsilon)
}

func TestReflectIsInvolution(t *testing.T) {
	const epsilon = 1e-9
	aff := Reflect(500).Mul(Reflect(500))
	for _, p := range []Point{Pt(0, 0), Pt(1, 499), Pt(-3, 1000)} {
		assertNear(t, p.Transform(aff), p, epsilon)
	}
}

func TestScaleTransform(t *testing.T) {
	const epsilon = 1e-9
	src := Rect{X0: -1, Y0: 499, X1: 1, Y1: 501}
	aff := ScaleTransform(src, 240, Pt(10, 10))

	// src's origin lands on the target origin, its far corner scale units away.
	assertNear(t, src.Origin().Transform(aff), Pt(10, 10), epsilon)
	assertNear(t, Pt(src.X1, src.Y1).Transform(aff), Pt(490, 490), epsilon)
	assertNear(t, Pt(1, 500).Transform(aff), Pt(490, 250), epsilon)
}
