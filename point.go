package epicycles

import (
	"fmt"
	"math"
)

// Point is a sample of a planar curve.
//
// Points are used both in mathematical space (y-up, origin bottom left) and in
// view space (y-down, origin top left). Nothing in the type records which one
// applies; callers keep track of the frame a sequence lives in.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// PointFromComplex returns the point (real(z), imag(z)).
func PointFromComplex(z complex128) Point {
	return Point{X: real(z), Y: imag(z)}
}

// Complex returns the point as x + iy.
func (pt Point) Complex() complex128 {
	return complex(pt.X, pt.Y)
}

func (pt Point) Splat() (float64, float64) {
	return pt.X, pt.Y
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub computes pt−o.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// TransformPoints applies aff to every point of every set. The shape of the
// input is preserved.
func TransformPoints(sets [][]Point, aff Affine) [][]Point {
	out := make([][]Point, len(sets))
	for i, set := range sets {
		if set == nil {
			continue
		}
		ts := make([]Point, len(set))
		for j, pt := range set {
			ts[j] = pt.Transform(aff)
		}
		out[i] = ts
	}
	return out
}
