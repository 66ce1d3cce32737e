package epicycles

import (
	"iter"
	"math"
	"slices"
)

// Circle is one epicycle: a circle centered on a vector-chain point whose
// radius reaches the next point of the chain. The terminator marker is also
// a Circle.
type Circle struct {
	Center Point
	Radius float64
}

// Path returns the circle approximated by cubic Béziers.
func (c Circle) Path(tolerance float64) BezPath { return slices.Collect(c.PathElements(tolerance)) }

// PathElements returns the circle as a closed subpath of cubic Béziers,
// starting and ending at the rightmost point.
func (c Circle) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		scaledError := math.Abs(c.Radius) / tolerance
		var n int
		var armLength float64
		if scaledError < 1.0/1.9608e-4 {
			// Solution from http://spencermortensen.com/articles/bezier-circle/
			n = 4
			armLength = 0.551915024494
		} else {
			// This is empirically determined to fall within error tolerance.
			n = int(math.Ceil(math.Pow(1.1163*scaledError, 1.0/6.0)))
			armLength = (4.0 / 3.0) * math.Tan(math.Pi/2/(float64(n)))
		}

		x, y := c.Center.Splat()
		r := c.Radius
		if !yield(MoveTo(Pt(x+r, y))) {
			return
		}
		deltaTh := 2.0 * math.Pi / float64(n)
		for ix := 1; ix <= n; ix++ {
			a := armLength
			th1 := deltaTh * float64(ix)
			th0 := th1 - deltaTh
			s0, c0 := math.Sincos(th0)
			var s1, c1 float64
			if ix == n {
				s1 = 0.0
				c1 = 1.0
			} else {
				s1, c1 = math.Sincos(th1)
			}
			if !yield(CubicTo(
				Pt(x+r*(c0-a*s0), y+r*(s0+a*c0)),
				Pt(x+r*(c1+a*s1), y+r*(s1-a*c1)),
				Pt(x+r*c1, y+r*s1),
			)) {
				return
			}
		}
		yield(ClosePath())
	}
}

func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	x := c.Center.X
	y := c.Center.Y
	return Rect{
		X0: x - r,
		Y0: y - r,
		X1: x + r,
		Y1: y + r,
	}
}

// Epicircles returns one circle per consecutive pair of chain points: circle
// i is centered on chain[i] and passes through chain[i+1]. A chain of fewer
// than two points has no circles.
func Epicircles(chain []Point) []Circle {
	if len(chain) < 2 {
		return nil
	}
	circles := make([]Circle, len(chain)-1)
	for i := range circles {
		circles[i] = Circle{
			Center: chain[i],
			Radius: chain[i].Distance(chain[i+1]),
		}
	}
	return circles
}

// Terminator returns the marker circle drawn at the last chain point. It
// reports false for an empty chain or a non-positive radius.
func Terminator(chain []Point, radius float64) (Circle, bool) {
	if len(chain) == 0 || !(radius > 0) {
		return Circle{}, false
	}
	return Circle{Center: chain[len(chain)-1], Radius: radius}, true
}
