package epicycles

import (
	"math"
)

type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// NewRectFromOrigin returns a rectangle with the given size, extending to the right and
// down (for positive sizes) from the origin. Width and height are ensured to be
// non-negative.
func NewRectFromOrigin(origin Point, size Size) Rect {
	return NewRectFromPoints(origin, origin.Translate(size.AsVec2()))
}

// BoundingRect returns the smallest rectangle enclosing all points. It
// reports false for an empty sequence. The rectangle of a single point has
// zero size.
func BoundingRect(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := NewRectFromPoints(points[0], points[0])
	for _, pt := range points[1:] {
		r = r.UnionPoint(pt)
	}
	return r, true
}

// UnionRects returns the smallest rectangle enclosing all rectangles. It
// reports false if rects is empty.
func UnionRects(rects []Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	r := rects[0].Abs()
	for _, o := range rects[1:] {
		r = r.Union(o.Abs())
	}
	return r, true
}

// Abs returns a new rectangle with the same extents as r, but ensuring that width and
// height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

// Origin returns the origin of the rectangle.
//
// This is the top left corner in a y-down space and with
// non-negative width and height.
func (r Rect) Origin() Point {
	return Point{
		X: r.X0,
		Y: r.Y0,
	}
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Size() Size {
	return Size{
		Width:  r.Width(),
		Height: r.Height(),
	}
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Inflate expands a rectangle by a constant amount in both directions.
//
// Negative amounts shrink the rectangle; a viewport inset by d is
// r.Inflate(-d, -d).
func (r Rect) Inflate(width, height float64) Rect {
	return Rect{
		X0: r.X0 - width,
		Y0: r.Y0 - height,
		X1: r.X1 + width,
		Y1: r.Y1 + height,
	}
}

// AspectRatio returns the aspect ratio of the rectangle, height divided by
// width.
//
// If the width is 0 the output will be "sign(y1 - y0) * infinity".
//
// If The width and height are 0, the result will be NaN.
func (r Rect) AspectRatio() float64 {
	return r.Size().AspectRatio()
}

// IsDegenerate reports whether the rectangle has neither width nor height,
// as is the case for the bounds of a single point. Such a rectangle cannot
// be scaled into a viewport.
func (r Rect) IsDegenerate() bool {
	return r.Width() == 0 && r.Height() == 0
}

// ContainedRectWithAspectRatio returns the largest possible rectangle that is
// fully contained in this rectangle, with the given aspect ratio.
//
// The aspect ratio is specified fractionally, as height / width.
//
// The resulting rectangle will be centered if it is smaller than the input
// rectangle.
func (r Rect) ContainedRectWithAspectRatio(aspectRatio float64) Rect {
	width, height := r.Width(), r.Height()
	rAspect := height / width

	if math.Abs(rAspect-aspectRatio) < 1e-9 {
		return r
	} else if math.Abs(rAspect) < math.Abs(aspectRatio) {
		// shrink x to fit
		newWidth := height / aspectRatio
		gap := (width - newWidth) * 0.5
		x0 := r.X0 + gap
		x1 := r.X1 - gap
		return Rect{x0, r.Y0, x1, r.Y1}
	} else {
		// shrink y to fit
		newHeight := width * aspectRatio
		gap := (height - newHeight) * 0.5
		y0 := r.Y0 + gap
		y1 := r.Y1 - gap
		return Rect{r.X0, y0, r.X1, y1}
	}
}

func (r Rect) IsInf() bool {
	return math.IsInf(r.X0, 0) ||
		math.IsInf(r.X1, 0) ||
		math.IsInf(r.Y0, 0) ||
		math.IsInf(r.Y1, 0)
}

func (r Rect) IsNaN() bool {
	return math.IsNaN(r.X0) ||
		math.IsNaN(r.X1) ||
		math.IsNaN(r.Y0) ||
		math.IsNaN(r.Y1)
}
