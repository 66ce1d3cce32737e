package epicycles

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
)

// Viewport is a drawing area with a margin kept free on every side.
type Viewport struct {
	Size  Size
	Inset float64
}

// NewViewport returns a viewport of the given size with the default inset,
// PathsPadding.
func NewViewport(width, height float64) Viewport {
	return Viewport{Size: Sz(width, height), Inset: PathsPadding}
}

// Rect returns the full drawing area, with its origin at (0, 0).
func (vp Viewport) Rect() Rect {
	return NewRectFromOrigin(Point{}, vp.Size)
}

// Validate reports an error wrapping commerr.ErrInvalidArgument for an empty
// size and one wrapping commerr.ErrOutOfRange for an inset that is negative
// or leaves no plot area.
func (vp Viewport) Validate() error {
	if vp.Size.IsEmpty() {
		return fmt.Errorf("viewport %s: %w", vp.Size, commerr.ErrInvalidArgument)
	}
	if !(vp.Inset >= 0) || 2*vp.Inset >= min(vp.Size.Width, vp.Size.Height) {
		return fmt.Errorf("inset %g of viewport %s: %w", vp.Inset, vp.Size, commerr.ErrOutOfRange)
	}
	return nil
}

// Plot returns the drawing area less the inset.
func (vp Viewport) Plot() Rect {
	return vp.Rect().Inflate(-vp.Inset, -vp.Inset)
}

// FitAspect returns the largest rectangle with src's aspect ratio that fits
// in target, centered along the axis it doesn't fill. A source relatively
// wider than the target matches its width, any other its height.
//
// A source without extent on one axis yields a segment spanning target on
// the other axis. A source without any extent yields the zero-size rectangle
// at target's center.
func FitAspect(src, target Rect) Rect {
	if src.IsDegenerate() {
		c := target.Center()
		return NewRectFromPoints(c, c)
	}
	return target.ContainedRectWithAspectRatio(src.AspectRatio())
}

// FitTransform returns the transform that maps bounds onto the largest
// aspect-preserving rectangle inside the viewport's plot area. The transform
// is a uniform scale followed by a translation, so it preserves angles and
// ratios of distances.
//
// Bounds without width are scaled by their height instead. Bounds with
// neither width nor height cannot be fitted and yield ErrDegenerateBounds.
func FitTransform(bounds Rect, vp Viewport) (Affine, error) {
	bounds = bounds.Abs()
	if bounds.IsDegenerate() || bounds.IsNaN() || bounds.IsInf() {
		return Affine{}, fmt.Errorf("fitting %v into viewport: %w", bounds, ErrDegenerateBounds)
	}
	plot := FitAspect(bounds, vp.Plot())
	var scale float64
	if bounds.Width() != 0 {
		scale = plot.Width() / bounds.Width()
	} else {
		scale = plot.Height() / bounds.Height()
	}
	return ScaleTransform(bounds, scale, plot.Origin()), nil
}

// ScaleIntoViewport maps every point of every set into vp with the single
// transform computed by [FitTransform] for bounds. The relative geometry of
// the sets is preserved. The result has the shape of sets.
func ScaleIntoViewport(sets [][]Point, bounds Rect, vp Viewport) ([][]Point, error) {
	aff, err := FitTransform(bounds, vp)
	if err != nil {
		return nil, err
	}
	return TransformPoints(sets, aff), nil
}

// FlipY converts points between mathematical (y-up) and view (y-down)
// orientation of the given height: y' = height − y.
func FlipY(points []Point, height float64) []Point {
	if points == nil {
		return nil
	}
	return TransformPoints([][]Point{points}, Reflect(height))[0]
}
