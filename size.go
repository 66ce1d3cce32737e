package epicycles

import (
	"fmt"
	"math"
)

// Size is the extent of a viewport or rectangle.
type Size struct {
	Width  float64
	Height float64
}

// Sz returns the size w×h.
func Sz(w, h float64) Size {
	return Size{
		Width:  w,
		Height: h,
	}
}

func (sz Size) String() string {
	return fmt.Sprintf("%g×%g", sz.Width, sz.Height)
}

func (sz Size) AsVec2() Vec2 {
	return Vec2{
		X: sz.Width,
		Y: sz.Height,
	}
}

// AspectRatio returns height / width.
//
// This is the convention used by [Rect.ContainedRectWithAspectRatio].
func (sz Size) AspectRatio() float64 {
	return sz.Height / sz.Width
}

// IsEmpty reports whether either side is zero or negative.
func (sz Size) IsEmpty() bool {
	return !(sz.Width > 0) || !(sz.Height > 0)
}

// Scale multiplies sz by f.
func (sz Size) Scale(f float64) Size {
	return Size{
		Width:  sz.Width * f,
		Height: sz.Height * f,
	}
}

// Ceil returns a new size with width and height rounded up to the nearest integers.
func (sz Size) Ceil() Size {
	return Size{
		Width:  math.Ceil(sz.Width),
		Height: math.Ceil(sz.Height),
	}
}

// IsNaN reports whether at least one of width and height is NaN.
func (sz Size) IsNaN() bool {
	return math.IsNaN(sz.Width) || math.IsNaN(sz.Height)
}
