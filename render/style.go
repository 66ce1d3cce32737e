package render

import (
	"image/color"

	"honnef.co/go/epicycles"
)

// Stroke is the pen an artifact is drawn with. Width is in view units.
type Stroke struct {
	Color color.RGBA
	Width float64
}

// Show selects the artifacts that get drawn.
type Show struct {
	Function   bool
	Series     bool
	Radii      bool
	Circles    bool
	Terminator bool
}

// Style describes how a frame is drawn.
type Style struct {
	Curve      Stroke
	Series     Stroke
	Radii      Stroke
	Circles    Stroke
	Terminator Stroke

	Background color.RGBA
	// TrailLength fades the series behind the chain's tip. Zero draws the
	// series solid. See [epicycles.TrailAlpha].
	TrailLength float64
	Show        Show

	// Caption, if not empty, is printed in the bottom left corner.
	Caption      string
	CaptionColor color.RGBA
	CaptionSize  float64
}

var (
	Orange = color.RGBA{R: 255, G: 149, B: 0, A: 255}
	Black  = color.RGBA{A: 255}
	Red    = color.RGBA{R: 255, G: 59, B: 48, A: 255}
	Blue   = color.RGBA{R: 0, G: 122, B: 255, A: 255}
	Green  = color.RGBA{R: 52, G: 199, B: 89, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// DefaultStyle returns the style frames are drawn with unless configured
// otherwise.
func DefaultStyle() Style {
	return Style{
		Curve:        Stroke{Color: Orange, Width: 3},
		Series:       Stroke{Color: Black, Width: 1},
		Radii:        Stroke{Color: Red, Width: 1},
		Circles:      Stroke{Color: Blue, Width: 1},
		Terminator:   Stroke{Color: Green, Width: 1},
		Background:   White,
		Show:         Show{Function: true, Series: true, Radii: true, Circles: true, Terminator: true},
		CaptionColor: Black,
		CaptionSize:  12,
	}
}

// Stroke returns the stroke of an artifact.
func (s Style) Stroke(a epicycles.Artifact) Stroke {
	switch a {
	case epicycles.ArtifactCurve:
		return s.Curve
	case epicycles.ArtifactSeries:
		return s.Series
	case epicycles.ArtifactRadii:
		return s.Radii
	case epicycles.ArtifactCircles:
		return s.Circles
	case epicycles.ArtifactTerminator:
		return s.Terminator
	default:
		return Stroke{}
	}
}

// Shows reports whether an artifact is drawn.
func (s Style) Shows(a epicycles.Artifact) bool {
	switch a {
	case epicycles.ArtifactCurve:
		return s.Show.Function
	case epicycles.ArtifactSeries:
		return s.Show.Series
	case epicycles.ArtifactRadii:
		return s.Show.Radii
	case epicycles.ArtifactCircles:
		return s.Show.Circles
	case epicycles.ArtifactTerminator:
		return s.Show.Terminator
	default:
		return false
	}
}

// MaxWidth returns the widest stroke among the artifacts that are drawn.
func (s Style) MaxWidth() float64 {
	var w float64
	for _, a := range epicycles.Artifacts {
		if s.Shows(a) {
			w = max(w, s.Stroke(a).Width)
		}
	}
	return w
}

// fade scales a premultiplied color's opacity by alpha in [0, 1].
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = min(max(alpha, 0), 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
