// Package render draws epicycle frames as raster images and SVG documents.
package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"honnef.co/go/epicycles"
)

// circleTolerance is the accuracy of circle paths, in view units.
const circleTolerance = 0.1

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// ImageSize returns the size in pixels of a frame drawn at scale.
func ImageSize(f epicycles.Frame, scale float64) image.Point {
	sz := f.Viewport.Size.Scale(scale).Ceil()
	return image.Pt(int(sz.Width), int(sz.Height))
}

// Frame draws f in the order curve, series, radii, circles, terminator. The
// image is the frame's viewport magnified by scale; stroke widths are
// magnified too.
//
// If terms is not empty, only the circles of the terms' frequencies are
// drawn, each in its term's color.
func Frame(f epicycles.Frame, style Style, scale float64, terms epicycles.Terms) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	size := ImageSize(f, scale)
	img := image.NewRGBA(image.Rectangle{Max: size})
	dc := gg.NewContextForRGBA(img)
	dc.SetColor(style.Background)
	dc.Clear()
	dc.SetLineJoin(gg.LineJoinRound)

	aff := epicycles.Scale(scale, scale)
	for a, p := range f.Paths() {
		if !style.Shows(a) {
			continue
		}
		st := style.Stroke(a)
		st.Width *= scale
		switch {
		case a == epicycles.ArtifactSeries && style.TrailLength > 0:
			strokeTrail(dc, f, st, style.TrailLength, aff)
		case a == epicycles.ArtifactCircles && len(terms) > 0:
			for _, t := range terms {
				k, ok := epicycles.CircleIndex(t.Frequency, f.N())
				if !ok || k >= len(f.Circles) {
					continue
				}
				c := f.Circles[k]
				strokePath(dc, c.Path(circleTolerance).Transform(aff), Stroke{Color: t.Color, Width: st.Width}, gg.LineCapRound)
			}
		default:
			strokePath(dc, p.Transform(aff), st, gg.LineCapRound)
		}
	}

	if style.Caption != "" {
		if err := drawCaption(dc, style, scale, f.Viewport.Inset*scale); err != nil {
			// The font is embedded; failing to parse it is a bug.
			panic(err)
		}
	}
	return img
}

func strokePath(dc *gg.Context, p epicycles.BezPath, st Stroke, cap gg.LineCap) {
	if len(p) == 0 || st.Width <= 0 || st.Color.A == 0 {
		return
	}
	for el := range p.Elements() {
		switch el.Kind {
		case epicycles.MoveToKind:
			dc.MoveTo(el.P0.X, el.P0.Y)
		case epicycles.LineToKind:
			dc.LineTo(el.P0.X, el.P0.Y)
		case epicycles.CubicToKind:
			dc.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case epicycles.ClosePathKind:
			dc.ClosePath()
		}
	}
	dc.SetColor(st.Color)
	dc.SetLineWidth(st.Width)
	dc.SetLineCap(cap)
	dc.Stroke()
}

// strokeTrail draws the series one segment at a time, fading out behind the
// chain's tip.
func strokeTrail(dc *gg.Context, f epicycles.Frame, st Stroke, trail float64, aff epicycles.Affine) {
	n := len(f.Series)
	for j := 0; j+1 < n; j++ {
		alpha := epicycles.TrailAlpha(j, f.T, n, trail)
		seg := epicycles.BezPath{
			epicycles.MoveTo(f.Series[j].Transform(aff)),
			epicycles.LineTo(f.Series[j+1].Transform(aff)),
		}
		strokePath(dc, seg, Stroke{Color: fade(st.Color, alpha), Width: st.Width}, gg.LineCapButt)
	}
}

func drawCaption(dc *gg.Context, style Style, scale, inset float64) error {
	fnt, err := monoFont()
	if err != nil {
		return fmt.Errorf("parsing caption font: %w", err)
	}
	size := style.CaptionSize
	if size <= 0 {
		size = 12
	}
	face := truetype.NewFace(fnt, &truetype.Options{
		Size:    size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(style.CaptionColor)
	dc.DrawString(style.Caption, inset, float64(dc.Height())-inset)
	return nil
}

// Resize scales img to size with Catmull-Rom interpolation. Drawing at a
// multiple of the wanted size and resizing down gives smoother lines than
// drawing at the wanted size.
func Resize(img image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Paletted converts img to a paletted image suitable for a GIF frame,
// dithering with Floyd-Steinberg error diffusion.
func Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

// Supersampled draws f like [Frame], at factor times the wanted scale, and
// resizes the result down.
func Supersampled(f epicycles.Frame, style Style, scale float64, factor int, terms epicycles.Terms) *image.RGBA {
	if factor <= 1 {
		return Frame(f, style, scale, terms)
	}
	large := Frame(f, style, scale*float64(factor), terms)
	return Resize(large, ImageSize(f, scale))
}
