package render

import (
	"fmt"
	"image/color"
	"io"

	"honnef.co/go/epicycles"
)

// svgPrecision is the number of decimals of coordinates in SVG output.
const svgPrecision = 3

// WriteSVG writes f as a standalone SVG document the size of its viewport.
// It draws what [Frame] draws, without the caption.
func WriteSVG(w io.Writer, f epicycles.Frame, style Style, terms epicycles.Terms) error {
	var err error
	printf := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}
	path := func(p epicycles.BezPath, st Stroke, cap string) {
		if err != nil || len(p) == 0 || st.Width <= 0 || st.Color.A == 0 {
			return
		}
		printf(`<path fill="none" stroke="%s" stroke-opacity="%.3g" stroke-width="%g" stroke-linecap="%s" stroke-linejoin="round" d="`,
			hexColor(st.Color), float64(st.Color.A)/255, st.Width, cap)
		if err != nil {
			return
		}
		err = p.WriteSVG(w, epicycles.SVGOptions{MaxPrecision: svgPrecision})
		printf("\"/>\n")
	}

	sz := f.Viewport.Size
	printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		sz.Width, sz.Height, sz.Width, sz.Height)
	if style.Background.A != 0 {
		printf(`<rect width="100%%" height="100%%" fill="%s" fill-opacity="%.3g"/>`+"\n",
			hexColor(style.Background), float64(style.Background.A)/255)
	}
	for a, p := range f.Paths() {
		if !style.Shows(a) {
			continue
		}
		st := style.Stroke(a)
		switch {
		case a == epicycles.ArtifactSeries && style.TrailLength > 0:
			n := len(f.Series)
			for j := 0; j+1 < n; j++ {
				alpha := epicycles.TrailAlpha(j, f.T, n, style.TrailLength)
				seg := epicycles.Polyline(f.Series[j:j+2], false)
				path(seg, Stroke{Color: fade(st.Color, alpha), Width: st.Width}, "butt")
			}
		case a == epicycles.ArtifactCircles && len(terms) > 0:
			for _, t := range terms {
				k, ok := epicycles.CircleIndex(t.Frequency, f.N())
				if !ok || k >= len(f.Circles) {
					continue
				}
				path(f.Circles[k].Path(circleTolerance), Stroke{Color: t.Color, Width: st.Width}, "round")
			}
		default:
			path(p, st, "round")
		}
	}
	printf("</svg>\n")
	return err
}

// hexColor formats the straight (non-premultiplied) color of c as #rrggbb.
func hexColor(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
