// Package document reads and writes term series and drawings as JSON.
//
// A term series is stored as an array of objects with the keys amplitude,
// phase, frequencyComponent and color. The color is the base64 encoding of
// a JSON object with the keys red, green, blue and opacity, each in [0, 1].
// A drawing is stored as an array of [x, y] pairs in view orientation, y
// pointing down.
package document

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"honnef.co/go/epicycles"
	"honnef.co/go/epicycles/render"
)

// MissingColor is the color of terms stored without a readable color.
var MissingColor = render.Blue

type termJSON struct {
	Amplitude          float64 `json:"amplitude"`
	Phase              float64 `json:"phase"`
	FrequencyComponent int     `json:"frequencyComponent"`
	Color              string  `json:"color,omitempty"`
}

type colorJSON struct {
	Red     float64 `json:"red"`
	Green   float64 `json:"green"`
	Blue    float64 `json:"blue"`
	Opacity float64 `json:"opacity"`
}

// DefaultTerms returns a small series of three terms.
func DefaultTerms() epicycles.Terms {
	return epicycles.Terms{
		{Amplitude: 0.75, Phase: 2.0943951023931953, Frequency: -1, Color: render.Red},
		{Amplitude: 0.55, Phase: 2.792526803190927, Frequency: 2, Color: render.Green},
		{Amplitude: 0.23, Phase: 3.490658503988659, Frequency: 5, Color: render.Blue},
	}
}

// ReadTerms decodes a term series. Terms are validated and normalized like
// [epicycles.Terms.Add]; an invalid term fails the whole series.
func ReadTerms(r io.Reader) (epicycles.Terms, error) {
	var raw []termJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding terms: %w", err)
	}
	terms := make(epicycles.Terms, 0, len(raw))
	for i, t := range raw {
		term := epicycles.Term{
			Amplitude: t.Amplitude,
			Phase:     t.Phase,
			Frequency: t.FrequencyComponent,
			Color:     decodeColor(t.Color),
		}
		if err := terms.Add(term); err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
	}
	return terms, nil
}

// WriteTerms encodes a term series.
func WriteTerms(w io.Writer, terms epicycles.Terms) error {
	raw := make([]termJSON, len(terms))
	for i, t := range terms {
		c, err := encodeColor(t.Color)
		if err != nil {
			return err
		}
		raw[i] = termJSON{
			Amplitude:          t.Amplitude,
			Phase:              t.Phase,
			FrequencyComponent: t.Frequency,
			Color:              c,
		}
	}
	if err := json.NewEncoder(w).Encode(raw); err != nil {
		return fmt.Errorf("encoding terms: %w", err)
	}
	return nil
}

// decodeColor returns MissingColor for anything it can't read.
func decodeColor(s string) color.RGBA {
	if s == "" {
		return MissingColor
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return MissingColor
	}
	var c colorJSON
	if err := json.Unmarshal(b, &c); err != nil {
		return MissingColor
	}
	r, g, bl := colorful.Color{R: c.Red, G: c.Green, B: c.Blue}.Clamped().RGB255()
	a := uint8(math.Round(min(max(c.Opacity, 0), 1) * 255))
	return color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: bl, A: a}).(color.RGBA)
}

func encodeColor(c color.RGBA) (string, error) {
	// An invisible color has no hue; it is stored as transparent black.
	rgb, _ := colorful.MakeColor(c)
	b, err := json.Marshal(colorJSON{
		Red:     rgb.R,
		Green:   rgb.G,
		Blue:    rgb.B,
		Opacity: float64(c.A) / 255,
	})
	if err != nil {
		return "", fmt.Errorf("encoding color: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// ReadPoints decodes a drawing.
func ReadPoints(r io.Reader) ([]epicycles.Point, error) {
	var raw [][2]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding points: %w", err)
	}
	pts := make([]epicycles.Point, len(raw))
	for i, p := range raw {
		pts[i] = epicycles.Pt(p[0], p[1])
	}
	return pts, nil
}

// WritePoints encodes a drawing.
func WritePoints(w io.Writer, points []epicycles.Point) error {
	raw := make([][2]float64, len(points))
	for i, p := range points {
		raw[i] = [2]float64{p.X, p.Y}
	}
	if err := json.NewEncoder(w).Encode(raw); err != nil {
		return fmt.Errorf("encoding points: %w", err)
	}
	return nil
}

// Drawing returns the curve of a drawing read with [ReadPoints], turning it
// into mathematical orientation.
func Drawing(points []epicycles.Point) epicycles.DrawnPoints {
	return epicycles.DrawnPoints{Points: epicycles.FlipY(points, 0)}
}
