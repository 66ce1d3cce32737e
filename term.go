package epicycles

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/sgostarter/i/commerr"
	"github.com/spf13/cast"
)

// BluePink is the color of newly created terms.
var BluePink = color.RGBA{R: 230, G: 160, B: 200, A: 255}

// Term is a single coefficient of a Fourier series in polar form,
// A_n = Amplitude·e^(i·Phase), contributing A_n·e^(int) to the curve.
type Term struct {
	Amplitude float64
	Phase     float64
	Frequency int
	// Color is the color of the term's circle.
	Color color.RGBA
}

// NewTerm returns the term with the given frequency, amplitude 0.5, phase
// 0, and the default color.
func NewTerm(frequency int) Term {
	return Term{Amplitude: 0.5, Frequency: frequency, Color: BluePink}
}

// Coefficient returns A_n.
func (t Term) Coefficient() complex128 {
	return complex(t.Amplitude, 0) * UnitExp(t.Phase, 1)
}

func (t Term) String() string {
	return fmt.Sprintf("%g·e^(i·%g)·e^(i·%d·t)", t.Amplitude, t.Phase, t.Frequency)
}

// normalize clamps the amplitude to [−1, 1] and wraps the phase into
// [0, 2π).
func (t Term) normalize() Term {
	t.Amplitude = min(max(t.Amplitude, -1), 1)
	t.Phase = math.Mod(t.Phase, 2*math.Pi)
	if t.Phase < 0 {
		t.Phase += 2 * math.Pi
	}
	return t
}

// Terms is a sparse Fourier series. Frequencies are unique, non-zero and in
// [MinFrequency, MaxFrequency]. An empty series describes no curve.
type Terms []Term

// Add appends t after normalizing its amplitude and phase. It rejects a zero
// frequency, a frequency out of range, and a frequency already present.
func (ts *Terms) Add(t Term) error {
	switch {
	case t.Frequency == 0:
		return fmt.Errorf("frequency 0 is the constant term: %w", commerr.ErrInvalidArgument)
	case t.Frequency < MinFrequency || t.Frequency > MaxFrequency:
		return fmt.Errorf("frequency %d outside [%d, %d]: %w", t.Frequency, MinFrequency, MaxFrequency, commerr.ErrOutOfRange)
	case ts.Has(t.Frequency):
		return fmt.Errorf("frequency %d: %w", t.Frequency, commerr.ErrAlreadyExists)
	}
	*ts = append(*ts, t.normalize())
	return nil
}

// Remove deletes the term with frequency n. It reports whether there was
// one.
func (ts *Terms) Remove(n int) bool {
	i := slices.IndexFunc(*ts, func(t Term) bool { return t.Frequency == n })
	if i < 0 {
		return false
	}
	*ts = slices.Delete(*ts, i, i+1)
	return true
}

// Has reports whether a term has frequency n.
func (ts Terms) Has(n int) bool {
	return slices.ContainsFunc(ts, func(t Term) bool { return t.Frequency == n })
}

// AvailableFrequencies returns the frequencies that can still be added, in
// increasing order.
func (ts Terms) AvailableFrequencies() []int {
	var out []int
	for n := MinFrequency; n <= MaxFrequency; n++ {
		if n != 0 && !ts.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// HighestFrequency returns the largest absolute frequency of the terms, 0
// for none.
func (ts Terms) HighestFrequency() int {
	var n int
	for _, t := range ts {
		n = max(n, abs(t.Frequency))
	}
	return n
}

// Coefficients returns the dense coefficient vector of the series up to its
// highest frequency. An empty series yields the single zero coefficient A_0.
func (ts Terms) Coefficients() Coefficients {
	N := ts.HighestFrequency()
	out := make(Coefficients, 2*N+1)
	for _, t := range ts {
		out[t.Frequency+N] += t.Coefficient()
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ParseTerm parses a term written as amplitude:phase:frequency, optionally
// followed by :#rrggbb. For example, "1:0:3" and "0.5:1.57:-2:#ff0000".
// The term is not validated, see [Terms.Add].
func ParseTerm(s string) (Term, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 && len(fields) != 4 {
		return Term{}, fmt.Errorf("term %q: want amplitude:phase:frequency[:#rrggbb]: %w", s, commerr.ErrInvalidArgument)
	}
	amp, err := cast.ToFloat64E(strings.TrimSpace(fields[0]))
	if err != nil {
		return Term{}, fmt.Errorf("term %q: amplitude: %w", s, err)
	}
	phase, err := cast.ToFloat64E(strings.TrimSpace(fields[1]))
	if err != nil {
		return Term{}, fmt.Errorf("term %q: phase: %w", s, err)
	}
	freq, err := cast.ToIntE(strings.TrimSpace(fields[2]))
	if err != nil {
		return Term{}, fmt.Errorf("term %q: frequency: %w", s, err)
	}
	t := NewTerm(freq)
	t.Amplitude = amp
	t.Phase = phase
	if len(fields) == 4 {
		c, err := ParseHexColor(fields[3])
		if err != nil {
			return Term{}, fmt.Errorf("term %q: %w", s, err)
		}
		t.Color = c
	}
	return t, nil
}

// ParseHexColor parses the straight color #rrggbb or #rrggbbaa, the leading
// # being optional, and returns it premultiplied.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, commerr.ErrInvalidArgument)
	}
	if len(s) == 6 {
		s += "ff"
	}
	var c [4]uint8
	for i := range c {
		v, err := cast.ToUint8E("0x" + s[2*i:2*i+2])
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		c[i] = v
	}
	return color.RGBAModel.Convert(color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}).(color.RGBA), nil
}
