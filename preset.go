package epicycles

import (
	"math"
	"strings"
)

// WaveType selects the unit wave function used by [Wavefunction].
type WaveType int

const (
	Sine WaveType = iota
	Square
	SquareFourier
	Triangle
	TriangleFourier
	Sawtooth
	SawtoothFourier
)

// Number of terms of the Fourier-series variants of the wave functions.
const waveFourierTerms = 3

func (typ WaveType) String() string {
	switch typ {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case SquareFourier:
		return "square fourier"
	case Triangle:
		return "triangle"
	case TriangleFourier:
		return "triangle fourier"
	case Sawtooth:
		return "sawtooth"
	case SawtoothFourier:
		return "sawtooth fourier"
	default:
		return "invalid wave type"
	}
}

// unit returns the wave of period 1 for p ∈ [0, 1).
func (typ WaveType) unit(p float64) float64 {
	switch typ {
	case Sine:
		return math.Sin(2 * math.Pi * p)
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		switch {
		case p < 0.25:
			return 4 * p
		case p < 0.75:
			return -4*p + 2
		default:
			return 4*p - 4
		}
	case Sawtooth:
		return p
	case SquareFourier:
		var sum float64
		for i := 1; i <= 2*waveFourierTerms; i += 2 {
			a := float64(i)
			sum += math.Sin(2*a*math.Pi*p) / a
		}
		return 4 / math.Pi * sum
	case TriangleFourier:
		var sum float64
		for i := 1; i <= waveFourierTerms; i += 2 {
			a := float64(i)
			sum += math.Pow(-1, (a-1)/2) / (a * a) * math.Sin(2*a*math.Pi*p)
		}
		return 8 / (math.Pi * math.Pi) * sum
	case SawtoothFourier:
		var sum float64
		for i := 1; i <= waveFourierTerms; i++ {
			sum += math.Sin(float64(i)*2*math.Pi*p) / float64(i)
		}
		return 0.5 - sum/math.Pi
	default:
		return 0
	}
}

// Wavefunction evaluates a periodic wave of the given frequency, amplitude
// and phase offset at t. The phase is reduced with truncated remainder, so
// arguments with negative frequency·t + offset produce a negative phase.
func Wavefunction(t, frequency, amplitude, offset float64, typ WaveType) float64 {
	x := frequency*t + offset
	return amplitude * typ.unit(math.Mod(x, 1))
}

func waveCurve(typ WaveType) Parametric {
	return Parametric{
		Name: typ.String(),
		X:    func(t float64) float64 { return t },
		Y: func(t float64) float64 {
			return Wavefunction(t+math.Pi, 1/math.Pi, math.Pi/2, 0, typ)
		},
	}
}

var presets = []Parametric{
	{
		Name: "astroid",
		X:    func(t float64) float64 { return math.Pow(math.Cos(t), 7) },
		Y:    func(t float64) float64 { return math.Pow(math.Sin(t), 7) },
	},
	{
		Name: "wave",
		X:    func(t float64) float64 { return 9 * t * t },
		Y:    func(t float64) float64 { return 15 * t * math.Cos(4*t) },
	},
	{
		Name: "loop",
		X:    func(t float64) float64 { return t * t * math.Sin(t) * math.Cos(t) },
		Y:    func(t float64) float64 { return t * math.Cos(t/2) },
	},
	{
		Name: "v",
		X:    func(t float64) float64 { return t * t * t },
		Y:    func(t float64) float64 { return 4 * t * t },
	},
	{
		Name: "heart",
		X: func(t float64) float64 {
			s := math.Sin(t)
			return 16 * s * s * s
		},
		Y: func(t float64) float64 {
			return 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		},
	},
	waveCurve(Sine),
	waveCurve(Square),
	waveCurve(Triangle),
	{
		Name: "spiral",
		X:    func(t float64) float64 { return (t + math.Pi) * math.Cos(3*(t+math.Pi)) },
		Y:    func(t float64) float64 { return (t + math.Pi) * math.Sin(3*(t+math.Pi)) },
	},
	DefaultCurve,
}

// DefaultCurve is the unit circle. It stands in for user curves that have
// too few points.
var DefaultCurve = Parametric{
	Name: "circle",
	X:    math.Cos,
	Y:    math.Sin,
}

// Presets returns the built-in parametric curves, the unit circle last.
func Presets() []Parametric {
	out := make([]Parametric, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset returns the built-in curve with the given name, compared case
// insensitively.
func LookupPreset(name string) (Parametric, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Parametric{}, false
}
