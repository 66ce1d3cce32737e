// Package config holds the settings of the epicycles command, read from
// YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/sgostarter/i/commerr"
	"gopkg.in/yaml.v3"

	"honnef.co/go/epicycles"
	"honnef.co/go/epicycles/export"
	"honnef.co/go/epicycles/render"
)

type Config struct {
	SampleCount int `yaml:"sampleCount"`
	// Terms is the number of positive frequencies. Zero picks a number
	// that suits the curve.
	Terms    int            `yaml:"terms"`
	Viewport ViewportConfig `yaml:"viewport"`
	Style    StyleConfig    `yaml:"style"`
	Export   ExportConfig   `yaml:"export"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Inset  float64 `yaml:"inset"`
}

// StrokeConfig is a stroke with its color written as #rrggbb or #rrggbbaa.
type StrokeConfig struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
}

type ShowConfig struct {
	Function   bool `yaml:"function"`
	Series     bool `yaml:"series"`
	Radii      bool `yaml:"radii"`
	Circles    bool `yaml:"circles"`
	Terminator bool `yaml:"terminator"`
}

type StyleConfig struct {
	Curve       StrokeConfig `yaml:"curve"`
	Series      StrokeConfig `yaml:"series"`
	Radii       StrokeConfig `yaml:"radii"`
	Circles     StrokeConfig `yaml:"circles"`
	Terminator  StrokeConfig `yaml:"terminator"`
	Background  string       `yaml:"background"`
	TrailLength float64      `yaml:"trailLength"`
	Show        ShowConfig   `yaml:"show"`
	Caption     string       `yaml:"caption"`
}

type ExportConfig struct {
	Frames      int           `yaml:"frames"`
	Duration    time.Duration `yaml:"duration"`
	Scale       float64       `yaml:"scale"`
	Supersample int           `yaml:"supersample"`
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func strokeConfig(s render.Stroke) StrokeConfig {
	return StrokeConfig{Color: hex(s.Color), Width: s.Width}
}

// Default returns the configuration used when none is given.
func Default() Config {
	style := render.DefaultStyle()
	return Config{
		SampleCount: epicycles.DefaultSampleCount,
		Terms:       0,
		Viewport: ViewportConfig{
			Width:  500,
			Height: 500,
			Inset:  epicycles.PathsPadding,
		},
		Style: StyleConfig{
			Curve:       strokeConfig(style.Curve),
			Series:      strokeConfig(style.Series),
			Radii:       strokeConfig(style.Radii),
			Circles:     strokeConfig(style.Circles),
			Terminator:  strokeConfig(style.Terminator),
			Background:  hex(style.Background),
			TrailLength: style.TrailLength,
			Show: ShowConfig{
				Function:   style.Show.Function,
				Series:     style.Show.Series,
				Radii:      style.Show.Radii,
				Circles:    style.Show.Circles,
				Terminator: style.Show.Terminator,
			},
		},
		Export: ExportConfig{
			Frames:      export.DefaultFrames,
			Duration:    export.DefaultDuration,
			Scale:       1,
			Supersample: 1,
		},
	}
}

// Load reads the YAML file at path on top of the defaults and validates the
// result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Read(f)
}

// Read is like [Load], reading from r.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func (cfg Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// Validate clamps the number of terms to [0, MaxTerms] and rejects settings
// that can't produce a frame.
func (cfg *Config) Validate() error {
	cfg.Terms = min(max(cfg.Terms, 0), epicycles.MaxTerms)
	if cfg.SampleCount < 3 {
		return fmt.Errorf("sample count %d, need at least 3: %w", cfg.SampleCount, commerr.ErrInvalidArgument)
	}
	if err := cfg.ViewportSpec().Validate(); err != nil {
		return err
	}
	if cfg.Export.Frames < 1 {
		return fmt.Errorf("%d frames: %w", cfg.Export.Frames, commerr.ErrInvalidArgument)
	}
	if cfg.Export.Scale <= 0 {
		return fmt.Errorf("scale %g: %w", cfg.Export.Scale, commerr.ErrInvalidArgument)
	}
	if _, err := cfg.RenderStyle(); err != nil {
		return err
	}
	return nil
}

// N returns the number of terms to request; see [epicycles.FrameRequest].
func (cfg Config) N() int {
	return cfg.Terms
}

// ViewportSpec returns the configured viewport.
func (cfg Config) ViewportSpec() epicycles.Viewport {
	return epicycles.Viewport{
		Size:  epicycles.Sz(cfg.Viewport.Width, cfg.Viewport.Height),
		Inset: cfg.Viewport.Inset,
	}
}

func (s StrokeConfig) stroke(name string) (render.Stroke, error) {
	c, err := epicycles.ParseHexColor(s.Color)
	if err != nil {
		return render.Stroke{}, fmt.Errorf("%s color: %w", name, err)
	}
	if s.Width < 0 {
		return render.Stroke{}, fmt.Errorf("%s width %g: %w", name, s.Width, commerr.ErrOutOfRange)
	}
	return render.Stroke{Color: c, Width: s.Width}, nil
}

// RenderStyle converts the style settings.
func (cfg Config) RenderStyle() (render.Style, error) {
	s := render.DefaultStyle()
	var err error
	for _, st := range []struct {
		name string
		cfg  StrokeConfig
		dst  *render.Stroke
	}{
		{"curve", cfg.Style.Curve, &s.Curve},
		{"series", cfg.Style.Series, &s.Series},
		{"radii", cfg.Style.Radii, &s.Radii},
		{"circles", cfg.Style.Circles, &s.Circles},
		{"terminator", cfg.Style.Terminator, &s.Terminator},
	} {
		if *st.dst, err = st.cfg.stroke(st.name); err != nil {
			return render.Style{}, err
		}
	}
	if s.Background, err = epicycles.ParseHexColor(cfg.Style.Background); err != nil {
		return render.Style{}, fmt.Errorf("background: %w", err)
	}
	if cfg.Style.TrailLength < 0 {
		return render.Style{}, fmt.Errorf("trail length %g: %w", cfg.Style.TrailLength, commerr.ErrOutOfRange)
	}
	s.TrailLength = cfg.Style.TrailLength
	s.Show = render.Show(cfg.Style.Show)
	s.Caption = cfg.Style.Caption
	return s, nil
}

// FrameRequest returns the request for the frame of src at time t.
func (cfg Config) FrameRequest(src epicycles.CurveSource, t float64) epicycles.FrameRequest {
	return epicycles.FrameRequest{
		T:           t,
		SampleCount: cfg.SampleCount,
		Viewport:    cfg.ViewportSpec(),
		N:           cfg.N(),
		Source:      src,
	}
}

// GIFOptions returns the options of an animation of src.
func (cfg Config) GIFOptions(src epicycles.CurveSource) (export.GIFOptions, error) {
	style, err := cfg.RenderStyle()
	if err != nil {
		return export.GIFOptions{}, err
	}
	return export.GIFOptions{
		Request:     cfg.FrameRequest(src, 0),
		Style:       style,
		Frames:      cfg.Export.Frames,
		Duration:    cfg.Export.Duration,
		Scale:       cfg.Export.Scale,
		Supersample: cfg.Export.Supersample,
	}, nil
}
