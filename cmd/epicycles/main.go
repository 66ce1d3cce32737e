// Command epicycles approximates curves by Fourier series and draws them as
// chains of rotating circles.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"

	"honnef.co/go/epicycles"
	"honnef.co/go/epicycles/config"
	"honnef.co/go/epicycles/document"
	"honnef.co/go/epicycles/export"
	"honnef.co/go/epicycles/render"
)

const usage = `epicycles - Fourier series epicycles

Usage:
  epicycles <command> [options]

Commands:
  frame      Draw one frame as PNG
  svg        Draw one frame as SVG
  gif        Render an animated GIF
  coeffs     Print the Fourier coefficients
  suggest    Print the suggested number of terms
  presets    List the built-in curves
  config     Print the effective configuration as YAML

Curves are chosen with -curve (a preset), -points (a drawing saved as JSON)
or -terms and -term (a series of terms). Without any, the circle is used.

Examples:
  epicycles frame -curve heart -n 12 -o heart.png
  epicycles gif -curve square -frames 90 -duration 5s -o square.gif
  epicycles svg -term 1:0:1 -term 0.3:0:-3:#ff0000 -o series.svg
  epicycles coeffs -points drawing.json -n 5

Use "epicycles <command> -h" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	logger := l.NewConsoleLoggerWrapper()
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "frame":
		err = cmdFrame(args)
	case "svg":
		err = cmdSVG(args)
	case "gif":
		err = cmdGIF(args, logger)
	case "coeffs":
		err = cmdCoeffs(args)
	case "suggest":
		err = cmdSuggest(args)
	case "presets":
		cmdPresets()
	case "config":
		err = cmdConfig(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		logger.WithFields(l.StringField("command", cmd), l.ErrorField(err)).Fatal("failed")
	}
}

// stderr receives warnings and progress.
var stderr io.Writer = os.Stderr

const tooFewPointsWarning = "Too few points, drawing the default curve"

// warnTooFewPoints turns an error that only reports the default curve
// standing in for the requested one into a warning.
func warnTooFewPoints(err error) error {
	if errors.Is(err, epicycles.ErrTooFewPoints) {
		fmt.Fprintln(stderr, tooFewPointsWarning)
		return nil
	}
	return err
}

// termFlags collects repeated -term flags.
type termFlags []string

func (t *termFlags) String() string { return strings.Join(*t, ",") }

func (t *termFlags) Set(s string) error {
	*t = append(*t, s)
	return nil
}

type options struct {
	fs *flag.FlagSet

	curve      string
	points     string
	terms      string
	term       termFlags
	n          int
	samples    int
	t          float64
	size       string
	configPath string
	output     string
}

func newOptions(name string) *options {
	o := &options{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	o.fs.StringVar(&o.curve, "curve", epicycles.DefaultCurve.Name, "preset curve, see the presets command")
	o.fs.StringVar(&o.points, "points", "", "JSON file with a drawn curve")
	o.fs.StringVar(&o.terms, "terms", "", `JSON file with a term series, or "default"`)
	o.fs.Var(&o.term, "term", "term amplitude:phase:frequency[:#rrggbb], repeatable")
	o.fs.IntVar(&o.n, "n", 0, "number of positive frequencies, 0 to suggest")
	o.fs.IntVar(&o.samples, "samples", 0, "number of samples of parametric curves")
	o.fs.Float64Var(&o.t, "t", 0, "time of the frame")
	o.fs.StringVar(&o.size, "size", "", "viewport size WIDTHxHEIGHT")
	o.fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	o.fs.StringVar(&o.output, "o", "", "output file, standard output if empty")
	return o
}

func (o *options) parse(args []string) error {
	return o.fs.Parse(args)
}

func (o *options) isSet(name string) bool {
	var set bool
	o.fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// config loads the configuration and applies the flags on top of it.
func (o *options) config() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if o.isSet("n") {
		cfg.Terms = o.n
	}
	if o.isSet("samples") {
		cfg.SampleCount = o.samples
	}
	if o.size != "" {
		w, h, err := parseSize(o.size)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Viewport.Width, cfg.Viewport.Height = w, h
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := cast.ToFloat64E(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := cast.ToFloat64E(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	return w, h, nil
}

// source returns the curve selected by the flags.
func (o *options) source() (epicycles.CurveSource, error) {
	switch {
	case o.points != "":
		pts, err := document.NewStore("", nil).LoadPoints(o.points)
		if err != nil {
			return nil, err
		}
		return document.Drawing(pts), nil
	case o.terms != "" || len(o.term) > 0:
		var terms epicycles.Terms
		switch o.terms {
		case "":
		case "default":
			terms = document.DefaultTerms()
		default:
			var err error
			if terms, err = document.LoadTerms(o.terms); err != nil {
				return nil, err
			}
		}
		for _, s := range o.term {
			t, err := epicycles.ParseTerm(s)
			if err != nil {
				return nil, err
			}
			if err := terms.Add(t); err != nil {
				return nil, fmt.Errorf("term %q: %w", s, err)
			}
		}
		return epicycles.TermSeries{Terms: terms}, nil
	default:
		p, ok := epicycles.LookupPreset(o.curve)
		if !ok {
			return nil, fmt.Errorf("unknown curve %q, see the presets command", o.curve)
		}
		return p, nil
	}
}

// create opens the output file, or standard output.
func (o *options) create() (io.WriteCloser, error) {
	if o.output == "" || o.output == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(o.output)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func (o *options) setup(args []string) (config.Config, epicycles.CurveSource, error) {
	if err := o.parse(args); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := o.config()
	if err != nil {
		return config.Config{}, nil, err
	}
	src, err := o.source()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, src, nil
}

func cmdFrame(args []string) error {
	o := newOptions("frame")
	cfg, src, err := o.setup(args)
	if err != nil {
		return err
	}
	style, err := cfg.RenderStyle()
	if err != nil {
		return err
	}
	w, err := o.create()
	if err != nil {
		return err
	}
	err = warnTooFewPoints(export.PNG(w, cfg.FrameRequest(src, o.t), style, cfg.Export.Scale))
	return errors.Join(err, w.Close())
}

func cmdSVG(args []string) error {
	o := newOptions("svg")
	cfg, src, err := o.setup(args)
	if err != nil {
		return err
	}
	style, err := cfg.RenderStyle()
	if err != nil {
		return err
	}
	f, err := epicycles.BuildFrame(cfg.FrameRequest(src, o.t))
	if err != nil {
		return err
	}
	if f.TooFewPoints {
		fmt.Fprintln(stderr, tooFewPointsWarning)
	}
	var terms epicycles.Terms
	if ts, ok := src.(epicycles.TermSeries); ok {
		terms = ts.Terms
	}
	w, err := o.create()
	if err != nil {
		return err
	}
	err = render.WriteSVG(w, f, style, terms)
	return errors.Join(err, w.Close())
}

func cmdGIF(args []string, logger l.Wrapper) error {
	o := newOptions("gif")
	frames := o.fs.Int("frames", 0, "number of frames, 0 for the configured number")
	duration := o.fs.Duration("duration", 0, "length of one loop, 0 for the configured length")
	cfg, src, err := o.setup(args)
	if err != nil {
		return err
	}
	if *frames > 0 {
		cfg.Export.Frames = *frames
	}
	if *duration > 0 {
		cfg.Export.Duration = *duration
	}
	opts, err := cfg.GIFOptions(src)
	if err != nil {
		return err
	}
	if o.output == "" {
		o.output = "epicycles.gif"
	}
	w, err := o.create()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	var last int
	g := export.NewGenerator(nil, logger)
	r := g.GIF(ctx, w, opts, func(p export.Progress) {
		if p.Stage != export.StageFrames {
			return
		}
		if pct := int(p.Fraction * 100); pct >= last+10 || pct == 100 {
			last = pct
			fmt.Fprintf(stderr, "\r%3d%% (%d/%d frames)", pct, p.Frame, opts.Frames)
		}
	})
	fmt.Fprintln(stderr)
	closeErr := w.Close()
	if r.TooFewPoints {
		fmt.Fprintln(stderr, tooFewPointsWarning)
	}

	switch r.Outcome {
	case export.Completed:
		fmt.Printf("Written: %s (%d frames in %s)\n", o.output, r.Frames, time.Since(start).Round(time.Millisecond))
		return closeErr
	case export.Cancelled:
		_ = os.Remove(o.output)
		fmt.Fprintln(stderr, "Cancelled")
		return nil
	default:
		_ = os.Remove(o.output)
		return r.Err
	}
}

func cmdCoeffs(args []string) error {
	o := newOptions("coeffs")
	cfg, src, err := o.setup(args)
	if err != nil {
		return err
	}
	N := cfg.N()
	if N < 1 {
		N = epicycles.SuggestTerms(src, cfg.SampleCount)
	}
	c, err := epicycles.NewEngine(0).Coefficients(N, src, cfg.SampleCount)
	if err := warnTooFewPoints(err); err != nil {
		return err
	}
	w, err := o.create()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%4s  %12s  %12s  %12s\n", "n", "re", "im", "|A_n|")
	for n := -N; n <= N; n++ {
		a := c.At(n)
		fmt.Fprintf(w, "%4d  %12.6f  %12.6f  %12.6f\n", n, real(a), imag(a), cmplx.Abs(a))
	}
	return w.Close()
}

func cmdSuggest(args []string) error {
	o := newOptions("suggest")
	cfg, src, err := o.setup(args)
	if err != nil {
		return err
	}
	fmt.Println(epicycles.SuggestTerms(src, cfg.SampleCount))
	return nil
}

func cmdPresets() {
	for _, p := range epicycles.Presets() {
		fmt.Println(p.Name)
	}
}

func cmdConfig(args []string) error {
	o := newOptions("config")
	if err := o.parse(args); err != nil {
		return err
	}
	cfg, err := o.config()
	if err != nil {
		return err
	}
	return cfg.Write(os.Stdout)
}
