// Package export writes epicycle animations and single frames to image
// files.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"go.uber.org/atomic"

	"honnef.co/go/epicycles"
	"honnef.co/go/epicycles/render"
)

// ErrNoOutput is returned when there is nothing to write to.
var ErrNoOutput = errors.New("export: no output")

// Stage is a phase of an export.
type Stage int

const (
	StageBounds Stage = iota
	StageFrames
	StageEncoding
)

func (s Stage) String() string {
	switch s {
	case StageBounds:
		return "bounds"
	case StageFrames:
		return "frames"
	case StageEncoding:
		return "encoding"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Progress reports how far an export has come. Fraction is the completed
// part of the current stage, in [0, 1]. Frame counts the frames done in the
// stage.
type Progress struct {
	Stage    Stage
	Fraction float64
	Frame    int
}

// ProgressFunc receives progress reports. It is called on the goroutine
// doing the export and must not block.
type ProgressFunc func(Progress)

// Outcome is how an export ended.
type Outcome int

const (
	Completed Outcome = iota
	Cancelled
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of an export. Err is set for Failed exports only.
type Result struct {
	Outcome Outcome
	Err     error
	// Frames is the number of frames rendered.
	Frames int
	// TooFewPoints reports that the requested curve had too few points
	// and epicycles.DefaultCurve was animated instead.
	TooFewPoints bool
}

// GIFOptions describes an animation.
type GIFOptions struct {
	// Request is the frame every animation frame is derived from. Its T
	// and Bounds are ignored.
	Request epicycles.FrameRequest
	Style   render.Style
	// Frames is the number of frames. Values below 1 select
	// DefaultFrames.
	Frames int
	// Duration is the length of one loop of the animation. Values below
	// one hundredth of a second select DefaultDuration.
	Duration time.Duration
	// Scale magnifies the viewport to get the image size. Zero means 1.
	Scale float64
	// Supersample draws frames at this multiple of their size and
	// resizes them down. Values below 2 disable supersampling.
	Supersample int
}

const (
	DefaultFrames   = 60
	DefaultDuration = 3 * time.Second
)

func (opts GIFOptions) normalize() GIFOptions {
	if opts.Frames < 1 {
		opts.Frames = DefaultFrames
	}
	if opts.Duration < 10*time.Millisecond {
		opts.Duration = DefaultDuration
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return opts
}

// FrameTime returns the time of frame i of an animation with count frames.
// The times advance by 2π/count and start at 0.
func FrameTime(i, count int) float64 {
	return float64(i) * 2 * math.Pi / float64(count)
}

// Generator renders animations. Its coefficients are cached across frames
// and across animations of the same curve.
//
// A Generator can be cancelled from any goroutine. Once cancelled it stays
// cancelled.
type Generator struct {
	logger     l.Wrapper
	engine     *epicycles.Engine
	cancelled  atomic.Bool
	routineMan routineman.RoutineMan
}

// NewGenerator returns a generator using engine, or a new engine if engine
// is nil.
func NewGenerator(engine *epicycles.Engine, logger l.Wrapper) *Generator {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	logger = logger.WithFields(l.StringField(l.ClsKey, "Generator"))

	if engine == nil {
		engine = epicycles.NewEngine(0)
	}

	return &Generator{
		logger:     logger,
		engine:     engine,
		routineMan: routineman.NewRoutineMan(context.Background(), logger),
	}
}

// Cancel stops running and future exports at the next frame.
func (g *Generator) Cancel() {
	g.cancelled.Store(true)
}

func (g *Generator) stopped(ctx context.Context) bool {
	return g.cancelled.Load() || ctx.Err() != nil
}

// EstimateBounds returns the union of the bounding boxes of frames+1 frames
// evenly spread over one loop, inflated by inflate on every side. Frames
// built with these bounds all share one frame of reference.
func (g *Generator) EstimateBounds(ctx context.Context, req epicycles.FrameRequest, frames int, inflate float64, progress ProgressFunc) (epicycles.Rect, error) {
	frames = max(frames, 1)
	req.Bounds = nil
	var rects []epicycles.Rect
	for i := 0; i <= frames; i++ {
		if g.stopped(ctx) {
			return epicycles.Rect{}, context.Canceled
		}
		req.T = FrameTime(i, frames)
		f, err := g.engine.BuildFrame(req)
		if err != nil {
			return epicycles.Rect{}, err
		}
		if r, ok := f.BoundingBox(); ok {
			rects = append(rects, r)
		}
		if progress != nil {
			progress(Progress{Stage: StageBounds, Fraction: float64(i+1) / float64(frames+1), Frame: i + 1})
		}
	}
	bounds, ok := epicycles.UnionRects(rects)
	if !ok {
		return epicycles.Rect{}, fmt.Errorf("estimating bounds: %w", epicycles.ErrDegenerateBounds)
	}
	return bounds.Inflate(inflate, inflate), nil
}

// EstimateBounds is like [Generator.EstimateBounds] with a fresh generator.
func EstimateBounds(ctx context.Context, req epicycles.FrameRequest, frames int, inflate float64, progress ProgressFunc) (epicycles.Rect, error) {
	return NewGenerator(nil, nil).EstimateBounds(ctx, req, frames, inflate, progress)
}

// GIF renders an animated GIF that loops forever. It stops between frames
// when ctx is done or the generator is cancelled, writing nothing.
func (g *Generator) GIF(ctx context.Context, w io.Writer, opts GIFOptions, progress ProgressFunc) Result {
	if w == nil {
		return Result{Outcome: Failed, Err: ErrNoOutput}
	}
	opts = opts.normalize()
	if progress == nil {
		progress = func(Progress) {}
	}
	logger := g.logger.WithFields(l.IntField("frames", opts.Frames))
	logger.Debug("estimating bounds")

	bounds, err := g.EstimateBounds(ctx, opts.Request, opts.Frames, opts.Style.MaxWidth()/2, progress)
	if errors.Is(err, context.Canceled) || g.stopped(ctx) {
		logger.Debug("cancelled while estimating bounds")
		return Result{Outcome: Cancelled}
	}
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Error("estimating bounds failed")
		return Result{Outcome: Failed, Err: err}
	}

	terms := termsOf(opts.Request.Source)
	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, opts.Frames),
		Delay: make([]int, 0, opts.Frames),
	}
	delay := max(int(math.Round(opts.Duration.Seconds()*100/float64(opts.Frames))), 1)
	req := opts.Request
	req.Bounds = &bounds
	var tooFew bool
	for i := range opts.Frames {
		if g.stopped(ctx) {
			logger.WithFields(l.IntField("frame", i)).Debug("cancelled")
			return Result{Outcome: Cancelled, Frames: i, TooFewPoints: tooFew}
		}
		req.T = FrameTime(i, opts.Frames)
		f, err := g.engine.BuildFrame(req)
		if err != nil {
			logger.WithFields(l.ErrorField(err), l.IntField("frame", i)).Error("building frame failed")
			return Result{Outcome: Failed, Err: err, Frames: i, TooFewPoints: tooFew}
		}
		if f.TooFewPoints && !tooFew {
			tooFew = true
			logger.Debug("too few points, animating the default curve")
		}
		img := render.Supersampled(f, opts.Style, opts.Scale, opts.Supersample, terms)
		anim.Image = append(anim.Image, render.Paletted(img))
		anim.Delay = append(anim.Delay, delay)
		progress(Progress{Stage: StageFrames, Fraction: float64(i+1) / float64(opts.Frames), Frame: i + 1})
	}
	if g.stopped(ctx) {
		return Result{Outcome: Cancelled, Frames: opts.Frames, TooFewPoints: tooFew}
	}

	progress(Progress{Stage: StageEncoding})
	if err := gif.EncodeAll(w, anim); err != nil {
		logger.WithFields(l.ErrorField(err)).Error("encoding failed")
		return Result{Outcome: Failed, Err: fmt.Errorf("encoding GIF: %w", err), Frames: opts.Frames, TooFewPoints: tooFew}
	}
	progress(Progress{Stage: StageEncoding, Fraction: 1, Frame: opts.Frames})
	logger.Debug("done")
	return Result{Outcome: Completed, Frames: opts.Frames, TooFewPoints: tooFew}
}

// Start runs [Generator.GIF] in the background and passes its result to
// done. Progress is reported on the background goroutine. [Generator.Stop]
// cancels the export and waits for it.
func (g *Generator) Start(w io.Writer, opts GIFOptions, progress ProgressFunc, done func(Result)) {
	g.routineMan.StartRoutine(func(ctx context.Context, _ func() bool) {
		r := g.GIF(ctx, w, opts, progress)
		if done != nil {
			done(r)
		}
	}, "gifRoutine")
}

// Stop cancels background exports and waits for them to return.
func (g *Generator) Stop() {
	g.routineMan.TriggerStop()
	g.routineMan.Wait()
}

// PNG draws the frame described by req at scale and writes it as a PNG
// image. Frames are drawn at 4 times their size and resized down.
//
// If the requested curve has too few points, epicycles.DefaultCurve is
// drawn and written, and the returned error wraps epicycles.ErrTooFewPoints.
func PNG(w io.Writer, req epicycles.FrameRequest, style render.Style, scale float64) error {
	if w == nil {
		return ErrNoOutput
	}
	if scale <= 0 {
		scale = 1
	}
	f, err := epicycles.BuildFrame(req)
	if err != nil {
		return err
	}
	img := render.Supersampled(f, style, scale, pngSupersample, termsOf(req.Source))
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if f.TooFewPoints {
		return fmt.Errorf("drew %s: %w", epicycles.DefaultCurve.Name, epicycles.ErrTooFewPoints)
	}
	return nil
}

const pngSupersample = 4

// termsOf returns the terms of a term series, which color the circles they
// trace.
func termsOf(src epicycles.CurveSource) epicycles.Terms {
	if ts, ok := src.(epicycles.TermSeries); ok {
		return ts.Terms
	}
	return nil
}
