package export

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/epicycles"
	"honnef.co/go/epicycles/render"
)

func circleRequest() epicycles.FrameRequest {
	return epicycles.FrameRequest{
		SampleCount: 200,
		Viewport:    epicycles.NewViewport(60, 40),
		N:           2,
		Source:      epicycles.Parametric{Name: "circle", X: math.Cos, Y: math.Sin},
	}
}

func gifOptions(frames int) GIFOptions {
	return GIFOptions{
		Request:  circleRequest(),
		Style:    render.DefaultStyle(),
		Frames:   frames,
		Duration: time.Second,
	}
}

func TestGIF(t *testing.T) {
	g := NewGenerator(nil, l.NewNopLoggerWrapper())
	var buf bytes.Buffer
	var stages []Stage
	r := g.GIF(context.Background(), &buf, gifOptions(4), func(p Progress) {
		if len(stages) == 0 || stages[len(stages)-1] != p.Stage {
			stages = append(stages, p.Stage)
		}
	})
	require.Equal(t, Completed, r.Outcome, "%v", r.Err)
	assert.NoError(t, r.Err)
	assert.Equal(t, 4, r.Frames)
	assert.Equal(t, []Stage{StageBounds, StageFrames, StageEncoding}, stages)

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)
	assert.Equal(t, []int{25, 25, 25, 25}, anim.Delay)
	assert.Equal(t, 0, anim.LoopCount)
	assert.Equal(t, image.Rect(0, 0, 60, 40), anim.Image[0].Bounds())
}

func TestGIFScaled(t *testing.T) {
	opts := gifOptions(2)
	opts.Scale = 2
	opts.Supersample = 2
	var buf bytes.Buffer
	r := NewGenerator(nil, nil).GIF(context.Background(), &buf, opts, nil)
	require.Equal(t, Completed, r.Outcome, "%v", r.Err)

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 80), anim.Image[0].Bounds())
}

func TestGIFCancel(t *testing.T) {
	g := NewGenerator(nil, nil)
	var frames []int
	var buf bytes.Buffer
	r := g.GIF(context.Background(), &buf, gifOptions(10), func(p Progress) {
		if p.Stage != StageFrames {
			return
		}
		frames = append(frames, p.Frame)
		if p.Frame == 3 {
			g.Cancel()
		}
	})
	assert.Equal(t, Cancelled, r.Outcome)
	assert.NoError(t, r.Err)
	assert.LessOrEqual(t, len(frames), 3)
	for i := 1; i < len(frames); i++ {
		assert.Greater(t, frames[i], frames[i-1])
	}
	assert.Zero(t, buf.Len())

	// Cancellation sticks.
	r = g.GIF(context.Background(), &buf, gifOptions(2), nil)
	assert.Equal(t, Cancelled, r.Outcome)
}

func TestGIFContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls int
	var buf bytes.Buffer
	r := NewGenerator(nil, nil).GIF(ctx, &buf, gifOptions(5), func(Progress) { calls++ })
	assert.Equal(t, Cancelled, r.Outcome)
	assert.Zero(t, calls)
	assert.Zero(t, buf.Len())
}

func TestGIFNoOutput(t *testing.T) {
	r := NewGenerator(nil, nil).GIF(context.Background(), nil, gifOptions(2), nil)
	assert.Equal(t, Failed, r.Outcome)
	assert.ErrorIs(t, r.Err, ErrNoOutput)
}

func TestGIFFailed(t *testing.T) {
	opts := gifOptions(2)
	opts.Request.Viewport = epicycles.Viewport{}
	var buf bytes.Buffer
	r := NewGenerator(nil, nil).GIF(context.Background(), &buf, opts, nil)
	assert.Equal(t, Failed, r.Outcome)
	assert.Error(t, r.Err)
}

func TestStart(t *testing.T) {
	g := NewGenerator(nil, nil)
	var buf bytes.Buffer
	done := make(chan Result, 1)
	g.Start(&buf, gifOptions(3), nil, func(r Result) { done <- r })

	select {
	case r := <-done:
		assert.Equal(t, Completed, r.Outcome)
	case <-time.After(time.Minute):
		t.Fatal("export did not finish")
	}
	g.Stop()
	assert.NotZero(t, buf.Len())
}

func TestEstimateBounds(t *testing.T) {
	req := circleRequest()
	var progress []Progress
	bounds, err := EstimateBounds(context.Background(), req, 8, 1.5, func(p Progress) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	require.Len(t, progress, 9)
	assert.Equal(t, 1.0, progress[8].Fraction)

	for i := 0; i <= 8; i++ {
		req.T = FrameTime(i, 8)
		f, err := epicycles.BuildFrame(req)
		require.NoError(t, err)
		r, ok := f.BoundingBox()
		require.True(t, ok)
		assert.LessOrEqual(t, bounds.X0, r.X0-1.5+1e-9)
		assert.LessOrEqual(t, bounds.Y0, r.Y0-1.5+1e-9)
		assert.GreaterOrEqual(t, bounds.X1, r.X1+1.5-1e-9)
		assert.GreaterOrEqual(t, bounds.Y1, r.Y1+1.5-1e-9)
	}

	// Frames built with the bounds stay inside the viewport.
	req.Bounds = &bounds
	for i := 0; i < 8; i++ {
		req.T = FrameTime(i, 8)
		f, err := epicycles.BuildFrame(req)
		require.NoError(t, err)
		r, ok := f.BoundingBox()
		require.True(t, ok)
		assert.GreaterOrEqual(t, r.X0, -1e-6)
		assert.GreaterOrEqual(t, r.Y0, -1e-6)
		assert.LessOrEqual(t, r.X1, 60+1e-6)
		assert.LessOrEqual(t, r.Y1, 40+1e-6)
	}
}

func TestFrameTime(t *testing.T) {
	assert.Equal(t, 0.0, FrameTime(0, 4))
	assert.InDelta(t, math.Pi/2, FrameTime(1, 4), 1e-15)
	assert.InDelta(t, math.Pi, FrameTime(2, 4), 1e-15)
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, circleRequest(), render.DefaultStyle(), 2))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 80), img.Bounds())

	assert.ErrorIs(t, PNG(nil, circleRequest(), render.DefaultStyle(), 1), ErrNoOutput)

	req := circleRequest()
	req.Viewport = epicycles.Viewport{}
	assert.Error(t, PNG(&buf, req, render.DefaultStyle(), 1))
}

func tooFewPoints() epicycles.DrawnPoints {
	return epicycles.DrawnPoints{Points: []epicycles.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}
}

func TestPNGTooFewPoints(t *testing.T) {
	req := circleRequest()
	req.Source = tooFewPoints()
	var buf bytes.Buffer
	err := PNG(&buf, req, render.DefaultStyle(), 1)
	assert.ErrorIs(t, err, epicycles.ErrTooFewPoints)

	// The default curve is still written.
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 60, 40), img.Bounds())
}

func TestGIFTooFewPoints(t *testing.T) {
	opts := gifOptions(2)
	opts.Request.Source = tooFewPoints()
	var buf bytes.Buffer
	r := NewGenerator(nil, nil).GIF(context.Background(), &buf, opts, nil)
	require.Equal(t, Completed, r.Outcome, "%v", r.Err)
	assert.True(t, r.TooFewPoints)
	assert.NotZero(t, buf.Len())

	r = NewGenerator(nil, nil).GIF(context.Background(), &buf, gifOptions(2), nil)
	require.Equal(t, Completed, r.Outcome, "%v", r.Err)
	assert.False(t, r.TooFewPoints)
}

func TestTermsOf(t *testing.T) {
	terms := epicycles.Terms{epicycles.NewTerm(1)}
	assert.Equal(t, terms, termsOf(epicycles.TermSeries{Terms: terms}))
	assert.Nil(t, termsOf(epicycles.DrawnPoints{}))
	assert.Nil(t, termsOf(nil))
}
