package epicycles

import (
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// Engine builds frames like [BuildFrame] but remembers the coefficients of
// recently analyzed curves, so that animating a curve analyzes it once
// rather than once per frame.
//
// An Engine is safe for concurrent use.
type Engine struct {
	coeffs *cache.Cache
}

// DefaultCacheExpiration is how long an Engine keeps unused coefficients.
const DefaultCacheExpiration = 5 * time.Minute

// NewEngine returns an engine whose cached coefficients expire after
// expiration without use. A non-positive expiration selects
// DefaultCacheExpiration.
func NewEngine(expiration time.Duration) *Engine {
	if expiration <= 0 {
		expiration = DefaultCacheExpiration
	}
	return &Engine{
		coeffs: cache.New(expiration, 2*expiration),
	}
}

// BuildFrame is like the package-level [BuildFrame].
func (e *Engine) BuildFrame(req FrameRequest) (Frame, error) {
	return buildFrame(req, e.analyze)
}

// Coefficients returns the coefficients of src with N frequencies, as used
// by BuildFrame with the same arguments.
//
// If src has too few points, the coefficients of DefaultCurve are returned
// together with an error wrapping ErrTooFewPoints.
func (e *Engine) Coefficients(N int, src CurveSource, sampleCount int) (Coefficients, error) {
	if sampleCount == 0 {
		sampleCount = DefaultSampleCount
	}
	src, pts, tooFew := resolveSource(src, sampleCount)
	c := e.analyze(N, src, sampleCount, pts)
	if tooFew {
		return c, fmt.Errorf("using %s: %w", DefaultCurve.Name, ErrTooFewPoints)
	}
	return c, nil
}

func (e *Engine) analyze(N int, src CurveSource, sampleCount int, points []Point) Coefficients {
	key := strconv.FormatUint(src.fingerprint(sampleCount, points), 16) + "/" + strconv.Itoa(N)
	if v, found := e.coeffs.Get(key); found {
		return v.(Coefficients)
	}
	c := EstimateCoefficients(N, points)
	e.coeffs.SetDefault(key, c)
	return c
}

// Len returns the number of cached coefficient vectors, including expired
// ones not yet evicted.
func (e *Engine) Len() int {
	return e.coeffs.ItemCount()
}

// Flush discards all cached coefficients.
func (e *Engine) Flush() {
	e.coeffs.Flush()
}
