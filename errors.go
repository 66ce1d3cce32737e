package epicycles

import "errors"

var (
	// ErrTooFewPoints is reported when a user curve has no more than
	// MinimumPointCount points and DefaultCurve was used in its place. It
	// accompanies a usable result rather than replacing it.
	ErrTooFewPoints = errors.New("too few points")
	// ErrDegenerateBounds is reported when a bounding rectangle has neither
	// width nor height, so no scale can map it into a viewport.
	ErrDegenerateBounds = errors.New("degenerate bounds")
	// ErrInvalidCoefficients is reported for coefficient vectors of even or
	// zero length.
	ErrInvalidCoefficients = errors.New("invalid coefficients")
)

const (
	// MinimumPointCount is the number of points a drawn curve or a term
	// series must exceed to be used instead of the default curve.
	MinimumPointCount = 20
	// MaxTerms bounds N, the number of positive (and negative) frequencies.
	MaxTerms = 100
	// DefaultSampleCount is the number of uniform samples taken of a curve.
	DefaultSampleCount = 1000
	// PathsPadding is the inset applied to a viewport before fitting.
	PathsPadding = 10
	// TerminatorRadius is the radius of the marker drawn at the chain's tip.
	TerminatorRadius = 3
	// MinFrequency and MaxFrequency bound the frequency of a [Term].
	MinFrequency = -20
	MaxFrequency = 20
)
