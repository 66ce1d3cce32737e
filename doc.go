// Package epicycles approximates closed planar curves by truncated complex
// Fourier series and produces the geometry needed to draw them as chains of
// rotating vectors ("epicycles").
//
// # Overview
//
// A planar curve (x(t), y(t)) on t ∈ [−π, π] is treated as the complex
// function z(t) = x(t) + i·y(t). Its Fourier coefficients
//
//	A_n = 1/2π ∫ z(t)·e^(−int) dt,   n = −N … N
//
// are estimated from uniform samples with Simpson's rule (see
// [EstimateCoefficients]). Summing A_n·e^(int) tip to tail in the order A_0,
// A_1, A_−1, A_2, A_−2, … yields the epicycle chain at time t (see
// [EpicycleChain]); the last element of the chain is the point of the
// approximated curve.
//
// Curves come from one of three sources, modelled by [CurveSource]:
// a [Parametric] function pair (see [Presets]), [DrawnPoints], or an
// explicit [TermSeries] of [Term] values.
//
// # Coordinate spaces
//
// Analysis and synthesis work in mathematical space, y pointing up. Frames
// built by [BuildFrame] are in view space, y pointing down, scaled into a
// [Viewport] with a single shared [Affine] transform so that the curve, its
// approximation and the chain keep their relative geometry.
//
// # Frames and paths
//
// A [Frame] holds the five drawable artifacts of one moment of the
// animation: the curve, the series approximation, the chain of radii, one
// [Circle] per chain segment and the terminator marker. [Frame.Paths]
// converts them to [BezPath] values, which can be written as SVG path data
// with [WriteSVG].
//
// All functions in this package are pure and safe for concurrent use. An
// [Engine] adds a coefficient cache for animation loops that rebuild frames
// of the same curve many times.
package epicycles
