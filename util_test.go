package epicycles

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats and complex numbers up to an absolute error.
func approx(epsilon float64) cmp.Option {
	return cmp.Options{
		cmpopts.EquateApprox(0, epsilon),
		cmp.Comparer(func(a, b complex128) bool { return cmplx.Abs(a-b) <= epsilon }),
	}
}

func assertNearFloat(t *testing.T, got, want, epsilon float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("got %v, want %v ± %v", got, want, epsilon)
	}
}

func unitCircle() Parametric {
	p, _ := LookupPreset("circle")
	return p
}
