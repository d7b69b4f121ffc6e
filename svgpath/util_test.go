package svgpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, got, want Point, epsilon float64) {
	t.Helper()
	if math.Hypot(got.X-want.X, got.Y-want.Y) > epsilon {
		t.Fatalf("got %v, expected %v", got, want)
	}
}

func assertMatrixNear(t *testing.T, got, want Matrix2D, epsilon float64) {
	t.Helper()
	g := [6]float64{got.A, got.B, got.C, got.D, got.E, got.F}
	w := [6]float64{want.A, want.B, want.C, want.D, want.E, want.F}
	for i := range g {
		if math.Abs(g[i]-w[i]) > epsilon*math.Max(1, math.Abs(w[i])) {
			t.Fatalf("got %v, expected %v", got, want)
		}
	}
}
