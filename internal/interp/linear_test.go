package interp

import (
	"math"
	"testing"
)

func TestResampleLinearMidpoints(t *testing.T) {
	src := []float64{0, 1, 2}
	flux := []float64{0, 10, 30}
	out := ResampleLinear(src, flux, []float64{0.5, 1.0, 1.5})
	want := []float64{5, 10, 20}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out=%v want %v", out, want)
		}
	}
}

func TestResampleLinearClampsEndpoints(t *testing.T) {
	src := []float64{10, 20}
	flux := []float64{1, 2}
	out := ResampleLinear(src, flux, []float64{5, 25})
	if out[0] != 1 || out[1] != 2 {
		t.Fatalf("endpoints not clamped: %v", out)
	}
}
