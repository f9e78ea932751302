package resample_test

import (
	"errors"
	"math"
	"testing"

	"specgrid/internal/resample"
	"specgrid/internal/spectrum"
	"specgrid/internal/testsupport"
)

func TestWindowPointCount(t *testing.T) {
	cases := []struct {
		window resample.Window
		want   int
	}{
		{resample.Window{Low: 4200, High: 4600, Step: 0.01, Padding: 0}, 40001},
		{resample.Window{Low: 4200, High: 4600, Step: 0.01, Padding: 20}, 44001},
		{resample.Window{Low: 0, High: 1, Step: 0.5, Padding: 0}, 3},
	}
	for _, tc := range cases {
		if got := tc.window.Points(); got != tc.want {
			t.Errorf("Points(%+v) = %d, want %d", tc.window, got, tc.want)
		}
	}
}

func TestWindowAxisUniformSpacing(t *testing.T) {
	window := resample.Window{Low: 4200, High: 4600, Step: 0.01, Padding: 0}
	axis := window.Axis()
	if len(axis) != 40001 {
		t.Fatalf("axis length: %d", len(axis))
	}
	if axis[0] != 4200 {
		t.Fatalf("axis start: %g", axis[0])
	}
	if math.Abs(axis[len(axis)-1]-4600) > 1e-9 {
		t.Fatalf("axis end: %g", axis[len(axis)-1])
	}
	for i := 1; i < len(axis); i++ {
		if math.Abs(axis[i]-axis[i-1]-0.01) > 1e-9 {
			t.Fatalf("non-uniform spacing at %d: %g", i, axis[i]-axis[i-1])
		}
	}
}

func TestWindowFractionalPaddingKeepsBoundsOnAxis(t *testing.T) {
	// Padding below one step still yields a full step of margin, and the
	// window bounds stay exactly on the axis.
	window := resample.Window{Low: 4200, High: 4210, Step: 0.1, Padding: 0.05}
	axis := window.Axis()
	if len(axis) != 103 {
		t.Fatalf("axis length: %d", len(axis))
	}
	if math.Abs(axis[0]-4199.9) > 1e-9 || math.Abs(axis[len(axis)-1]-4210.1) > 1e-9 {
		t.Fatalf("padded bounds: [%g, %g]", axis[0], axis[len(axis)-1])
	}
	if math.Abs(axis[1]-window.Low) > 1e-9 {
		t.Fatalf("window start off axis: %g", axis[1])
	}
	if math.Abs(axis[len(axis)-2]-window.High) > 1e-9 {
		t.Fatalf("window end off axis: %g", axis[len(axis)-2])
	}
}

func TestWindowAxisNeverOvershootsHigh(t *testing.T) {
	// A step that does not divide the window range trims the last sample
	// instead of stepping past High.
	window := resample.Window{Low: 4200, High: 4210.05, Step: 0.1, Padding: 0}
	axis := window.Axis()
	last := axis[len(axis)-1]
	if last > window.High+1e-9 {
		t.Fatalf("axis overshoots window: %g > %g", last, window.High)
	}
	if math.Abs(last-4210.0) > 1e-9 {
		t.Fatalf("axis end: %g", last)
	}
	if len(axis) != 101 {
		t.Fatalf("axis length: %d", len(axis))
	}
}

func TestResampleWithinCoverage(t *testing.T) {
	wave := testsupport.UniformWave(4000, 5000, 0.5)
	native := &spectrum.Raw{Wave: wave, Flux: testsupport.LinearFlux(wave, 15000, 4.0, 1.0)}

	out, err := resample.Resample(native, resample.Window{Low: 4200, High: 4600, Step: 0.01, Padding: 20})
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if len(out.Wave) != 44001 {
		t.Fatalf("output length: %d", len(out.Wave))
	}
	// Linear fixture flux must survive linear resampling exactly.
	want := testsupport.LinearFlux(out.Wave, 15000, 4.0, 1.0)
	for i := range want {
		if math.Abs(out.Flux[i]-want[i]) > 1e-9 {
			t.Fatalf("flux[%d] = %g want %g", i, out.Flux[i], want[i])
		}
	}
}

func TestResampleRejectsUncoveredWindow(t *testing.T) {
	wave := testsupport.UniformWave(4190, 4610, 0.5)
	native := &spectrum.Raw{Wave: wave, Flux: make([]float64, len(wave))}

	// Padding pushes the request past the native edges.
	_, err := resample.Resample(native, resample.Window{Low: 4200, High: 4600, Step: 0.01, Padding: 20})
	if !errors.Is(err, resample.ErrRange) {
		t.Fatalf("expected ErrRange, got %v", err)
	}

	if _, err := resample.Resample(native, resample.Window{Low: 4200, High: 4600, Step: 0.01, Padding: 10}); err != nil {
		t.Fatalf("window inside coverage should pass: %v", err)
	}
}

func TestWindowValidate(t *testing.T) {
	bad := []resample.Window{
		{Low: 4600, High: 4200, Step: 0.01},
		{Low: 4200, High: 4600, Step: 0},
		{Low: 4200, High: 4600, Step: 0.01, Padding: -1},
	}
	for _, window := range bad {
		if err := window.Validate(); err == nil {
			t.Errorf("expected validation error for %+v", window)
		}
	}
}
