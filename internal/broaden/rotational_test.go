package broaden_test

import (
	"errors"
	"math"
	"testing"

	"specgrid/internal/broaden"
	"specgrid/internal/logging"
	"specgrid/internal/resample"
	"specgrid/internal/spectrum"
)

func paddedSpectrum(window resample.Window, flux func(w float64) float64) *spectrum.Raw {
	wave := window.Axis()
	out := &spectrum.Raw{Wave: wave, Flux: make([]float64, len(wave))}
	for i, w := range wave {
		out.Flux[i] = flux(w)
	}
	return out
}

func TestZeroVRotIsIdentityOnWindow(t *testing.T) {
	window := resample.Window{Low: 4200, High: 4210, Step: 0.01, Padding: 2}
	padded := paddedSpectrum(window, func(w float64) float64 { return math.Sin(w) })

	b := broaden.New(0, 0.6, 0.01, logging.NewNop())
	out, err := b.Broaden(padded, window)
	if err != nil {
		t.Fatalf("Broaden: %v", err)
	}
	if out.Wave[0] != 4200 || math.Abs(out.Wave[len(out.Wave)-1]-4210) > 1e-9 {
		t.Fatalf("window not cropped correctly: [%g, %g]", out.Wave[0], out.Wave[len(out.Wave)-1])
	}
	if len(out.Wave) != 1001 {
		t.Fatalf("cropped length: %d", len(out.Wave))
	}
	for i, w := range out.Wave {
		if out.Flux[i] != math.Sin(w) {
			t.Fatalf("flux changed at %g", w)
		}
	}
}

func TestCropAlignsWithFractionalPadding(t *testing.T) {
	// Padding that is not a step multiple must not shift the cropped
	// window off the requested bounds.
	window := resample.Window{Low: 4200, High: 4210, Step: 0.1, Padding: 0.05}
	padded := paddedSpectrum(window, func(w float64) float64 { return math.Sin(w) })

	b := broaden.New(0, 0.6, 0.01, logging.NewNop())
	out, err := b.Broaden(padded, window)
	if err != nil {
		t.Fatalf("Broaden: %v", err)
	}
	if math.Abs(out.Wave[0]-4200) > 1e-9 {
		t.Fatalf("crop misaligned: first wavelength %g, want 4200", out.Wave[0])
	}
	if math.Abs(out.Wave[len(out.Wave)-1]-4210) > 1e-9 {
		t.Fatalf("crop misaligned: last wavelength %g, want 4210", out.Wave[len(out.Wave)-1])
	}
	if len(out.Wave) != 101 {
		t.Fatalf("cropped length: %d", len(out.Wave))
	}
	for i, w := range out.Wave {
		if out.Flux[i] != math.Sin(w) {
			t.Fatalf("flux changed at %g", w)
		}
	}
}

func TestBroadeningPreservesFlatContinuum(t *testing.T) {
	window := resample.Window{Low: 4400, High: 4500, Step: 0.01, Padding: 5}
	padded := paddedSpectrum(window, func(float64) float64 { return 1.0 })

	b := broaden.New(50, 0.6, 0.01, logging.NewNop())
	out, err := b.Broaden(padded, window)
	if err != nil {
		t.Fatalf("Broaden: %v", err)
	}
	// The kernel is normalized to unit area: a flat continuum is invariant.
	for i, v := range out.Flux {
		if math.Abs(v-1) > 1e-10 {
			t.Fatalf("continuum shifted at %d: %g", i, v)
		}
	}
}

func TestBroadeningSmoothsAndPreservesArea(t *testing.T) {
	window := resample.Window{Low: 4390, High: 4410, Step: 0.01, Padding: 5}
	// A Gaussian absorption line at the window center.
	line := func(w float64) float64 {
		d := w - 4400
		return 1 - 0.5*math.Exp(-d*d/(2*0.05*0.05))
	}
	padded := paddedSpectrum(window, line)

	b := broaden.New(12.6, 0.6, 0.01, logging.NewNop())
	out, err := b.Broaden(padded, window)
	if err != nil {
		t.Fatalf("Broaden: %v", err)
	}

	// Line depth must shrink while equivalent width is preserved.
	minBefore, minAfter := 1.0, 1.0
	var areaBefore, areaAfter float64
	for i, w := range out.Wave {
		before := line(w)
		after := out.Flux[i]
		if before < minBefore {
			minBefore = before
		}
		if after < minAfter {
			minAfter = after
		}
		areaBefore += (1 - before) * window.Step
		areaAfter += (1 - after) * window.Step
	}
	if minAfter <= minBefore {
		t.Fatalf("line not broadened: depth %g -> %g", 1-minBefore, 1-minAfter)
	}
	if math.Abs(areaBefore-areaAfter) > 1e-3*areaBefore {
		t.Fatalf("equivalent width not preserved: %g -> %g", areaBefore, areaAfter)
	}
}

func TestBroadeningSymmetricLineStaysCentered(t *testing.T) {
	window := resample.Window{Low: 4390, High: 4410, Step: 0.01, Padding: 5}
	line := func(w float64) float64 {
		d := w - 4400
		return 1 - 0.5*math.Exp(-d*d/(2*0.05*0.05))
	}
	padded := paddedSpectrum(window, line)

	b := broaden.New(30, 0.6, 0.01, logging.NewNop())
	out, err := b.Broaden(padded, window)
	if err != nil {
		t.Fatal(err)
	}
	minIdx := 0
	for i, v := range out.Flux {
		if v < out.Flux[minIdx] {
			minIdx = i
		}
	}
	if got := out.Wave[minIdx]; math.Abs(got-4400) > 0.02 {
		t.Fatalf("line center moved to %g", got)
	}
}

func TestKernelRangeError(t *testing.T) {
	window := resample.Window{Low: 4200, High: 4600, Step: 0.01, Padding: 0.05}
	padded := paddedSpectrum(window, func(float64) float64 { return 1 })

	// vrot 12.6 km/s at 4400 A implies a ~0.18 A half-width.
	b := broaden.New(12.6, 0.6, 0.01, logging.NewNop())
	_, err := b.Broaden(padded, window)
	if !errors.Is(err, broaden.ErrKernelRange) {
		t.Fatalf("expected ErrKernelRange, got %v", err)
	}
}
