// Package resample restricts an interpolated spectrum to the requested
// wavelength window and projects it onto a uniform output axis.
package resample

import (
	"errors"
	"fmt"
	"math"

	"specgrid/internal/interp"
	"specgrid/internal/spectrum"
)

// ErrRange is returned when the padded window is not fully covered by the
// native spectrum.
var ErrRange = errors.New("requested window outside spectrum coverage")

// Window describes the requested output: [Low, High] at Step, widened by
// Padding on both sides until the broadening stage crops it back.
type Window struct {
	Low     float64
	High    float64
	Step    float64
	Padding float64
}

// Validate rejects windows that cannot produce a spectrum.
func (w Window) Validate() error {
	if w.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", w.Step)
	}
	if w.High <= w.Low {
		return fmt.Errorf("window high %g must exceed low %g", w.High, w.Low)
	}
	if w.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %g", w.Padding)
	}
	return nil
}

// stepTolerance absorbs float rounding when counting whole steps across a
// window; a millionth of a step is far below any physical resolution.
const stepTolerance = 1e-6

// Points returns the number of samples of the padded uniform axis.
func (w Window) Points() int {
	return w.corePoints() + 2*w.padPoints()
}

// corePoints counts the samples from Low at Step that stay within High,
// so the axis never overshoots the requested window.
func (w Window) corePoints() int {
	return int(math.Floor((w.High-w.Low)/w.Step+stepTolerance)) + 1
}

// padPoints is the smallest whole number of steps covering Padding on one
// side. Rounding the margin up keeps Low and High on the axis when
// Padding is not a step multiple, and never shrinks the margin the
// broadening kernel relies on.
func (w Window) padPoints() int {
	return int(math.Ceil(w.Padding/w.Step - stepTolerance))
}

// Axis builds the padded uniform wavelength axis. Low sits at index
// padPoints, so cropping the padding away recovers the requested window
// exactly.
func (w Window) Axis() []float64 {
	n := w.Points()
	axis := make([]float64, n)
	start := w.Low - float64(w.padPoints())*w.Step
	for i := range axis {
		axis[i] = start + float64(i)*w.Step
	}
	return axis
}

// Resample projects the native spectrum onto the padded uniform axis.
// The full padded range must lie inside the native coverage.
func Resample(native *spectrum.Raw, window Window) (*spectrum.Raw, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	wave := window.Axis()
	nativeLo := native.Wave[0]
	nativeHi := native.Wave[len(native.Wave)-1]
	if wave[0] < nativeLo || wave[len(wave)-1] > nativeHi {
		return nil, fmt.Errorf("%w: [%g, %g] not within [%g, %g]",
			ErrRange, wave[0], wave[len(wave)-1], nativeLo, nativeHi)
	}

	flux := interp.ResampleLinear(native.Wave, native.Flux, wave)
	return &spectrum.Raw{Wave: wave, Flux: flux}, nil
}
