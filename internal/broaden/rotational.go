// Package broaden applies rotational broadening to a resampled spectrum.
//
// The kernel is the classical rotational profile for a linear
// limb-darkening law: its wavelength half-width follows the Doppler
// relation at the window center, and it is normalized to unit area so
// broadening preserves total flux. The padded margins supply valid input
// samples near the window edges; the result is cropped back to the
// requested window.
package broaden

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"specgrid/internal/logging"
	"specgrid/internal/resample"
	"specgrid/internal/spectrum"
)

// SpeedOfLight in km/s, matching the vrot unit.
const SpeedOfLight = 299792.458

// ErrKernelRange is returned when the padding cannot accommodate the
// kernel width the rotational velocity implies.
var ErrKernelRange = errors.New("padding too small for broadening kernel")

// Broadener convolves spectra with a rotational profile.
type Broadener struct {
	// VRot is the projected rotational velocity in km/s.
	VRot float64
	// Epsilon is the linear limb-darkening coefficient in [0, 1].
	Epsilon float64
	// Threshold is the vrot in km/s below which broadening is skipped.
	// The kernel width collapses to zero as vrot does, so tiny velocities
	// must pass through unchanged instead of dividing by zero.
	Threshold float64

	logger *slog.Logger
}

// New builds a broadener.
func New(vrot, epsilon, threshold float64, logger *slog.Logger) *Broadener {
	return &Broadener{
		VRot:      vrot,
		Epsilon:   epsilon,
		Threshold: threshold,
		logger:    logging.NewComponentLogger(logger, "broaden"),
	}
}

// Broaden convolves the padded spectrum and crops it to [window.Low,
// window.High]. With vrot at or below the threshold it is the identity on
// the cropped window.
func (b *Broadener) Broaden(padded *spectrum.Raw, window resample.Window) (*spectrum.Raw, error) {
	if b.VRot <= b.Threshold {
		return crop(padded, window)
	}

	center := (window.Low + window.High) / 2
	halfWidth := center * b.VRot / SpeedOfLight
	if halfWidth > window.Padding {
		return nil, fmt.Errorf("%w: kernel half-width %.3f exceeds padding %.3f (vrot %.1f km/s)",
			ErrKernelRange, halfWidth, window.Padding, b.VRot)
	}

	kernel := b.kernel(halfWidth, window.Step)
	if len(kernel) <= 1 {
		// Kernel narrower than one output step: nothing to convolve.
		b.logger.Debug("kernel below step resolution, skipping broadening",
			logging.Float64("vrot", b.VRot),
			logging.Float64("step", window.Step))
		return crop(padded, window)
	}

	flux := convolve(padded.Flux, kernel)
	broadened := &spectrum.Raw{Wave: padded.Wave, Flux: flux}
	return crop(broadened, window)
}

// kernel samples the rotational profile at the output step over
// [-halfWidth, halfWidth] and normalizes it to unit sum.
func (b *Broadener) kernel(halfWidth, step float64) []float64 {
	m := int(halfWidth / step)
	denom := 1 - b.Epsilon/3
	c1 := 2 * (1 - b.Epsilon) / (math.Pi * halfWidth * denom)
	c2 := b.Epsilon / (2 * halfWidth * denom)

	kernel := make([]float64, 2*m+1)
	sum := 0.0
	for j := -m; j <= m; j++ {
		x := float64(j) * step / halfWidth
		arg := 1 - x*x
		if arg < 0 {
			arg = 0
		}
		value := c1*math.Sqrt(arg) + c2*arg
		kernel[j+m] = value
		sum += value
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// convolve applies a centered kernel, clamping at the array ends. The
// clamped region lies inside the padding and is discarded by the crop.
func convolve(flux, kernel []float64) []float64 {
	m := (len(kernel) - 1) / 2
	out := make([]float64, len(flux))
	for i := range flux {
		acc := 0.0
		for j := -m; j <= m; j++ {
			idx := i + j
			if idx < 0 {
				idx = 0
			} else if idx >= len(flux) {
				idx = len(flux) - 1
			}
			acc += kernel[j+m] * flux[idx]
		}
		out[i] = acc
	}
	return out
}

// crop discards the symmetric padding, locating window.Low on the padded
// axis rather than assuming the padding is a whole number of steps.
func crop(padded *spectrum.Raw, window resample.Window) (*spectrum.Raw, error) {
	pad := int(math.Round((window.Low - padded.Wave[0]) / window.Step))
	points := len(padded.Wave) - 2*pad
	if pad < 0 || points < 1 {
		return nil, fmt.Errorf("padded spectrum too short: %d samples, crop margin %d", len(padded.Wave), pad)
	}
	if start := padded.Wave[pad]; math.Abs(start-window.Low) > window.Step/2 {
		return nil, fmt.Errorf("padded axis misaligned: sample %g where window starts at %g", start, window.Low)
	}
	return &spectrum.Raw{
		Wave: padded.Wave[pad : pad+points],
		Flux: padded.Flux[pad : pad+points],
	}, nil
}
