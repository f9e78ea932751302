package spectrum

import (
	"errors"
	"fmt"
	"time"
)

// ErrCorruptGridFile is returned when a stored spectrum cannot be used:
// mismatched array lengths, non-increasing wavelengths, or unparseable
// content.
var ErrCorruptGridFile = errors.New("corrupt grid file")

// Raw is the (wavelength, intensity) pair loaded from a single grid node.
// Wavelengths are strictly increasing. Read-only once produced.
type Raw struct {
	Wave []float64
	Flux []float64
}

// Validate checks the invariants every stored spectrum must satisfy.
func (r *Raw) Validate() error {
	if len(r.Wave) == 0 {
		return fmt.Errorf("%w: empty spectrum", ErrCorruptGridFile)
	}
	if len(r.Wave) != len(r.Flux) {
		return fmt.Errorf("%w: %d wavelengths but %d intensities", ErrCorruptGridFile, len(r.Wave), len(r.Flux))
	}
	for i := 1; i < len(r.Wave); i++ {
		if r.Wave[i] <= r.Wave[i-1] {
			return fmt.Errorf("%w: wavelengths not strictly increasing at index %d (%g after %g)",
				ErrCorruptGridFile, i, r.Wave[i], r.Wave[i-1])
		}
	}
	return nil
}

// SizeBytes approximates the in-memory footprint, used for cache bounds.
func (r *Raw) SizeBytes() int64 {
	return int64(len(r.Wave)+len(r.Flux)) * 8
}

// Meta records the provenance of a synthesized spectrum.
type Meta struct {
	RequestID       string
	Mode            string
	Absolute        bool
	Point           []float64
	AxisNames       []string
	WMin            float64
	WMax            float64
	Step            float64
	Padding         float64
	Order           int
	VRot            float64
	LimbDarkening   float64
	WavelengthScale string
	ClampedAxes     []string
	CreatedAt       time.Time
}

// Clamped reports whether any axis was clamped to the grid boundary.
func (m Meta) Clamped() bool { return len(m.ClampedAxes) > 0 }

// Synthetic is the finished pipeline product: a sampled spectrum plus the
// parameters and settings that produced it. Immutable; owned by the caller.
type Synthetic struct {
	Wave []float64
	Flux []float64
	Meta Meta
}
