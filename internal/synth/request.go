package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"specgrid/internal/config"
	"specgrid/internal/grid"
)

// Request describes one synthesis: the parameter point, the output window,
// and the processing settings.
type Request struct {
	Mode     string
	Absolute bool
	Point    grid.Point

	Low     float64
	High    float64
	Step    float64
	Padding float64
	Order   int

	VRot          float64
	LimbDarkening float64

	// WavelengthScale selects the output scale: "vacuum" or "air".
	WavelengthScale string
	// AirCoefficients names the dispersion formula used when converting
	// to air: "edlen1953" or "edlen1966".
	AirCoefficients string
	// ClampPolicy is "clamp" or "error".
	ClampPolicy string
}

// RequestFromConfig seeds a request with the configured synthesis
// defaults. The caller fills in the point and window.
func RequestFromConfig(cfg *config.Config) Request {
	return Request{
		Mode:            cfg.Synthesis.Mode,
		Step:            cfg.Synthesis.Step,
		Padding:         cfg.Synthesis.Padding,
		Order:           cfg.Synthesis.Order,
		LimbDarkening:   cfg.Synthesis.LimbDarkening,
		WavelengthScale: cfg.Synthesis.WavelengthScale,
		AirCoefficients: cfg.Synthesis.AirCoefficients,
		ClampPolicy:     cfg.Synthesis.ClampPolicy,
	}
}

// Validate rejects requests no stage could satisfy.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Mode) == "" {
		return fmt.Errorf("mode must be set")
	}
	if len(r.Point) == 0 {
		return fmt.Errorf("parameter point must be set")
	}
	if r.High <= r.Low {
		return fmt.Errorf("window high %g must exceed low %g", r.High, r.Low)
	}
	if r.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", r.Step)
	}
	if r.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %g", r.Padding)
	}
	if r.Order < 1 {
		return fmt.Errorf("order must be at least 1, got %d", r.Order)
	}
	if r.VRot < 0 {
		return fmt.Errorf("vrot must not be negative, got %g", r.VRot)
	}
	if r.LimbDarkening < 0 || r.LimbDarkening > 1 {
		return fmt.Errorf("limb darkening must be within [0, 1], got %g", r.LimbDarkening)
	}
	switch r.WavelengthScale {
	case "vacuum", "air":
	default:
		return fmt.Errorf("wavelength scale must be \"vacuum\" or \"air\", got %q", r.WavelengthScale)
	}
	return nil
}

// Fingerprint hashes every request field that influences the output, so
// identical requests can be recognized across runs.
func (r Request) Fingerprint() string {
	var b strings.Builder
	b.WriteString(r.Mode)
	b.WriteByte('|')
	if r.Absolute {
		b.WriteByte('a')
	} else {
		b.WriteByte('r')
	}
	for _, v := range r.Point {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, v := range []float64{r.Low, r.High, r.Step, r.Padding, r.VRot, r.LimbDarkening} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(r.Order))
	b.WriteByte('|')
	b.WriteString(r.WavelengthScale)
	b.WriteByte('|')
	b.WriteString(r.AirCoefficients)
	b.WriteByte('|')
	b.WriteString(r.ClampPolicy)

	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}
