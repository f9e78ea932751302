// Package airvac converts wavelength axes between vacuum and air scales.
//
// The air refractive index follows the Edlen dispersion formula
// n = 1 + c1 + c2/(k1-s) + c3/(k2-s) with s = (1e4/lambda)^2 for lambda in
// Angstrom. Two published coefficient sets are supported and selection is
// always explicit; spectroscopic conventions differ by reference and
// guessing from data is a recipe for subtle wavelength offsets.
package airvac

import (
	"errors"
	"fmt"
)

// ErrInvalidWavelength is returned for non-positive wavelength input.
var ErrInvalidWavelength = errors.New("wavelength must be positive")

// CoefficientSet selects one published dispersion formula.
type CoefficientSet struct {
	Name       string
	C1, C2, C3 float64
	K1, K2     float64
}

// Edlen1953 is the historical IAU-adopted dispersion formula.
var Edlen1953 = CoefficientSet{
	Name: "edlen1953",
	C1:   6.4328e-5,
	C2:   2.94981e-2, K1: 146,
	C3: 2.5540e-4, K2: 41,
}

// Edlen1966 is the revised dispersion formula.
var Edlen1966 = CoefficientSet{
	Name: "edlen1966",
	C1:   8.34213e-5,
	C2:   2.406030e-2, K1: 130,
	C3: 1.5997e-4, K2: 38.9,
}

// Lookup resolves a coefficient set by its config spelling.
func Lookup(name string) (CoefficientSet, error) {
	switch name {
	case "edlen1953", "":
		return Edlen1953, nil
	case "edlen1966":
		return Edlen1966, nil
	default:
		return CoefficientSet{}, fmt.Errorf("unknown air coefficient set %q", name)
	}
}

// RefractiveIndex evaluates n at a vacuum wavelength in Angstrom.
func (c CoefficientSet) RefractiveIndex(vacuum float64) (float64, error) {
	if vacuum <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrInvalidWavelength, vacuum)
	}
	s := 1e4 / vacuum
	s *= s
	return 1 + c.C1 + c.C2/(c.K1-s) + c.C3/(c.K2-s), nil
}

// VacuumToAir converts a single vacuum wavelength to the air scale:
// air = vacuum / n(vacuum).
func (c CoefficientSet) VacuumToAir(vacuum float64) (float64, error) {
	n, err := c.RefractiveIndex(vacuum)
	if err != nil {
		return 0, err
	}
	return vacuum / n, nil
}

// AirToVacuum applies the documented approximate inverse, evaluating the
// refractive index at the air wavelength: vacuum = air * n(air). The two
// directions are not exact analytic inverses but round-trip to well below
// the grid step for optical wavelengths.
func (c CoefficientSet) AirToVacuum(air float64) (float64, error) {
	n, err := c.RefractiveIndex(air)
	if err != nil {
		return 0, err
	}
	return air * n, nil
}

// ConvertAxis maps a whole wavelength axis with the given conversion,
// leaving the input untouched.
func ConvertAxis(wave []float64, convert func(float64) (float64, error)) ([]float64, error) {
	out := make([]float64, len(wave))
	for i, w := range wave {
		v, err := convert(w)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
