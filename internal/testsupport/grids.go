package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// GridNode describes one synthetic spectrum fixture: its node coordinates
// and the sampled arrays to write.
type GridNode struct {
	Teff, Logg, Z float64
	Wave, Flux    []float64
}

// WriteGridDir materializes a grid subdirectory with a gridlist file and a
// two-column spectrum file per node, in the on-disk layout the catalog
// scans.
func WriteGridDir(t testing.TB, gridDir, sub string, nodes []GridNode) {
	t.Helper()

	dir := filepath.Join(gridDir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create grid dir: %v", err)
	}

	var list strings.Builder
	list.WriteString("FILENAME TEFF LOGG Z\n")
	for i, node := range nodes {
		name := fmt.Sprintf("spec_%d.dat", i)
		list.WriteString(fmt.Sprintf("%s %g %g %g\n", name, node.Teff, node.Logg, node.Z))

		var body strings.Builder
		body.WriteString("# wavelength intensity\n")
		for j := range node.Wave {
			// Full precision so loaded values round-trip bit-exactly.
			body.WriteString(fmt.Sprintf("%.17g %.17g\n", node.Wave[j], node.Flux[j]))
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body.String()), 0o644); err != nil {
			t.Fatalf("write spectrum file: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "gridlist"), []byte(list.String()), 0o644); err != nil {
		t.Fatalf("write gridlist: %v", err)
	}
}

// UniformWave builds a uniform wavelength axis.
func UniformWave(lo, hi, step float64) []float64 {
	n := int((hi-lo)/step+0.5) + 1
	wave := make([]float64, n)
	for i := range wave {
		wave[i] = lo + float64(i)*step
	}
	return wave
}

// LinearFlux builds an intensity array that depends linearly on the node
// parameters and wavelength. Linear dependence makes polynomial
// interpolation exact regardless of order, so tests can assert equality.
func LinearFlux(wave []float64, teff, logg, z float64) []float64 {
	flux := make([]float64, len(wave))
	for i, w := range wave {
		flux[i] = 1e-4*teff + 0.1*logg + 0.5*z + 1e-3*w
	}
	return flux
}

// BStarNodes builds a small BSTAR-like node set covering teff x logg at a
// single metallicity, with LinearFlux intensities on the given wave axis.
func BStarNodes(wave []float64, teffs, loggs []float64, z float64) []GridNode {
	var nodes []GridNode
	for _, teff := range teffs {
		for _, logg := range loggs {
			nodes = append(nodes, GridNode{
				Teff: teff, Logg: logg, Z: z,
				Wave: wave,
				Flux: LinearFlux(wave, teff, logg, z),
			})
		}
	}
	return nodes
}
