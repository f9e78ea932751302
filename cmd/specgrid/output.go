package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"specgrid/internal/spectrum"
)

// writeSpectrum stores the synthesized spectrum as a two-column text file
// with its provenance in comment lines, the same shape the grid files use.
func writeSpectrum(path string, result *spectrum.Synthetic) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	meta := result.Meta

	point := make([]string, len(meta.Point))
	for i, v := range meta.Point {
		name := fmt.Sprintf("p%d", i)
		if i < len(meta.AxisNames) {
			name = meta.AxisNames[i]
		}
		point[i] = fmt.Sprintf("%s=%g", name, v)
	}

	fmt.Fprintf(w, "# specgrid synthetic spectrum\n")
	fmt.Fprintf(w, "# request_id: %s\n", meta.RequestID)
	fmt.Fprintf(w, "# created_at: %s\n", meta.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(w, "# mode: %s absolute: %t\n", meta.Mode, meta.Absolute)
	fmt.Fprintf(w, "# point: %s\n", strings.Join(point, " "))
	fmt.Fprintf(w, "# window: [%g, %g] step: %g padding: %g order: %d\n",
		meta.WMin, meta.WMax, meta.Step, meta.Padding, meta.Order)
	fmt.Fprintf(w, "# vrot: %g limb_darkening: %g scale: %s\n",
		meta.VRot, meta.LimbDarkening, meta.WavelengthScale)
	if meta.Clamped() {
		fmt.Fprintf(w, "# clamped_axes: %s\n", strings.Join(meta.ClampedAxes, " "))
	}

	for i := range result.Wave {
		fmt.Fprintf(w, "%.6f %.10e\n", result.Wave[i], result.Flux[i])
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
