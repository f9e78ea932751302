// Package synth runs the full synthesis pipeline: locate the interpolation
// cell for a parameter point, combine the node spectra, resample onto the
// requested window, broaden rotationally, and convert the wavelength scale.
//
// The pipeline is fail-fast: any stage error propagates typed to the
// caller and no partial spectrum is returned. Boundary clamping is the one
// locally recovered case and is surfaced in the result metadata.
package synth
