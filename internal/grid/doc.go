// Package grid models the discrete parameter grids that precomputed
// synthetic spectra live on.
//
// A grid mode (ostar, bstar, pollux, ...) selects a set of grid
// subdirectories and a family precedence order. The catalog scans their
// gridlist files into per-axis node values and a node-to-file lookup, and
// the cell locator maps an off-grid parameter point to the hyper-rectangle
// of nodes an interpolation of a given order needs.
package grid
