// Command specgrid synthesizes stellar spectra by interpolating
// precomputed grids, and manages the grid catalogs and synthesis history.
package main
