// Package spectrum holds the spectrum value types and the cached loader
// that reads grid node spectra from disk.
//
// Raw spectra are immutable once loaded and shared between interpolation
// requests through the loader's cache, which serializes concurrent loads of
// the same node and optionally evicts least-recently-used entries under a
// configured byte bound.
package spectrum
