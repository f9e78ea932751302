// Package logging assembles the structured slog loggers used across
// specgrid.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers plus component loggers so
// pipeline code tags every line with the package that emitted it. Prefer
// these constructors over hand-rolled slog setup so all components emit
// records with the same shape.
package logging
