// Package config loads, validates, and normalizes specgrid configuration.
//
// Configuration lives in a TOML file (default ~/.config/specgrid/config.toml)
// and covers grid locations, synthesis defaults, the spectrum cache bound,
// history store, and logging. Load applies defaults first, then the file,
// then environment overrides, and finally path expansion and validation, so
// callers always receive a usable absolute-path configuration or an error.
package config
