// Package testsupport provides shared helpers for building test
// configurations and on-disk grid fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"specgrid/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.GridDir = filepath.Join(base, "grids")
	cfg.Paths.AbsGridDir = filepath.Join(base, "grids_abs")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DataDir = filepath.Join(base, "data")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithOrder sets the default interpolation order.
func WithOrder(order int) ConfigOption {
	return func(c *config.Config) { c.Synthesis.Order = order }
}

// WithClampPolicy sets the out-of-range policy.
func WithClampPolicy(policy string) ConfigOption {
	return func(c *config.Config) { c.Synthesis.ClampPolicy = policy }
}
