package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSynthesis(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.GridDir == "" {
		return errors.New("paths.grid_dir must be set")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateSynthesis() error {
	if c.Synthesis.Order < 1 {
		return fmt.Errorf("synthesis.order must be at least 1, got %d", c.Synthesis.Order)
	}
	if c.Synthesis.Step <= 0 {
		return fmt.Errorf("synthesis.step must be positive, got %g", c.Synthesis.Step)
	}
	if c.Synthesis.Padding < 0 {
		return fmt.Errorf("synthesis.padding must not be negative, got %g", c.Synthesis.Padding)
	}
	switch c.Synthesis.WavelengthScale {
	case "vacuum", "air":
	default:
		return fmt.Errorf("synthesis.wavelength_scale must be \"vacuum\" or \"air\", got %q", c.Synthesis.WavelengthScale)
	}
	switch c.Synthesis.ClampPolicy {
	case "clamp", "error":
	default:
		return fmt.Errorf("synthesis.clamp_policy must be \"clamp\" or \"error\", got %q", c.Synthesis.ClampPolicy)
	}
	switch c.Synthesis.AirCoefficients {
	case "edlen1953", "edlen1966":
	default:
		return fmt.Errorf("synthesis.air_coefficients must be \"edlen1953\" or \"edlen1966\", got %q", c.Synthesis.AirCoefficients)
	}
	if c.Synthesis.LimbDarkening < 0 || c.Synthesis.LimbDarkening > 1 {
		return fmt.Errorf("synthesis.limb_darkening must be between 0 and 1, got %g", c.Synthesis.LimbDarkening)
	}
	if c.Synthesis.VRotThreshold < 0 {
		return fmt.Errorf("synthesis.vrot_threshold must not be negative, got %g", c.Synthesis.VRotThreshold)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.LoadConcurrency < 1 {
		return fmt.Errorf("cache.load_concurrency must be at least 1, got %d", c.Cache.LoadConcurrency)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
}
