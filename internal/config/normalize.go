package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSynthesis()
	c.normalizeCache()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.GridDir, err = expandPath(c.Paths.GridDir); err != nil {
		return fmt.Errorf("paths.grid_dir: %w", err)
	}
	if c.Paths.AbsGridDir, err = expandPath(c.Paths.AbsGridDir); err != nil {
		return fmt.Errorf("paths.abs_grid_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSynthesis() {
	c.Synthesis.Mode = strings.ToLower(strings.TrimSpace(c.Synthesis.Mode))
	if c.Synthesis.Mode == "" {
		c.Synthesis.Mode = defaultMode
	}
	c.Synthesis.WavelengthScale = strings.ToLower(strings.TrimSpace(c.Synthesis.WavelengthScale))
	if c.Synthesis.WavelengthScale == "" {
		c.Synthesis.WavelengthScale = defaultWavelengthScale
	}
	c.Synthesis.ClampPolicy = strings.ToLower(strings.TrimSpace(c.Synthesis.ClampPolicy))
	if c.Synthesis.ClampPolicy == "" {
		c.Synthesis.ClampPolicy = defaultClampPolicy
	}
	c.Synthesis.AirCoefficients = strings.ToLower(strings.TrimSpace(c.Synthesis.AirCoefficients))
	if c.Synthesis.AirCoefficients == "" {
		c.Synthesis.AirCoefficients = defaultAirCoefficients
	}
	if c.Synthesis.Step == 0 {
		c.Synthesis.Step = defaultStep
	}
	if c.Synthesis.VRotThreshold == 0 {
		c.Synthesis.VRotThreshold = defaultVRotThreshold
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.LoadConcurrency <= 0 {
		c.Cache.LoadConcurrency = defaultLoadConcurrency
	}
	if c.Cache.MaxMebibytes < 0 {
		c.Cache.MaxMebibytes = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
