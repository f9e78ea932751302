package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	GridDir    string `toml:"grid_dir"`
	AbsGridDir string `toml:"abs_grid_dir"`
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
	DataDir    string `toml:"data_dir"`
}

// Synthesis contains default parameters applied to synthesis requests that
// do not specify their own.
type Synthesis struct {
	Mode            string  `toml:"mode"`
	Order           int     `toml:"order"`
	Step            float64 `toml:"step"`
	Padding         float64 `toml:"padding"`
	WavelengthScale string  `toml:"wavelength_scale"`
	ClampPolicy     string  `toml:"clamp_policy"`
	VRotThreshold   float64 `toml:"vrot_threshold"`
	LimbDarkening   float64 `toml:"limb_darkening"`
	AirCoefficients string  `toml:"air_coefficients"`
}

// Cache bounds the in-process spectrum cache.
type Cache struct {
	MaxMebibytes    int `toml:"max_mebibytes"`
	LoadConcurrency int `toml:"load_concurrency"`
}

// History configures the on-disk synthesis history store.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Synthesis Synthesis `toml:"synthesis"`
	Cache     Cache     `toml:"cache"`
	History   History   `toml:"history"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the expanded default configuration location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/specgrid/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. It reports the
// resolved path and whether a file actually existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("SPECGRID_GRID_DIR"); ok && strings.TrimSpace(v) != "" {
		c.Paths.GridDir = v
	}
	if v, ok := os.LookupEnv("SPECGRID_ABS_GRID_DIR"); ok && strings.TrimSpace(v) != "" {
		c.Paths.AbsGridDir = v
	}
	if v, ok := os.LookupEnv("SPECGRID_LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = v
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("specgrid.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories specgrid writes to. The grid
// directories are deliberately not created here: an empty grid directory is
// a configuration problem, not something to paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir, c.Paths.DataDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// GridDirFor returns the grid directory for the given spectra kind.
// Absolute-flux grids live separately from relative (normalized) grids.
func (c *Config) GridDirFor(absolute bool) string {
	if absolute {
		return c.Paths.AbsGridDir
	}
	return c.Paths.GridDir
}
