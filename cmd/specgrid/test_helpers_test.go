package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"specgrid/internal/config"
	"specgrid/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv isolates the default config location under a fake HOME,
// writes a config there, and installs a small BSTAR fixture grid.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SPECGRID_GRID_DIR", "")
	t.Setenv("SPECGRID_ABS_GRID_DIR", "")
	t.Setenv("SPECGRID_LOG_LEVEL", "")

	cfg := testsupport.NewConfig(t)
	wave := testsupport.UniformWave(4150, 4650, 0.5)
	nodes := testsupport.BStarNodes(wave,
		[]float64{15000, 16000, 17000, 18000, 19000, 20000},
		[]float64{3.0, 3.5, 4.0, 4.5, 5.0},
		1.0)
	testsupport.WriteGridDir(t, cfg.Paths.GridDir, "BSTAR_Z_1.0", nodes)

	configPath := filepath.Join(homeDir, ".config", "specgrid", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}
