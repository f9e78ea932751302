package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"config", "validate"})
	if err != nil {
		t.Fatalf("config validate: %v\n%s", err, out)
	}
	requireContains(t, out, "is valid")

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, err = runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if out, err := runCLI(t, []string{"config", "init", "--path", target}); err == nil {
		t.Fatalf("expected overwrite refusal\n%s", out)
	}

	if out, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}); err != nil {
		t.Fatalf("config init --overwrite: %v\n%s", err, out)
	}
}

func TestConfigShow(t *testing.T) {
	setupCLITestEnv(t)

	out, err := runCLI(t, []string{"config", "show"})
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	requireContains(t, out, "loaded from")
	requireContains(t, out, "[synthesis]")
	requireContains(t, out, "order = 4")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, []string{"version"})
	if err != nil {
		t.Fatalf("version: %v\n%s", err, out)
	}
	requireContains(t, out, "specgrid")
}
