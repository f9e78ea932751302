package spectrum_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"specgrid/internal/spectrum"
)

func writeSpectrumFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.dat")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFileParsesTwoColumns(t *testing.T) {
	path := writeSpectrumFile(t, "# header\n4000.0 0.98\n4000.5 0.97\n\n4001.0 0.99\n")
	raw, err := spectrum.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw.Wave) != 3 {
		t.Fatalf("want 3 samples, got %d", len(raw.Wave))
	}
	if raw.Wave[1] != 4000.5 || raw.Flux[1] != 0.97 {
		t.Fatalf("unexpected sample: %g %g", raw.Wave[1], raw.Flux[1])
	}
}

func TestReadFileRejectsCorruptContent(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"single column", "4000.0\n"},
		{"bad wavelength", "abc 0.98\n"},
		{"bad intensity", "4000.0 xyz\n"},
		{"non increasing", "4000.0 0.98\n4000.0 0.97\n"},
		{"decreasing", "4001.0 0.98\n4000.0 0.97\n"},
		{"empty", "# nothing\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSpectrumFile(t, tc.body)
			_, err := spectrum.ReadFile(path)
			if !errors.Is(err, spectrum.ErrCorruptGridFile) {
				t.Fatalf("expected ErrCorruptGridFile, got %v", err)
			}
		})
	}
}

func TestReadFileMissingFileIsNotCorrupt(t *testing.T) {
	_, err := spectrum.ReadFile(filepath.Join(t.TempDir(), "absent.dat"))
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, spectrum.ErrCorruptGridFile) {
		t.Fatalf("missing file must not classify as corrupt: %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain: %v", err)
	}
}
