package spectrum

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadFile parses a two-column (wavelength, intensity) text spectrum.
// Blank lines and lines starting with '#' are skipped. Format problems are
// reported as ErrCorruptGridFile; plain I/O failures propagate as-is.
func ReadFile(path string) (*Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spectrum: %w", err)
	}
	defer file.Close()

	raw := &Raw{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: %s line %d: want 2 columns, got %d", ErrCorruptGridFile, path, line, len(fields))
		}
		wave, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: bad wavelength %q", ErrCorruptGridFile, path, line, fields[0])
		}
		flux, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: bad intensity %q", ErrCorruptGridFile, path, line, fields[1])
		}
		raw.Wave = append(raw.Wave, wave)
		raw.Flux = append(raw.Flux, flux)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read spectrum %s: %w", path, err)
	}

	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}
