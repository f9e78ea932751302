package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"specgrid/internal/logging"
)

// Catalog exposes the axes of one grid mode and the lookup from node keys
// to spectrum files. It is built once and read-only afterwards.
type Catalog struct {
	mode  Mode
	axes  []Axis
	files map[NodeKey]string
}

type catalogEntry struct {
	values []float64
	path   string
	family string
}

// Open scans the gridlist files of every directory the mode references and
// assembles the catalog. Directories missing on disk are skipped with a
// warning so partial grid installs stay usable; an install with no
// directories at all is an error.
func Open(dir string, mode Mode, logger *slog.Logger) (*Catalog, error) {
	logger = logging.NewComponentLogger(logger, "catalog")

	var entries []catalogEntry
	found := 0
	for i, sub := range mode.Directories {
		family := mode.Families[i]
		listPath := filepath.Join(dir, sub, GridListFile)
		dirEntries, err := readGridList(listPath, family)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("grid directory missing, skipping",
					logging.String(logging.FieldMode, mode.Name),
					logging.String("directory", sub))
				continue
			}
			return nil, err
		}
		found++
		entries = append(entries, dirEntries...)
	}
	if found == 0 {
		return nil, fmt.Errorf("grid mode %q: no grid directories found under %s", mode.Name, dir)
	}

	// Lower family rank wins when several families provide the same node.
	sort.SliceStable(entries, func(i, j int) bool {
		return mode.familyRank(entries[i].family) < mode.familyRank(entries[j].family)
	})

	files := make(map[NodeKey]string, len(entries))
	nodeSets := make([]map[float64]struct{}, len(AxisNames))
	for i := range nodeSets {
		nodeSets[i] = make(map[float64]struct{})
	}
	for _, entry := range entries {
		key := MakeNodeKey(entry.values)
		if _, taken := files[key]; !taken {
			files[key] = entry.path
		}
		for i, v := range entry.values {
			nodeSets[i][v] = struct{}{}
		}
	}

	axes := make([]Axis, len(AxisNames))
	for i, name := range AxisNames {
		nodes := make([]float64, 0, len(nodeSets[i]))
		for v := range nodeSets[i] {
			nodes = append(nodes, v)
		}
		sort.Float64s(nodes)
		axes[i] = Axis{Name: name, Nodes: nodes}
	}

	logger.Debug("catalog loaded",
		logging.String(logging.FieldMode, mode.Name),
		logging.Int("nodes", len(files)))

	return &Catalog{mode: mode, axes: axes, files: files}, nil
}

func readGridList(path, family string) ([]catalogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dir := filepath.Dir(path)
	wantFields := 1 + len(AxisNames)

	var entries []catalogEntry
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != wantFields {
			return nil, fmt.Errorf("gridlist %s line %d: want %d columns, got %d", path, line, wantFields, len(fields))
		}
		values := make([]float64, len(AxisNames))
		numeric := true
		for i := range AxisNames {
			v, parseErr := strconv.ParseFloat(fields[i+1], 64)
			if parseErr != nil {
				numeric = false
				break
			}
			values[i] = v
		}
		if !numeric {
			if line == 1 {
				// Header row naming the columns.
				continue
			}
			return nil, fmt.Errorf("gridlist %s line %d: non-numeric coordinates", path, line)
		}
		entries = append(entries, catalogEntry{
			values: values,
			path:   filepath.Join(dir, fields[0]),
			family: family,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gridlist %s: %w", path, err)
	}
	return entries, nil
}

// Mode returns the mode this catalog was built for.
func (c *Catalog) Mode() Mode { return c.mode }

// Axes returns the ordered axis definitions. Callers must not mutate them.
func (c *Catalog) Axes() []Axis { return c.axes }

// NodeCount reports how many distinct grid nodes the catalog covers.
func (c *Catalog) NodeCount() int { return len(c.files) }

// Locate resolves a node key to the spectrum file backing it.
func (c *Catalog) Locate(key NodeKey) (string, error) {
	path, ok := c.files[key]
	if !ok {
		return "", fmt.Errorf("%w: mode %q key %s", ErrMissingNode, c.mode.Name, key)
	}
	return path, nil
}
