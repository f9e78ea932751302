package grid

import (
	"fmt"
	"sort"
	"strings"
)

// GridListFile is the per-directory index file naming each spectrum and its
// node coordinates. Columns: FILENAME TEFF LOGG Z.
const GridListFile = "gridlist"

// AxisNames is the axis order shared by every registered grid mode.
var AxisNames = []string{"teff", "logg", "z"}

// Mode describes one registered grid configuration: which grid
// subdirectories participate, the family each belongs to, and the family
// precedence used when several families cover the same node.
type Mode struct {
	Name        string
	Absolute    bool
	Directories []string
	Families    []string
	Precedence  []string
}

// Registered relative-spectra grids, matching the published grid layout.
var relativeModes = []Mode{
	{
		Name: "default",
		Directories: []string{
			"OSTAR_Z_0.5", "OSTAR_Z_1.0", "OSTAR_Z_2.0",
			"BSTAR_Z_0.5", "BSTAR_Z_1.0", "BSTAR_Z_2.0",
			"POLLUX_Z_1.0", "AMBRE_Z_1.0",
		},
		Families: []string{
			"OSTAR", "OSTAR", "OSTAR",
			"BSTAR", "BSTAR", "BSTAR",
			"POLLUX", "AMBRE",
		},
		Precedence: []string{"BSTAR", "OSTAR", "AMBRE", "POLLUX"},
	},
	{
		Name:        "ostar",
		Directories: []string{"OSTAR_Z_0.5", "OSTAR_Z_1.0", "OSTAR_Z_2.0"},
		Families:    []string{"OSTAR", "OSTAR", "OSTAR"},
		Precedence:  []string{"OSTAR"},
	},
	{
		Name:        "bstar",
		Directories: []string{"BSTAR_Z_0.5", "BSTAR_Z_1.0", "BSTAR_Z_2.0"},
		Families:    []string{"BSTAR", "BSTAR", "BSTAR"},
		Precedence:  []string{"BSTAR"},
	},
	{
		Name:        "pollux",
		Directories: []string{"POLLUX_Z_1.0"},
		Families:    []string{"POLLUX"},
		Precedence:  []string{"POLLUX"},
	},
	{
		Name:        "ambre",
		Directories: []string{"AMBRE_Z_1.0"},
		Families:    []string{"AMBRE"},
		Precedence:  []string{"AMBRE"},
	},
	{
		Name:        "powr",
		Directories: []string{"POWR_Z_1.0"},
		Families:    []string{"POWR"},
		Precedence:  []string{"POWR"},
	},
}

// Registered absolute-flux grids. POLLUX is excluded from the default mode
// because its wavelength coverage is too narrow.
var absoluteModes = []Mode{
	{
		Name:        "default",
		Absolute:    true,
		Directories: []string{"OSTAR_Z_1.0", "BSTAR_Z_1.0", "PHOENIX_Z_1.0"},
		Families:    []string{"OSTAR", "BSTAR", "PHOENIX"},
		Precedence:  []string{"BSTAR", "OSTAR", "PHOENIX"},
	},
	{
		Name:        "pollux",
		Absolute:    true,
		Directories: []string{"OSTAR_Z_1.0", "BSTAR_Z_1.0", "PHOENIX_Z_1.0", "POLLUX_Z_1.0"},
		Families:    []string{"OSTAR", "BSTAR", "PHOENIX", "POLLUX"},
		Precedence:  []string{"BSTAR", "OSTAR", "PHOENIX", "POLLUX"},
	},
	{
		Name:        "bstar",
		Absolute:    true,
		Directories: []string{"BSTAR_Z_1.0"},
		Families:    []string{"BSTAR"},
		Precedence:  []string{"BSTAR"},
	},
	{
		Name:        "phoenix",
		Absolute:    true,
		Directories: []string{"PHOENIX_Z_1.0"},
		Families:    []string{"PHOENIX"},
		Precedence:  []string{"PHOENIX"},
	},
}

// LookupMode resolves a mode name within the relative or absolute registry.
func LookupMode(name string, absolute bool) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, mode := range modes(absolute) {
		if mode.Name == name {
			return mode, nil
		}
	}
	kind := "relative"
	if absolute {
		kind = "absolute"
	}
	return Mode{}, fmt.Errorf("%w: %q (%s grids)", ErrUnknownMode, name, kind)
}

// ModeNames lists the registered mode names, sorted.
func ModeNames(absolute bool) []string {
	registered := modes(absolute)
	names := make([]string, 0, len(registered))
	for _, mode := range registered {
		names = append(names, mode.Name)
	}
	sort.Strings(names)
	return names
}

func modes(absolute bool) []Mode {
	if absolute {
		return absoluteModes
	}
	return relativeModes
}

// familyRank returns the precedence index of a family within the mode,
// lower winning. Families outside the precedence list sort last.
func (m Mode) familyRank(family string) int {
	for i, name := range m.Precedence {
		if name == family {
			return i
		}
	}
	return len(m.Precedence)
}
