package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Axis is a named grid dimension with its ordered, distinct node values.
type Axis struct {
	Name  string
	Nodes []float64
}

// Contains reports whether value is an exact node of the axis.
func (a Axis) Contains(value float64) bool {
	idx := sort.SearchFloat64s(a.Nodes, value)
	return idx < len(a.Nodes) && a.Nodes[idx] == value
}

// Min returns the lowest node value.
func (a Axis) Min() float64 { return a.Nodes[0] }

// Max returns the highest node value.
func (a Axis) Max() float64 { return a.Nodes[len(a.Nodes)-1] }

// Point is an ordered tuple of parameter coordinates, one per grid axis.
type Point []float64

// NodeKey canonically identifies a grid node by its exact axis values. It
// doubles as a map key for catalog lookups and the spectrum cache.
type NodeKey string

// MakeNodeKey builds a NodeKey from exact axis values in axis order.
func MakeNodeKey(values []float64) NodeKey {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return NodeKey(strings.Join(parts, "/"))
}

// Values parses the key back into axis values.
func (k NodeKey) Values() ([]float64, error) {
	parts := strings.Split(string(k), "/")
	values := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("node key %q: %w", k, err)
		}
		values[i] = v
	}
	return values, nil
}
