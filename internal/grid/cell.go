package grid

// AxisSelection holds the node values chosen along one axis and the
// coordinate the interpolating polynomial is evaluated at. A single-value
// selection means the coordinate sits exactly on a node and that axis
// degenerates to a pass-through.
type AxisSelection struct {
	Axis   string
	X      float64
	Values []float64
}

// Cell is the hyper-rectangle of grid nodes feeding one interpolation:
// one selection per axis, expanded combinatorially into node keys.
type Cell struct {
	Selections []AxisSelection
	// ClampedAxes names the axes whose coordinate was moved to the grid
	// boundary. Empty for fully interior points.
	ClampedAxes []string
}

// NodeCount returns the number of node combinations in the cell.
func (c *Cell) NodeCount() int {
	count := 1
	for _, sel := range c.Selections {
		count *= len(sel.Values)
	}
	return count
}

// Nodes expands the per-axis selections into the full Cartesian product of
// node coordinate tuples, in row-major order (last axis fastest). The
// parallel index tuples address each axis's Values slice.
func (c *Cell) Nodes() ([][]float64, [][]int) {
	dims := len(c.Selections)
	total := c.NodeCount()

	values := make([][]float64, 0, total)
	indices := make([][]int, 0, total)

	idx := make([]int, dims)
	for {
		value := make([]float64, dims)
		index := make([]int, dims)
		for d := 0; d < dims; d++ {
			value[d] = c.Selections[d].Values[idx[d]]
			index[d] = idx[d]
		}
		values = append(values, value)
		indices = append(indices, index)

		d := dims - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < len(c.Selections[d].Values) {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			break
		}
	}
	return values, indices
}
