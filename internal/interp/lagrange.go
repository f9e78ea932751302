package interp

// LagrangeWeights returns the Lagrange basis weights for the node values xs
// evaluated at x: weight i is the product over j != i of (x-xs[j]) /
// (xs[i]-xs[j]). The weights of any valid node set sum to 1; a single node
// contributes weight 1 trivially.
//
// xs must hold distinct values; the cell locator guarantees that.
func LagrangeWeights(xs []float64, x float64) []float64 {
	weights := make([]float64, len(xs))
	if len(xs) == 1 {
		weights[0] = 1
		return weights
	}
	for i, xi := range xs {
		w := 1.0
		for j, xj := range xs {
			if j == i {
				continue
			}
			w *= (x - xj) / (xi - xj)
		}
		weights[i] = w
	}
	return weights
}

// CellWeights expands per-axis Lagrange weights into the tensor-product
// weight of every node combination, in the same order as Cell.Nodes. The
// weight of a combination is the product of its per-axis weights.
func CellWeights(selections []AxisWeights) []float64 {
	total := 1
	for _, sel := range selections {
		total *= len(sel.Weights)
	}
	weights := make([]float64, 0, total)

	idx := make([]int, len(selections))
	for {
		w := 1.0
		for d := range selections {
			w *= selections[d].Weights[idx[d]]
		}
		weights = append(weights, w)

		d := len(selections) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < len(selections[d].Weights) {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			break
		}
	}
	return weights
}

// AxisWeights pairs an axis name with its per-node Lagrange weights.
type AxisWeights struct {
	Axis    string
	Weights []float64
}
