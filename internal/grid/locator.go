package grid

import (
	"fmt"
	"log/slog"
	"sort"

	"specgrid/internal/logging"
)

// ClampPolicy controls what happens when a parameter falls outside the
// grid's covered range.
type ClampPolicy int

const (
	// ClampToEdge moves the coordinate to the boundary node and flags the
	// result. Interpolation then degenerates to the boundary spectrum, so
	// extrapolation beyond the grid stays flat.
	ClampToEdge ClampPolicy = iota
	// FailOutOfRange rejects out-of-range coordinates with ErrOutOfRange.
	FailOutOfRange
)

// ParseClampPolicy maps the config spelling to a policy.
func ParseClampPolicy(value string) (ClampPolicy, error) {
	switch value {
	case "clamp", "":
		return ClampToEdge, nil
	case "error":
		return FailOutOfRange, nil
	default:
		return ClampToEdge, fmt.Errorf("unknown clamp policy %q", value)
	}
}

// CellLocator maps parameter points to interpolation cells over a fixed
// set of axes.
type CellLocator struct {
	axes   []Axis
	policy ClampPolicy
	logger *slog.Logger
}

// NewCellLocator builds a locator over the catalog's axes.
func NewCellLocator(axes []Axis, policy ClampPolicy, logger *slog.Logger) *CellLocator {
	return &CellLocator{
		axes:   axes,
		policy: policy,
		logger: logging.NewComponentLogger(logger, "locator"),
	}
}

// Locate selects, per axis, the order+1 node values nearest-centered on the
// query coordinate and returns them as an interpolation cell.
//
// A coordinate exactly on a node collapses that axis to a single node. A
// coordinate outside the axis range is either clamped to the boundary node
// (recorded in Cell.ClampedAxes and warned about) or rejected, depending on
// the policy.
func (l *CellLocator) Locate(point Point, order int) (*Cell, error) {
	if len(point) != len(l.axes) {
		return nil, fmt.Errorf("parameter point has %d coordinates, grid has %d axes", len(point), len(l.axes))
	}
	if order < 1 {
		return nil, fmt.Errorf("interpolation order must be at least 1, got %d", order)
	}

	cell := &Cell{Selections: make([]AxisSelection, len(l.axes))}
	for i, axis := range l.axes {
		selection, clamped, err := l.selectAlongAxis(axis, point[i], order)
		if err != nil {
			return nil, err
		}
		if clamped {
			cell.ClampedAxes = append(cell.ClampedAxes, axis.Name)
			l.logger.Warn("parameter clamped to grid boundary",
				logging.String(logging.FieldAxis, axis.Name),
				logging.Float64("requested", point[i]),
				logging.Float64("used", selection.X))
		}
		cell.Selections[i] = selection
	}
	return cell, nil
}

func (l *CellLocator) selectAlongAxis(axis Axis, x float64, order int) (AxisSelection, bool, error) {
	nodes := axis.Nodes

	clamped := false
	if x < axis.Min() || x > axis.Max() {
		if l.policy == FailOutOfRange {
			return AxisSelection{}, false, fmt.Errorf("%w: axis %q value %g outside [%g, %g]",
				ErrOutOfRange, axis.Name, x, axis.Min(), axis.Max())
		}
		clamped = true
		if x < axis.Min() {
			x = axis.Min()
		} else {
			x = axis.Max()
		}
	}

	// Exact node hit: the axis degenerates to that single node and its
	// weight concentrates fully there. This takes precedence over the
	// order check so single-value axes (POLLUX has one metallicity) stay
	// usable at any order.
	idx := sort.SearchFloat64s(nodes, x)
	if idx < len(nodes) && nodes[idx] == x {
		return AxisSelection{Axis: axis.Name, X: x, Values: []float64{x}}, clamped, nil
	}

	if len(nodes) < order+1 {
		return AxisSelection{}, false, fmt.Errorf("%w: axis %q has %d nodes, order %d needs %d",
			ErrInsufficientNodes, axis.Name, len(nodes), order, order+1)
	}

	// idx now points at the first node above x, so the bracketing pair is
	// (idx-1, idx). Grow the window to order+1 nodes centered on the
	// bracket, biasing upward on ties, then clamp at the grid edges.
	lo := idx - 1 - (order-1)/2
	if lo < 0 {
		lo = 0
	}
	if lo > len(nodes)-(order+1) {
		lo = len(nodes) - (order + 1)
	}
	values := make([]float64, order+1)
	copy(values, nodes[lo:lo+order+1])

	return AxisSelection{Axis: axis.Name, X: x, Values: values}, clamped, nil
}
