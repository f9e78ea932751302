package grid

import "errors"

var (
	// ErrUnknownMode is returned for grid modes absent from the registry.
	ErrUnknownMode = errors.New("unknown grid mode")

	// ErrMissingNode is returned when no spectrum file exists for an
	// exactly-matching node key. This is a data-availability problem, not a
	// coordinate problem.
	ErrMissingNode = errors.New("grid node not available")

	// ErrOutOfRange is returned when a parameter falls outside the grid and
	// the clamp policy forbids recovery.
	ErrOutOfRange = errors.New("parameter outside grid range")

	// ErrInsufficientNodes is returned when an axis has fewer distinct node
	// values than the requested interpolation order needs.
	ErrInsufficientNodes = errors.New("not enough grid nodes for requested order")
)
