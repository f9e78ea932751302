package interp

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"specgrid/internal/grid"
	"specgrid/internal/logging"
	"specgrid/internal/spectrum"
)

// Interpolator combines the node spectra of an interpolation cell into one
// synthetic spectrum on the cell's common wavelength axis.
type Interpolator struct {
	loader      *spectrum.Loader
	logger      *slog.Logger
	concurrency int
}

// New builds an interpolator that loads node spectra through the given
// loader, at most concurrency at a time.
func New(loader *spectrum.Loader, logger *slog.Logger, concurrency int) *Interpolator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Interpolator{
		loader:      loader,
		logger:      logging.NewComponentLogger(logger, "interp"),
		concurrency: concurrency,
	}
}

// Combine loads every node spectrum of the cell, aligns them onto a shared
// wavelength axis, and sums them with tensor-product Lagrange weights.
//
// A point exactly on a grid node yields the node spectrum unchanged: each
// degenerate axis contributes a single weight of 1.
func (it *Interpolator) Combine(ctx context.Context, cell *grid.Cell) (*spectrum.Raw, error) {
	nodes, _ := cell.Nodes()

	axisWeights := make([]AxisWeights, len(cell.Selections))
	for d, sel := range cell.Selections {
		axisWeights[d] = AxisWeights{
			Axis:    sel.Axis,
			Weights: LagrangeWeights(sel.Values, sel.X),
		}
	}
	weights := CellWeights(axisWeights)

	spectra := make([]*spectrum.Raw, len(nodes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(it.concurrency)
	for i, values := range nodes {
		i, values := i, values
		group.Go(func() error {
			raw, err := it.loader.Load(groupCtx, grid.MakeNodeKey(values))
			if err != nil {
				return err
			}
			spectra[i] = raw
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	wave, aligned, err := alignSpectra(spectra)
	if err != nil {
		return nil, err
	}

	flux := make([]float64, len(wave))
	for k := range aligned {
		w := weights[k]
		if w == 0 {
			continue
		}
		for i, v := range aligned[k] {
			flux[i] += w * v
		}
	}

	it.logger.Debug("cell combined",
		logging.Int("nodes", len(nodes)),
		logging.Int("points", len(wave)))

	return &spectrum.Raw{Wave: wave, Flux: flux}, nil
}

// alignSpectra returns a wavelength axis shared by all spectra and each
// spectrum's intensity on it. Pre-aligned grids pass through untouched;
// otherwise every spectrum is resampled linearly onto the finest member
// axis restricted to the common coverage.
func alignSpectra(spectra []*spectrum.Raw) ([]float64, [][]float64, error) {
	if len(spectra) == 0 {
		return nil, nil, fmt.Errorf("no spectra to align")
	}

	if sharedAxis(spectra) {
		flux := make([][]float64, len(spectra))
		for i, raw := range spectra {
			flux[i] = raw.Flux
		}
		return spectra[0].Wave, flux, nil
	}

	lo := spectra[0].Wave[0]
	hi := spectra[0].Wave[len(spectra[0].Wave)-1]
	for _, raw := range spectra[1:] {
		if min := raw.Wave[0]; min > lo {
			lo = min
		}
		if max := raw.Wave[len(raw.Wave)-1]; max < hi {
			hi = max
		}
	}
	if lo >= hi {
		return nil, nil, fmt.Errorf("cell spectra share no wavelength coverage")
	}

	finest := finestAxis(spectra)
	wave := cropAxis(finest, lo, hi)
	if len(wave) < 2 {
		return nil, nil, fmt.Errorf("common wavelength coverage [%g, %g] too narrow", lo, hi)
	}

	flux := make([][]float64, len(spectra))
	for i, raw := range spectra {
		flux[i] = ResampleLinear(raw.Wave, raw.Flux, wave)
	}
	return wave, flux, nil
}

func sharedAxis(spectra []*spectrum.Raw) bool {
	first := spectra[0].Wave
	for _, raw := range spectra[1:] {
		if len(raw.Wave) != len(first) {
			return false
		}
		for i := range first {
			if raw.Wave[i] != first[i] {
				return false
			}
		}
	}
	return true
}

// finestAxis picks the member axis with the smallest mean step.
func finestAxis(spectra []*spectrum.Raw) []float64 {
	best := spectra[0].Wave
	bestStep := meanStep(best)
	for _, raw := range spectra[1:] {
		if step := meanStep(raw.Wave); step < bestStep {
			best = raw.Wave
			bestStep = step
		}
	}
	return best
}

func meanStep(wave []float64) float64 {
	return (wave[len(wave)-1] - wave[0]) / float64(len(wave)-1)
}

func cropAxis(wave []float64, lo, hi float64) []float64 {
	var out []float64
	for _, w := range wave {
		if w < lo || w > hi {
			continue
		}
		out = append(out, w)
	}
	return out
}
