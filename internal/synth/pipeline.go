package synth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"specgrid/internal/airvac"
	"specgrid/internal/broaden"
	"specgrid/internal/config"
	"specgrid/internal/grid"
	"specgrid/internal/interp"
	"specgrid/internal/logging"
	"specgrid/internal/resample"
	"specgrid/internal/spectrum"
)

// Synthesizer executes synthesis requests. Catalogs and their spectrum
// caches are built once per grid mode and shared across requests, so
// repeated syntheses against the same mode reuse loaded node spectra.
type Synthesizer struct {
	cfg    *config.Config
	logger *slog.Logger

	mu       sync.Mutex
	catalogs map[string]*modeState
}

type modeState struct {
	catalog *grid.Catalog
	interp  *interp.Interpolator
}

// New builds a synthesizer over the configured grid directories.
func New(cfg *config.Config, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "synth"),
		catalogs: make(map[string]*modeState),
	}
}

// Catalog opens (or returns the cached) catalog for a grid mode.
func (s *Synthesizer) Catalog(mode string, absolute bool) (*grid.Catalog, error) {
	state, err := s.modeState(mode, absolute)
	if err != nil {
		return nil, err
	}
	return state.catalog, nil
}

func (s *Synthesizer) modeState(name string, absolute bool) (*modeState, error) {
	key := name + "/" + strconv.FormatBool(absolute)

	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.catalogs[key]; ok {
		return state, nil
	}

	mode, err := grid.LookupMode(name, absolute)
	if err != nil {
		return nil, err
	}
	catalog, err := grid.Open(s.cfg.GridDirFor(absolute), mode, s.logger)
	if err != nil {
		return nil, err
	}

	loader := spectrum.NewLoader(catalog, s.logger,
		spectrum.WithMaxBytes(int64(s.cfg.Cache.MaxMebibytes)<<20))
	state := &modeState{
		catalog: catalog,
		interp:  interp.New(loader, s.logger, s.cfg.Cache.LoadConcurrency),
	}
	s.catalogs[key] = state
	return state, nil
}

// Synthesize runs the full pipeline for one request.
//
// Flow: locate the interpolation cell, combine the node spectra, resample
// onto the padded window, apply rotational broadening (which crops the
// padding away), and convert the wavelength scale if air output was
// requested.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*spectrum.Synthetic, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	requestID := uuid.NewString()
	started := time.Now()
	s.logger.Info("synthesis started",
		logging.String(logging.FieldRequestID, requestID),
		logging.String(logging.FieldMode, req.Mode),
		logging.Any("point", []float64(req.Point)),
		logging.Float64("low", req.Low),
		logging.Float64("high", req.High))

	state, err := s.modeState(req.Mode, req.Absolute)
	if err != nil {
		return nil, err
	}

	policy, err := grid.ParseClampPolicy(req.ClampPolicy)
	if err != nil {
		return nil, err
	}
	locator := grid.NewCellLocator(state.catalog.Axes(), policy, s.logger)
	cell, err := locator.Locate(req.Point, req.Order)
	if err != nil {
		return nil, err
	}

	native, err := state.interp.Combine(ctx, cell)
	if err != nil {
		return nil, err
	}

	window := resample.Window{Low: req.Low, High: req.High, Step: req.Step, Padding: req.Padding}
	padded, err := resample.Resample(native, window)
	if err != nil {
		return nil, err
	}

	broadener := broaden.New(req.VRot, req.LimbDarkening, s.cfg.Synthesis.VRotThreshold, s.logger)
	out, err := broadener.Broaden(padded, window)
	if err != nil {
		return nil, err
	}

	wave := out.Wave
	if req.WavelengthScale == "air" {
		coeffs, err := airvac.Lookup(req.AirCoefficients)
		if err != nil {
			return nil, err
		}
		wave, err = airvac.ConvertAxis(out.Wave, coeffs.VacuumToAir)
		if err != nil {
			return nil, err
		}
	}

	axes := state.catalog.Axes()
	axisNames := make([]string, len(axes))
	for i, axis := range axes {
		axisNames[i] = axis.Name
	}

	result := &spectrum.Synthetic{
		Wave: wave,
		Flux: out.Flux,
		Meta: spectrum.Meta{
			RequestID:       requestID,
			Mode:            req.Mode,
			Absolute:        req.Absolute,
			Point:           append([]float64(nil), req.Point...),
			AxisNames:       axisNames,
			WMin:            req.Low,
			WMax:            req.High,
			Step:            req.Step,
			Padding:         req.Padding,
			Order:           req.Order,
			VRot:            req.VRot,
			LimbDarkening:   req.LimbDarkening,
			WavelengthScale: req.WavelengthScale,
			ClampedAxes:     append([]string(nil), cell.ClampedAxes...),
			CreatedAt:       time.Now().UTC(),
		},
	}

	s.logger.Info("synthesis finished",
		logging.String(logging.FieldRequestID, requestID),
		logging.Int("points", len(result.Wave)),
		logging.Duration("elapsed", time.Since(started)))

	return result, nil
}
