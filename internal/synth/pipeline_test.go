package synth_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"specgrid/internal/broaden"
	"specgrid/internal/grid"
	"specgrid/internal/logging"
	"specgrid/internal/synth"
	"specgrid/internal/testsupport"
)

// newSynthesizer builds a synthesizer over a BSTAR-style fixture grid with
// linear intensities, wide enough for an order-4 request with the default
// 20 A padding.
func newSynthesizer(t *testing.T) *synth.Synthesizer {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	wave := testsupport.UniformWave(4150, 4650, 0.5)
	nodes := testsupport.BStarNodes(wave,
		[]float64{15000, 16000, 17000, 18000, 19000, 20000},
		[]float64{3.0, 3.5, 4.0, 4.5, 5.0},
		1.0)
	testsupport.WriteGridDir(t, cfg.Paths.GridDir, "BSTAR_Z_1.0", nodes)

	return synth.New(cfg, logging.NewNop())
}

func baseRequest() synth.Request {
	return synth.Request{
		Mode:            "bstar",
		Point:           grid.Point{16500, 3.75, 1.0},
		Low:             4200,
		High:            4600,
		Step:            0.01,
		Padding:         20,
		Order:           4,
		LimbDarkening:   0.6,
		WavelengthScale: "vacuum",
		ClampPolicy:     "clamp",
	}
}

func linearFluxAt(teff, logg, z, w float64) float64 {
	return 1e-4*teff + 0.1*logg + 0.5*z + 1e-3*w
}

func TestSynthesizeExampleWindow(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()

	out, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(out.Wave) != 40001 {
		t.Fatalf("point count: got %d, want 40001", len(out.Wave))
	}
	if out.Wave[0] != 4200 || math.Abs(out.Wave[len(out.Wave)-1]-4600) > 1e-9 {
		t.Fatalf("window bounds: [%g, %g]", out.Wave[0], out.Wave[len(out.Wave)-1])
	}
	// Linear intensities interpolate exactly at any order.
	for i, w := range out.Wave {
		want := linearFluxAt(16500, 3.75, 1.0, w)
		if math.Abs(out.Flux[i]-want) > 1e-9 {
			t.Fatalf("flux at %g: got %g, want %g", w, out.Flux[i], want)
		}
	}
}

func TestSynthesizeIdentityAtNode(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()
	req.Point = grid.Point{17000, 4.0, 1.0}

	out, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for i, w := range out.Wave {
		want := linearFluxAt(17000, 4.0, 1.0, w)
		if math.Abs(out.Flux[i]-want) > 1e-9 {
			t.Fatalf("node spectrum not reproduced at %g: got %g, want %g", w, out.Flux[i], want)
		}
	}
}

func TestSynthesizeMetadata(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()
	req.VRot = 20

	out, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	meta := out.Meta
	if meta.RequestID == "" {
		t.Fatal("request id not assigned")
	}
	if meta.Mode != "bstar" || meta.Absolute {
		t.Fatalf("mode metadata: %q absolute=%v", meta.Mode, meta.Absolute)
	}
	if meta.WMin != 4200 || meta.WMax != 4600 || meta.Step != 0.01 || meta.Padding != 20 {
		t.Fatalf("window metadata: %+v", meta)
	}
	if meta.Order != 4 || meta.VRot != 20 || meta.LimbDarkening != 0.6 {
		t.Fatalf("processing metadata: %+v", meta)
	}
	if len(meta.AxisNames) != 3 || meta.AxisNames[0] != "teff" {
		t.Fatalf("axis names: %v", meta.AxisNames)
	}
	if meta.Clamped() {
		t.Fatalf("unexpected clamp flags: %v", meta.ClampedAxes)
	}
	if meta.CreatedAt.IsZero() {
		t.Fatal("creation timestamp not set")
	}

	second, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if second.Meta.RequestID == meta.RequestID {
		t.Fatal("request ids must be unique per synthesis")
	}
}

func TestSynthesizeClampsBelowGrid(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()
	req.Point = grid.Point{14000, 3.75, 1.0}

	out, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !out.Meta.Clamped() || out.Meta.ClampedAxes[0] != "teff" {
		t.Fatalf("clamp not recorded: %v", out.Meta.ClampedAxes)
	}
	// Flat extrapolation: the result matches the boundary temperature.
	for i, w := range out.Wave {
		want := linearFluxAt(15000, 3.75, 1.0, w)
		if math.Abs(out.Flux[i]-want) > 1e-9 {
			t.Fatalf("expected boundary spectrum at %g: got %g, want %g", w, out.Flux[i], want)
		}
	}
}

func TestSynthesizeFailsOutOfRangeWithErrorPolicy(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()
	req.Point = grid.Point{14000, 3.75, 1.0}
	req.ClampPolicy = "error"

	_, err := s.Synthesize(context.Background(), req)
	if !errors.Is(err, grid.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestSynthesizeAirScale(t *testing.T) {
	s := newSynthesizer(t)
	vac := baseRequest()
	air := baseRequest()
	air.WavelengthScale = "air"

	vacOut, err := s.Synthesize(context.Background(), vac)
	if err != nil {
		t.Fatal(err)
	}
	airOut, err := s.Synthesize(context.Background(), air)
	if err != nil {
		t.Fatal(err)
	}
	for i := range airOut.Wave {
		shift := vacOut.Wave[i] - airOut.Wave[i]
		if shift < 1.0 || shift > 2.0 {
			t.Fatalf("implausible air shift %g at index %d", shift, i)
		}
		if airOut.Flux[i] != vacOut.Flux[i] {
			t.Fatal("scale conversion must not touch intensities")
		}
	}
	if airOut.Meta.WavelengthScale != "air" {
		t.Fatalf("scale metadata: %q", airOut.Meta.WavelengthScale)
	}
}

func TestSynthesizeBroadeningPreservesLinearFlux(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()
	req.VRot = 30

	out, err := s.Synthesize(context.Background(), req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	// A symmetric unit-area kernel leaves a linear intensity unchanged.
	for i, w := range out.Wave {
		want := linearFluxAt(16500, 3.75, 1.0, w)
		if math.Abs(out.Flux[i]-want) > 1e-6 {
			t.Fatalf("broadening distorted linear flux at %g: got %g, want %g", w, out.Flux[i], want)
		}
	}
}

func TestSynthesizeKernelRange(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()
	req.Padding = 0.05
	req.VRot = 12.6

	_, err := s.Synthesize(context.Background(), req)
	if !errors.Is(err, broaden.ErrKernelRange) {
		t.Fatalf("expected ErrKernelRange, got %v", err)
	}
}

func TestSynthesizeUnknownMode(t *testing.T) {
	s := newSynthesizer(t)
	req := baseRequest()
	req.Mode = "marcs"

	_, err := s.Synthesize(context.Background(), req)
	if !errors.Is(err, grid.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*synth.Request)
	}{
		{"empty mode", func(r *synth.Request) { r.Mode = "" }},
		{"no point", func(r *synth.Request) { r.Point = nil }},
		{"inverted window", func(r *synth.Request) { r.Low, r.High = r.High, r.Low }},
		{"zero step", func(r *synth.Request) { r.Step = 0 }},
		{"negative padding", func(r *synth.Request) { r.Padding = -1 }},
		{"zero order", func(r *synth.Request) { r.Order = 0 }},
		{"negative vrot", func(r *synth.Request) { r.VRot = -5 }},
		{"limb darkening above one", func(r *synth.Request) { r.LimbDarkening = 1.5 }},
		{"bad scale", func(r *synth.Request) { r.WavelengthScale = "heliocentric" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	if err := baseRequest().Validate(); err != nil {
		t.Fatalf("base request must validate: %v", err)
	}
}

func TestRequestFingerprint(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("identical requests must share a fingerprint")
	}
	b.VRot = 30
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("differing requests must not collide")
	}
}

func TestCatalogReuse(t *testing.T) {
	s := newSynthesizer(t)
	first, err := s.Catalog("bstar", false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Catalog("bstar", false)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("catalog must be opened once per mode")
	}
	if first.NodeCount() != 30 {
		t.Fatalf("node count: %d", first.NodeCount())
	}
}
