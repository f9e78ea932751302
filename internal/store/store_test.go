package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"specgrid/internal/grid"
	"specgrid/internal/spectrum"
	"specgrid/internal/store"
	"specgrid/internal/synth"
	"specgrid/internal/testsupport"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRequest() synth.Request {
	return synth.Request{
		Mode:            "bstar",
		Point:           grid.Point{16500, 3.75, 1.0},
		Low:             4200,
		High:            4600,
		Step:            0.01,
		Padding:         20,
		Order:           4,
		VRot:            20,
		LimbDarkening:   0.6,
		WavelengthScale: "vacuum",
		ClampPolicy:     "clamp",
	}
}

func TestRecordSuccessRoundTrip(t *testing.T) {
	s := openStore(t)
	req := sampleRequest()
	meta := spectrum.Meta{
		RequestID:   "req-1",
		ClampedAxes: []string{"teff"},
		CreatedAt:   time.Now().UTC(),
	}

	record, err := s.RecordSuccess(context.Background(), req, meta, 40001, "/tmp/out.dat")
	if err != nil {
		t.Fatalf("RecordSuccess: %v", err)
	}
	if record.ID == 0 {
		t.Fatal("record id not assigned")
	}
	if record.Status != store.StatusCompleted {
		t.Fatalf("status: %s", record.Status)
	}
	if record.RequestID != "req-1" || record.Points != 40001 || record.OutputPath != "/tmp/out.dat" {
		t.Fatalf("result fields: %+v", record)
	}
	if record.Mode != "bstar" || record.Order != 4 || record.VRot != 20 {
		t.Fatalf("request fields: %+v", record)
	}
	if len(record.Point) != 3 || record.Point[0] != 16500 {
		t.Fatalf("point: %v", record.Point)
	}
	if len(record.ClampedAxes) != 1 || record.ClampedAxes[0] != "teff" {
		t.Fatalf("clamped axes: %v", record.ClampedAxes)
	}
	if record.Fingerprint != req.Fingerprint() {
		t.Fatal("fingerprint not stored")
	}
	if record.CreatedAt.IsZero() {
		t.Fatal("created_at not stored")
	}
}

func TestRecordFailure(t *testing.T) {
	s := openStore(t)

	record, err := s.RecordFailure(context.Background(), sampleRequest(), "padding too small for broadening kernel")
	if err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if record.Status != store.StatusFailed {
		t.Fatalf("status: %s", record.Status)
	}
	if record.ErrorMessage == "" || record.Points != 0 || record.OutputPath != "" {
		t.Fatalf("failure fields: %+v", record)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i, vrot := range []float64{0, 10, 20} {
		req := sampleRequest()
		req.VRot = vrot
		meta := spectrum.Meta{RequestID: "req"}
		if _, err := s.RecordSuccess(ctx, req, meta, 100+i, ""); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count: %d", len(records))
	}
	if records[0].VRot != 20 || records[2].VRot != 0 {
		t.Fatalf("ordering: %g, %g, %g", records[0].VRot, records[1].VRot, records[2].VRot)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited count: %d", len(limited))
	}
}

func TestFindByFingerprint(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	req := sampleRequest()

	// A failed attempt must not satisfy the lookup.
	if _, err := s.RecordFailure(ctx, req, "grid missing"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.FindByFingerprint(ctx, req.Fingerprint()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.RecordSuccess(ctx, req, spectrum.Meta{RequestID: "req-ok"}, 40001, "/tmp/a.dat"); err != nil {
		t.Fatal(err)
	}
	found, err := s.FindByFingerprint(ctx, req.Fingerprint())
	if err != nil {
		t.Fatalf("FindByFingerprint: %v", err)
	}
	if found.RequestID != "req-ok" {
		t.Fatalf("wrong record: %+v", found)
	}

	other := sampleRequest()
	other.VRot = 99
	if _, err := s.FindByFingerprint(ctx, other.Fingerprint()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unseen request, got %v", err)
	}
}

func TestClear(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.RecordSuccess(ctx, sampleRequest(), spectrum.Meta{}, 1, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("records after clear: %d", len(records))
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := store.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.RecordSuccess(context.Background(), sampleRequest(), spectrum.Meta{}, 1, ""); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	records, err := second.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records after reopen: %d", len(records))
	}
}
