package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"specgrid/internal/spectrum"
	"specgrid/internal/synth"
)

const recordColumns = "id, request_id, fingerprint, mode, absolute, point_json, wmin, wmax, step, padding, interp_order, vrot, limb_darkening, wavelength_scale, clamped_axes_json, points, output_path, status, error_message, created_at"

// RecordSuccess inserts a completed synthesis.
func (s *Store) RecordSuccess(ctx context.Context, req synth.Request, meta spectrum.Meta, points int, outputPath string) (*Record, error) {
	return s.insert(ctx, req, meta.RequestID, meta.ClampedAxes, points, outputPath, StatusCompleted, "")
}

// RecordFailure inserts a failed synthesis with its error message.
func (s *Store) RecordFailure(ctx context.Context, req synth.Request, reason string) (*Record, error) {
	return s.insert(ctx, req, "", nil, 0, "", StatusFailed, reason)
}

func (s *Store) insert(ctx context.Context, req synth.Request, requestID string, clampedAxes []string, points int, outputPath string, status Status, errorMessage string) (*Record, error) {
	pointJSON, err := json.Marshal([]float64(req.Point))
	if err != nil {
		return nil, fmt.Errorf("marshal point: %w", err)
	}
	var clampedJSON any
	if len(clampedAxes) > 0 {
		raw, err := json.Marshal(clampedAxes)
		if err != nil {
			return nil, fmt.Errorf("marshal clamped axes: %w", err)
		}
		clampedJSON = string(raw)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO synthesis_history (
            request_id, fingerprint, mode, absolute, point_json,
            wmin, wmax, step, padding, interp_order,
            vrot, limb_darkening, wavelength_scale, clamped_axes_json,
            points, output_path, status, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		requestID,
		req.Fingerprint(),
		req.Mode,
		boolToInt(req.Absolute),
		string(pointJSON),
		req.Low,
		req.High,
		req.Step,
		req.Padding,
		req.Order,
		req.VRot,
		req.LimbDarkening,
		req.WavelengthScale,
		clampedJSON,
		points,
		nullableString(outputPath),
		string(status),
		nullableString(errorMessage),
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert history record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a single record.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM synthesis_history WHERE id = ?", id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return record, err
}

// FindByFingerprint returns the most recent completed record matching the
// fingerprint, letting callers skip re-running identical requests.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (*Record, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+` FROM synthesis_history
         WHERE fingerprint = ? AND status = ?
         ORDER BY created_at DESC, id DESC LIMIT 1`,
		fingerprint, StatusCompleted)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: fingerprint %s", ErrNotFound, fingerprint)
	}
	return record, err
}

// List returns the newest records first, at most limit of them. A limit of
// zero or below returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + recordColumns + " FROM synthesis_history ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Clear removes every history record.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.execWithRetry(ensureContext(ctx), "DELETE FROM synthesis_history")
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		record       Record
		absolute     int64
		pointJSON    string
		clampedJSON  sql.NullString
		outputPath   sql.NullString
		statusStr    string
		errorMessage sql.NullString
		createdRaw   string
	)
	if err := scanner.Scan(
		&record.ID,
		&record.RequestID,
		&record.Fingerprint,
		&record.Mode,
		&absolute,
		&pointJSON,
		&record.WMin,
		&record.WMax,
		&record.Step,
		&record.Padding,
		&record.Order,
		&record.VRot,
		&record.LimbDarkening,
		&record.WavelengthScale,
		&clampedJSON,
		&record.Points,
		&outputPath,
		&statusStr,
		&errorMessage,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	record.Absolute = absolute != 0
	if err := json.Unmarshal([]byte(pointJSON), &record.Point); err != nil {
		return nil, fmt.Errorf("decode point: %w", err)
	}
	if clampedJSON.Valid && clampedJSON.String != "" {
		if err := json.Unmarshal([]byte(clampedJSON.String), &record.ClampedAxes); err != nil {
			return nil, fmt.Errorf("decode clamped axes: %w", err)
		}
	}
	record.OutputPath = outputPath.String
	record.Status = Status(statusStr)
	record.ErrorMessage = errorMessage.String

	created, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	record.CreatedAt = created

	return &record, nil
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
