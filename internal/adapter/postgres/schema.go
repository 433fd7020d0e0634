package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// InitSchema creates the service tables when they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS mob_app_users (
		user_id         BIGSERIAL PRIMARY KEY,
		full_name       TEXT NOT NULL,
		email           TEXT NOT NULL UNIQUE,
		password        TEXT NOT NULL,
		phone_number    TEXT NOT NULL DEFAULT '0000000000',
		login_method    TEXT NOT NULL DEFAULT 'email',
		status          TEXT NOT NULL DEFAULT 'active',
		role            TEXT NOT NULL DEFAULT 'user',
		expo_push_token TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS user_flood_reports (
		report_id   BIGSERIAL PRIMARY KEY,
		latitude    DOUBLE PRECISION NOT NULL,
		longitude   DOUBLE PRECISION NOT NULL,
		address     TEXT NOT NULL DEFAULT '',
		level       TEXT NOT NULL CHECK (level IN ('caution', 'moderate', 'severe')),
		description TEXT NOT NULL DEFAULT '',
		reported_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createReportsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_user_flood_reports_reported_at
	ON user_flood_reports(reported_at DESC);
	`

	createRecordsQuery := `
	CREATE TABLE IF NOT EXISTS flood_records (
		id             BIGSERIAL PRIMARY KEY,
		year           INTEGER NOT NULL,
		month          TEXT NOT NULL,
		barangay       TEXT NOT NULL,
		flood_depth_m  DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		cause          TEXT NOT NULL DEFAULT '',
		UNIQUE (year, month, barangay)
	);
	`

	statements := []string{
		createUsersQuery,
		createReportsQuery,
		createReportsIndexQuery,
		createRecordsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromJSON upserts historical flood records from a JSON array file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed flood records: read %q: %w", jsonPath, err)
	}

	var records []domain.FloodRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("seed flood records: parse json: %w", err)
	}

	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return fmt.Errorf("seed flood records: item %d: %w", i+1, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed flood records: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO flood_records (year, month, barangay, flood_depth_m, duration_hours, cause)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (year, month, barangay) DO UPDATE SET
		flood_depth_m  = EXCLUDED.flood_depth_m,
		duration_hours = EXCLUDED.duration_hours,
		cause          = EXCLUDED.cause;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed flood records: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Year, r.Month, r.Barangay, r.FloodDepthM, r.DurationHours, r.Cause); err != nil {
			return fmt.Errorf("seed flood records: insert %d %s %s: %w", r.Year, r.Month, r.Barangay, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed flood records: commit tx: %w", err)
	}

	return nil
}

func validateRecord(r *domain.FloodRecord) error {
	r.Barangay = strings.TrimSpace(r.Barangay)
	if r.Barangay == "" {
		return errors.New("barangay cannot be empty")
	}
	if r.Year <= 0 {
		return fmt.Errorf("invalid year %d", r.Year)
	}
	m, err := time.Parse("January", strings.TrimSpace(r.Month))
	if err != nil {
		return fmt.Errorf("invalid month %q", r.Month)
	}
	r.Month = m.Month().String()
	return nil
}
