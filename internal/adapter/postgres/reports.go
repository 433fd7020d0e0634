package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

const reportColumns = `report_id, latitude, longitude, address, level, description, reported_at`

// CreateReport stores a flood report and returns it with its id and timestamp.
func (s *Store) CreateReport(ctx context.Context, r domain.FloodReport) (domain.FloodReport, error) {
	query := `
	INSERT INTO user_flood_reports (latitude, longitude, address, level, description)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + reportColumns + `;
	`
	row := s.db.QueryRowContext(ctx, query, r.Latitude, r.Longitude, r.Address, r.Level.String(), r.Description)
	out, err := scanReport(row)
	if err != nil {
		return domain.FloodReport{}, fmt.Errorf("create report: %w", err)
	}
	return out, nil
}

// ListReports returns all reports, newest first.
func (s *Store) ListReports(ctx context.Context) ([]domain.FloodReport, error) {
	query := `SELECT ` + reportColumns + ` FROM user_flood_reports ORDER BY reported_at DESC, report_id DESC;`
	return s.queryReports(ctx, "list reports", query)
}

// ReportsSince returns reports made at or after since, newest first.
func (s *Store) ReportsSince(ctx context.Context, since time.Time) ([]domain.FloodReport, error) {
	query := `SELECT ` + reportColumns + ` FROM user_flood_reports WHERE reported_at >= $1 ORDER BY reported_at DESC, report_id DESC;`
	return s.queryReports(ctx, "reports since", query, since)
}

func (s *Store) queryReports(ctx context.Context, op, query string, args ...any) ([]domain.FloodReport, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	reports := make([]domain.FloodReport, 0, 64)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}
	return reports, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (domain.FloodReport, error) {
	var (
		r     domain.FloodReport
		level string
	)
	if err := row.Scan(&r.ID, &r.Latitude, &r.Longitude, &r.Address, &level, &r.Description, &r.ReportedAt); err != nil {
		return domain.FloodReport{}, fmt.Errorf("scan report: %w", err)
	}
	lvl, err := domain.ParseAlertLevel(level)
	if err != nil {
		return domain.FloodReport{}, fmt.Errorf("scan report %d: %w", r.ID, err)
	}
	r.Level = lvl
	r.ReportedAt = r.ReportedAt.UTC()
	return r, nil
}
