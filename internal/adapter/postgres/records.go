package postgres

import (
	"context"
	"fmt"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// ListFloodRecords returns historical records by year, then calendar month,
// both descending.
func (s *Store) ListFloodRecords(ctx context.Context) ([]domain.FloodRecord, error) {
	query := `
	SELECT id, year, month, barangay, flood_depth_m, duration_hours, cause
	FROM flood_records
	ORDER BY year DESC,
		array_position(ARRAY['January', 'February', 'March', 'April', 'May', 'June', 'July',
			'August', 'September', 'October', 'November', 'December'], month) DESC NULLS LAST,
		id;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list flood records: query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.FloodRecord, 0, 64)
	for rows.Next() {
		var r domain.FloodRecord
		if err := rows.Scan(&r.ID, &r.Year, &r.Month, &r.Barangay, &r.FloodDepthM, &r.DurationHours, &r.Cause); err != nil {
			return nil, fmt.Errorf("list flood records: scan row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flood records: row iteration: %w", err)
	}
	return records, nil
}
