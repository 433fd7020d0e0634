package postgres

import (
	"context"
	"fmt"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// Subscribers lists every active user with a push token.
func (s *Store) Subscribers(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
	SELECT user_id, expo_push_token
	FROM mob_app_users
	WHERE status = 'active'
	  AND expo_push_token IS NOT NULL
	  AND expo_push_token <> ''
	ORDER BY user_id;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("subscribers: query: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(&sub.UserID, &sub.Token); err != nil {
			return nil, fmt.Errorf("subscribers: scan row: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subscribers: row iteration: %w", err)
	}
	return subs, nil
}
