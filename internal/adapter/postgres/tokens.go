package postgres

import (
	"context"
	"fmt"
)

// SavePushToken stores the Expo push token for a user, replacing any earlier one.
func (s *Store) SavePushToken(ctx context.Context, userID int64, token string) error {
	query := `UPDATE mob_app_users SET expo_push_token = $1, updated_at = now() WHERE user_id = $2;`
	res, err := s.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("save push token: %w", err)
	}
	return expectAffected(res, "save push token")
}

// PushTokens returns the distinct non-empty tokens of the given users.
func (s *Store) PushTokens(ctx context.Context, userIDs []int64) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query := `
	SELECT DISTINCT expo_push_token
	FROM mob_app_users
	WHERE user_id = ANY($1::bigint[])
	  AND expo_push_token IS NOT NULL
	  AND expo_push_token <> ''
	ORDER BY expo_push_token;
	`
	rows, err := s.db.QueryContext(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("push tokens: query: %w", err)
	}
	defer rows.Close()

	tokens := make([]string, 0, len(userIDs))
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("push tokens: scan row: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("push tokens: row iteration: %w", err)
	}
	return tokens, nil
}
