package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/couchcryptid/rain-alert-service/internal/config"
	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

const (
	keyPrefix = "rain-alert:inbox:"

	// maxTxRetries bounds optimistic retries when another writer touches the key.
	maxTxRetries = 10
)

// ErrConflict is returned when an inbox update keeps losing the WATCH race.
var ErrConflict = errors.New("inbox update conflict")

// NewClient builds a Redis client from the REDIS_* settings.
func NewClient(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// InboxStore persists each user's notification inbox as one JSON document.
type InboxStore struct {
	client goredis.UniversalClient
}

// NewInboxStore wraps a Redis client.
func NewInboxStore(client goredis.UniversalClient) *InboxStore {
	return &InboxStore{client: client}
}

// CheckReadiness pings Redis.
func (s *InboxStore) CheckReadiness(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Inbox returns the user's notifications, newest first.
func (s *InboxStore) Inbox(ctx context.Context, userID int64) (domain.Inbox, error) {
	ib, err := load(ctx, s.client, inboxKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load inbox: %w", err)
	}
	return ib, nil
}

// Add prepends n unless its id is already present. It reports whether the
// inbox changed.
func (s *InboxStore) Add(ctx context.Context, userID int64, n domain.Notification) (domain.Inbox, bool, error) {
	return s.update(ctx, userID, func(ib domain.Inbox) (domain.Inbox, bool) {
		return ib.Add(n)
	})
}

// MarkRead flags the notification with id as read. It reports whether an
// entry matched.
func (s *InboxStore) MarkRead(ctx context.Context, userID int64, id string) (domain.Inbox, bool, error) {
	return s.update(ctx, userID, func(ib domain.Inbox) (domain.Inbox, bool) {
		return ib.MarkRead(id)
	})
}

// Clear removes every notification of the user.
func (s *InboxStore) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, inboxKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear inbox: %w", err)
	}
	return nil
}

// update applies fn under WATCH and writes the result in a MULTI block,
// retrying when the key changes underneath.
func (s *InboxStore) update(ctx context.Context, userID int64, fn func(domain.Inbox) (domain.Inbox, bool)) (domain.Inbox, bool, error) {
	key := inboxKey(userID)

	var (
		result  domain.Inbox
		changed bool
	)
	txf := func(tx *goredis.Tx) error {
		ib, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		result, changed = fn(ib)
		if !changed {
			return nil
		}
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode inbox: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, changed, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, false, fmt.Errorf("update inbox: %w", err)
	}
	return nil, false, ErrConflict
}

func load(ctx context.Context, c goredis.Cmdable, key string) (domain.Inbox, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Inbox{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ib domain.Inbox
	if err := json.Unmarshal(data, &ib); err != nil {
		return nil, fmt.Errorf("decode inbox: %w", err)
	}
	return ib, nil
}

func inboxKey(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
