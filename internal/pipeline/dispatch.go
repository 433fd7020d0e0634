package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// SubscriberSource lists users that receive alerts.
type SubscriberSource interface {
	Subscribers(ctx context.Context) ([]domain.Subscriber, error)
}

// PushSender delivers push messages.
type PushSender interface {
	Send(ctx context.Context, msgs []domain.PushMessage) ([]domain.PushTicket, error)
}

// InboxWriter records a notification in a user's inbox.
type InboxWriter interface {
	Add(ctx context.Context, userID int64, n domain.Notification) (domain.Inbox, bool, error)
}

// PushLoader implements BatchLoader by pushing each alert to every
// subscriber and recording it in their inbox.
type PushLoader struct {
	subscribers SubscriberSource
	sender      PushSender
	inbox       InboxWriter
	logger      *slog.Logger
}

// NewPushLoader creates a PushLoader. A nil inbox skips inbox recording.
func NewPushLoader(subs SubscriberSource, sender PushSender, inbox InboxWriter, logger *slog.Logger) *PushLoader {
	return &PushLoader{subscribers: subs, sender: sender, inbox: inbox, logger: logger}
}

// LoadBatch pushes alerts in order. A push failure aborts the batch so the
// caller can retry it; inbox failures are logged only.
func (l *PushLoader) LoadBatch(ctx context.Context, alerts []domain.FloodAlert) error {
	subs, err := l.subscribers.Subscribers(ctx)
	if err != nil {
		return fmt.Errorf("load subscribers: %w", err)
	}
	if len(subs) == 0 {
		l.logger.Info("no subscribers with push tokens, alerts not pushed", "alerts", len(alerts))
		return nil
	}

	tokens := uniqueTokens(subs)
	for _, a := range alerts {
		level := a.Level.NotificationLevel()
		msgs := domain.NewPushMessages(tokens, a.Message, level, a.CreatedAt)
		tickets, err := l.sender.Send(ctx, msgs)
		if err != nil {
			return fmt.Errorf("push alert %s: %w", a.ID, err)
		}
		l.logger.Info("alert pushed",
			"alert_id", a.ID,
			"report_id", a.ReportID,
			"level", a.Level,
			"tickets", len(tickets),
		)
		l.record(ctx, subs, domain.Notification{
			ID:        a.ID,
			Message:   a.Message,
			Timestamp: a.CreatedAt,
			Level:     level,
		})
	}
	return nil
}

func (l *PushLoader) record(ctx context.Context, subs []domain.Subscriber, n domain.Notification) {
	if l.inbox == nil {
		return
	}
	seen := make(map[int64]struct{}, len(subs))
	for _, s := range subs {
		if _, ok := seen[s.UserID]; ok {
			continue
		}
		seen[s.UserID] = struct{}{}
		if _, _, err := l.inbox.Add(ctx, s.UserID, n); err != nil {
			l.logger.Warn("record alert in inbox failed", "user_id", s.UserID, "alert_id", n.ID, "error", err)
		}
	}
}

func uniqueTokens(subs []domain.Subscriber) []string {
	seen := make(map[string]struct{}, len(subs))
	tokens := make([]string, 0, len(subs))
	for _, s := range subs {
		if _, ok := seen[s.Token]; ok {
			continue
		}
		seen[s.Token] = struct{}{}
		tokens = append(tokens, s.Token)
	}
	return tokens
}
