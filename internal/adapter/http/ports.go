package http

import (
	"context"
	"time"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// UserStore manages accounts and their push tokens.
type UserStore interface {
	CreateUser(ctx context.Context, reg domain.Registration) (domain.User, error)
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	SavePushToken(ctx context.Context, userID int64, token string) error
	PushTokens(ctx context.Context, userIDs []int64) ([]string, error)
}

// ReportStore persists flood reports.
type ReportStore interface {
	CreateReport(ctx context.Context, r domain.FloodReport) (domain.FloodReport, error)
	ListReports(ctx context.Context) ([]domain.FloodReport, error)
	ReportsSince(ctx context.Context, since time.Time) ([]domain.FloodReport, error)
}

// RecordStore lists historical flood records.
type RecordStore interface {
	ListFloodRecords(ctx context.Context) ([]domain.FloodRecord, error)
}

// ReportPublisher announces stored reports to the alert dispatcher.
type ReportPublisher interface {
	PublishReports(ctx context.Context, reports ...domain.FloodReport) error
}

// PushSender delivers push messages.
type PushSender interface {
	Send(ctx context.Context, msgs []domain.PushMessage) ([]domain.PushTicket, error)
}

// InboxStore holds each user's notification inbox.
type InboxStore interface {
	Inbox(ctx context.Context, userID int64) (domain.Inbox, error)
	Add(ctx context.Context, userID int64, n domain.Notification) (domain.Inbox, bool, error)
	MarkRead(ctx context.Context, userID int64, id string) (domain.Inbox, bool, error)
	Clear(ctx context.Context, userID int64) error
}
