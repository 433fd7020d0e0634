package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultNotificationLevel applies when a push carries no level.
	DefaultNotificationLevel = "Warning"

	defaultNotificationMessage = "No message"
)

// PushData is the custom payload attached to every push message.
type PushData struct {
	Body      string `json:"_body,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level,omitempty"`
}

// ReceivedNotification is a push notification as delivered to a device.
type ReceivedNotification struct {
	Identifier string   `json:"identifier"`
	Body       string   `json:"body,omitempty"`
	Data       PushData `json:"data"`
}

// Notification is one inbox entry.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Level     string    `json:"level"`
}

// NewNotification converts a received push into an unread inbox entry.
// The message falls back from the custom body to the visible body, and the
// timestamp from the payload to now.
func NewNotification(in ReceivedNotification, now time.Time) (Notification, error) {
	id := strings.TrimSpace(in.Identifier)
	if id == "" {
		return Notification{}, fmt.Errorf("%w: notification identifier is required", ErrInvalidArgument)
	}

	n := Notification{
		ID:        id,
		Message:   firstNonEmpty(in.Data.Body, in.Body, defaultNotificationMessage),
		Timestamp: now,
		Level:     firstNonEmpty(in.Data.Level, DefaultNotificationLevel),
	}
	if in.Data.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, in.Data.Timestamp); err == nil {
			n.Timestamp = ts
		}
	}
	return n, nil
}

// Inbox is a notification list ordered newest first. Methods never modify
// the receiver's backing array.
type Inbox []Notification

// Contains reports whether an entry with id exists.
func (ib Inbox) Contains(id string) bool {
	for _, n := range ib {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Add prepends n unless its id is already present. It reports whether the
// inbox changed.
func (ib Inbox) Add(n Notification) (Inbox, bool) {
	if ib.Contains(n.ID) {
		return ib, false
	}
	out := make(Inbox, 0, len(ib)+1)
	out = append(out, n)
	out = append(out, ib...)
	return out, true
}

// MarkRead flags the entry with id as read. It reports whether an entry
// matched.
func (ib Inbox) MarkRead(id string) (Inbox, bool) {
	out := make(Inbox, len(ib))
	copy(out, ib)
	for i := range out {
		if out[i].ID == id {
			out[i].Read = true
			return out, true
		}
	}
	return ib, false
}

// Unread counts entries not yet read.
func (ib Inbox) Unread() int {
	count := 0
	for _, n := range ib {
		if !n.Read {
			count++
		}
	}
	return count
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
