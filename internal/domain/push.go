package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	PushTitle = "RainAlert Notification"
	PushSound = "default"

	// MaxPushChunkSize is the Expo limit of messages per send request.
	MaxPushChunkSize = 100
)

var uuidTokenRe = regexp.MustCompile(`(?i)^[a-z\d]{8}-[a-z\d]{4}-[a-z\d]{4}-[a-z\d]{4}-[a-z\d]{12}$`)

// PushMessage is one Expo push request entry.
type PushMessage struct {
	To    string   `json:"to"`
	Sound string   `json:"sound,omitempty"`
	Title string   `json:"title,omitempty"`
	Body  string   `json:"body"`
	Data  PushData `json:"data"`
}

// PushTicket is Expo's per-message response.
type PushTicket struct {
	Status  string         `json:"status"`
	ID      string         `json:"id,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// OK reports whether Expo accepted the message.
func (t PushTicket) OK() bool {
	return t.Status == "ok"
}

// IsExpoPushToken reports whether token has an Expo push token shape.
func IsExpoPushToken(token string) bool {
	if (strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")) &&
		strings.HasSuffix(token, "]") {
		return true
	}
	return uuidTokenRe.MatchString(token)
}

// NewPushMessages builds one message per token. An empty level repeats
// the message, which older clients display as the level label.
func NewPushMessages(tokens []string, message, level string, now time.Time) []PushMessage {
	if level == "" {
		level = message
	}
	data := PushData{
		Body:      message,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Level:     level,
	}
	msgs := make([]PushMessage, 0, len(tokens))
	for _, token := range tokens {
		msgs = append(msgs, PushMessage{
			To:    token,
			Sound: PushSound,
			Title: PushTitle,
			Body:  message,
			Data:  data,
		})
	}
	return msgs
}

// ChunkPushMessages splits msgs into groups of at most size. A size outside
// (0, MaxPushChunkSize] is clamped to MaxPushChunkSize.
func ChunkPushMessages(msgs []PushMessage, size int) [][]PushMessage {
	if size <= 0 || size > MaxPushChunkSize {
		size = MaxPushChunkSize
	}
	chunks := make([][]PushMessage, 0, (len(msgs)+size-1)/size)
	for start := 0; start < len(msgs); start += size {
		end := min(start+size, len(msgs))
		chunks = append(chunks, msgs[start:end])
	}
	return chunks
}

// Subscriber is a user with a registered push token.
type Subscriber struct {
	UserID int64
	Token  string
}
