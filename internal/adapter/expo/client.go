package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/rain-alert-service/internal/config"
	"github.com/couchcryptid/rain-alert-service/internal/domain"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
)

// maxErrorBodyBytes bounds how much of a failed response is quoted in the error.
const maxErrorBodyBytes = 4 << 10

// Client sends push notifications through the Expo push service.
type Client struct {
	httpClient  *http.Client
	url         string
	accessToken string
	chunkSize   int
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates an Expo push client.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.ExpoTimeout,
		},
		url:         cfg.ExpoBaseURL,
		accessToken: cfg.ExpoAccessToken,
		chunkSize:   domain.MaxPushChunkSize,
		metrics:     metrics,
		logger:      logger,
	}
}

// Send delivers msgs in chunks and returns one ticket per accepted message,
// in request order. Messages addressed to malformed tokens are dropped. A
// failed chunk aborts the remaining chunks and returns the tickets so far.
func (c *Client) Send(ctx context.Context, msgs []domain.PushMessage) ([]domain.PushTicket, error) {
	valid := make([]domain.PushMessage, 0, len(msgs))
	for _, m := range msgs {
		if !domain.IsExpoPushToken(m.To) {
			c.logger.Warn("push token is not a valid Expo push token, skipping", "token", m.To)
			continue
		}
		valid = append(valid, m)
	}

	tickets := make([]domain.PushTicket, 0, len(valid))
	for i, chunk := range domain.ChunkPushMessages(valid, c.chunkSize) {
		got, err := c.sendChunk(ctx, chunk)
		if err != nil {
			c.metrics.PushErrors.Inc()
			return tickets, fmt.Errorf("send push chunk %d: %w", i+1, err)
		}
		for _, t := range got {
			if t.OK() {
				c.metrics.PushMessagesSent.WithLabelValues("ok").Inc()
			} else {
				c.metrics.PushMessagesSent.WithLabelValues("error").Inc()
				c.logger.Warn("push ticket rejected", "message", t.Message, "details", t.Details)
			}
		}
		tickets = append(tickets, got...)
	}
	return tickets, nil
}

func (c *Client) sendChunk(ctx context.Context, chunk []domain.PushMessage) ([]domain.PushTicket, error) {
	body, err := json.Marshal(chunk)
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("expo API error: status %d: %s", resp.StatusCode, b)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("expo API error: %s", out.Errors[0].Message)
	}
	return out.Data, nil
}

// Expo API response types.

type response struct {
	Data   []domain.PushTicket `json:"data"`
	Errors []apiError          `json:"errors,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
