package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/rain-alert-service/internal/config"
	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// Writer publishes stored flood reports to the report topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishReports serializes and publishes reports in a single WriteMessages call.
func (w *Writer) PublishReports(ctx context.Context, reports ...domain.FloodReport) error {
	if len(reports) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(reports))
	for i := range reports {
		msg, err := serializeToMessage(reports[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish flood reports: %w", err)
	}
	w.logger.Debug("published flood reports", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a FloodReport keyed by its id.
func serializeToMessage(report domain.FloodReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize flood report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(report.ID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "level", Value: []byte(report.Level.String())},
			{Key: "reported_at", Value: []byte(report.ReportedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
