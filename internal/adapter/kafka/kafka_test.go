package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("17"),
		Value:     []byte(`{"id":17}`),
		Topic:     "flood-reports",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "level", Value: []byte("severe")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("17"), raw.Key)
	assert.JSONEq(t, `{"id":17}`, string(raw.Value))
	assert.Equal(t, "flood-reports", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "severe", raw.Headers["level"])
	assert.Nil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	reported := time.Date(2025, 8, 10, 15, 10, 0, 0, time.FixedZone("PHT", 8*3600))
	report := domain.FloodReport{
		ID:         17,
		Latitude:   15.0277,
		Longitude:  120.6924,
		Level:      domain.AlertSevere,
		ReportedAt: reported,
	}

	msg, err := serializeToMessage(report)
	require.NoError(t, err)

	assert.Equal(t, []byte("17"), msg.Key)
	assert.Contains(t, string(msg.Value), `"level":"severe"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "level", msg.Headers[0].Key)
	assert.Equal(t, []byte("severe"), msg.Headers[0].Value)
	assert.Equal(t, "reported_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-08-10T07:10:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_RoundTripsThroughParser(t *testing.T) {
	report := domain.FloodReport{
		ID:         5,
		Latitude:   15.03,
		Longitude:  120.68,
		Address:    "Dolores",
		Level:      domain.AlertModerate,
		ReportedAt: time.Date(2025, 8, 10, 7, 0, 0, 0, time.UTC),
	}

	msg, err := serializeToMessage(report)
	require.NoError(t, err)

	parsed, err := domain.ParseFloodReportEvent(mapMessageToRawEvent(msg))
	require.NoError(t, err)
	assert.Equal(t, report, parsed)
}

func TestSerializeToMessage_InvalidLevel(t *testing.T) {
	_, err := serializeToMessage(domain.FloodReport{ID: 1})
	require.Error(t, err)
}
