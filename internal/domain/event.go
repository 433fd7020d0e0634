package domain

import (
	"context"
	"time"
)

// RawEvent is an unprocessed message from the flood report topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// FloodAlert is a push-worthy summary of a flood report.
type FloodAlert struct {
	ID        string     `json:"id"`
	ReportID  int64      `json:"report_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Level     AlertLevel `json:"level"`
	Location  Coordinate `json:"location"`
	Address   string     `json:"address,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
