package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw flood report event into an alert. It returns
// an error wrapping domain.ErrBelowThreshold for reports that should not alert.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.FloodAlert, error)
}

// BatchLoader delivers alerts to subscribers.
type BatchLoader interface {
	LoadBatch(ctx context.Context, alerts []domain.FloodAlert) error
}

// Pipeline is the alert dispatcher loop: extract report events, build
// alerts, push them, then commit.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	tracer      trace.Tracer
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		tracer:      observability.Tracer(),
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the dispatcher has delivered a batch.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("alert dispatcher has not delivered any alerts yet")
	}
	return nil
}

// Ready reports whether a batch has been delivered.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes the dispatch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("alert dispatcher started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := initialBackoff

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("alert dispatcher stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff) {
			return nil
		}
	}
}

// processBatch runs one extract-transform-dispatch cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.batch",
		trace.WithAttributes(attribute.Int("batch.size", len(rawBatch))))
	defer span.End()

	p.metrics.MessagesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = initialBackoff

	delivered, ok := p.transformAndLoad(ctx, rawBatch, backoff, span)
	if !ok {
		return false
	}

	span.SetAttributes(attribute.Int("alerts.delivered", delivered))
	if delivered > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

// transformAndLoad builds alerts from the batch, delivers them and commits
// offsets. Undecodable and below-threshold reports are committed and skipped.
// Returns the number of delivered alerts and false if the pipeline should stop.
func (p *Pipeline) transformAndLoad(ctx context.Context, rawBatch []domain.RawEvent, backoff *time.Duration, span trace.Span) (int, bool) {
	alerts := make([]domain.FloodAlert, 0, len(rawBatch))
	pending := make([]domain.RawEvent, 0, len(rawBatch))

	for _, raw := range rawBatch {
		alert, err := p.transformer.Transform(ctx, raw)
		switch {
		case errors.Is(err, domain.ErrBelowThreshold):
			p.logger.Debug("report below alert threshold, skipping", "error", err, "offset", raw.Offset)
			p.metrics.AlertsSkipped.Inc()
			p.commitOffset(ctx, raw)
			continue
		case err != nil:
			p.logger.Warn("transform failed, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commitOffset(ctx, raw)
			continue
		}
		alerts = append(alerts, alert)
		pending = append(pending, raw)
	}

	if len(alerts) == 0 {
		return 0, true
	}

	// Retry in place: the reader does not redeliver uncommitted messages
	// until the group rebalances.
	for {
		err := p.loader.LoadBatch(ctx, alerts)
		if err == nil {
			break
		}
		p.logger.Error("dispatch batch failed", "error", err, "batch_size", len(alerts))
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		if !p.backoffOrStop(ctx, backoff) {
			return 0, false
		}
	}

	p.metrics.AlertsDispatched.Add(float64(len(alerts)))

	for _, raw := range pending {
		p.commitOffset(ctx, raw)
	}

	return len(alerts), true
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
