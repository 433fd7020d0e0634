package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// AlertTransformer implements Transformer using the domain report parser,
// optional reverse geocoding, and the alert threshold.
type AlertTransformer struct {
	minLevel domain.AlertLevel
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates an AlertTransformer. Pass a nil geocoder to disable
// address enrichment.
func NewTransformer(minLevel domain.AlertLevel, geocoder domain.Geocoder, logger *slog.Logger) *AlertTransformer {
	return &AlertTransformer{
		minLevel: minLevel,
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *AlertTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.FloodAlert, error) {
	report, err := domain.ParseFloodReportEvent(raw)
	if err != nil {
		return domain.FloodAlert{}, err
	}
	if !report.Level.AtLeast(t.minLevel) {
		// Skip geocoding for reports that will not alert.
		return domain.NewFloodAlert(report, t.minLevel)
	}

	report = domain.EnrichReportAddress(ctx, report, t.geocoder, t.logger)
	return domain.NewFloodAlert(report, t.minLevel)
}
