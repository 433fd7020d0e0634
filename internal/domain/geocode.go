package domain

import (
	"context"
	"log/slog"
)

// EnrichReportAddress fills a missing report address by reverse geocoding.
// A nil geocoder, a provider error or an empty result leave the report
// unchanged (graceful degradation).
func EnrichReportAddress(ctx context.Context, report FloodReport, geocoder Geocoder, logger *slog.Logger) FloodReport {
	if geocoder == nil || report.Address != "" {
		return report
	}

	result, err := geocoder.ReverseGeocode(ctx, report.Latitude, report.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", report.Latitude,
			"lon", report.Longitude,
			"error", err,
		)
		return report
	}
	if result.Found() {
		report.Address = result.DisplayName
	}
	return report
}
