package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	if req.Latitude == nil || req.Longitude == nil || req.Level == "" {
		writeMessage(w, http.StatusBadRequest, "Latitude, longitude, and level are required.")
		return
	}
	level, err := domain.ParseAlertLevel(req.Level)
	if err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}

	report := domain.FloodReport{
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Address:     req.Address,
		Level:       level,
		Description: req.Description,
	}
	if err := report.Validate(); err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	report = domain.EnrichReportAddress(r.Context(), report, s.deps.Geocoder, s.logger)

	stored, err := s.deps.Reports.CreateReport(r.Context(), report)
	if err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	s.metrics.ReportsCreated.Inc()

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishReports(r.Context(), stored); err != nil {
			s.logger.Warn("publish flood report failed", "report_id", stored.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, reportCreatedResponse{
		Message:  "Report created successfully",
		ReportID: stored.ID,
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.deps.Reports.ListReports(r.Context())
	if err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	if reports == nil {
		reports = []domain.FloodReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleFloodRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.deps.Records.ListFloodRecords(r.Context())
	if err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	if records == nil {
		records = []domain.FloodRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleFloodPrediction(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Predictor.Predict())
}

func (s *Server) handleFloodedAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.activeAreas(r.Context())
	if err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	if wantsGeoJSON(r) {
		writeFeatureCollection(w, domain.AreasFeatureCollection(areas))
		return
	}
	writeJSON(w, http.StatusOK, floodedAreasResponse{Areas: areas})
}

// activeAreas converts the reports inside the look-back window into zones.
func (s *Server) activeAreas(ctx context.Context) ([]domain.FloodedArea, error) {
	since := domain.Now().Add(-s.deps.FloodAreaWindow)
	reports, err := s.deps.Reports.ReportsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("active flooded areas: %w", err)
	}
	return domain.ActiveFloodedAreas(reports, since), nil
}

// areasOrActive returns the client's areas, or the active ones when the
// client sent none. An explicit empty list means no flooding.
func (s *Server) areasOrActive(ctx context.Context, requested []domain.FloodedArea) ([]domain.FloodedArea, error) {
	if requested != nil {
		return requested, nil
	}
	return s.activeAreas(ctx)
}
