package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeMessage(w, http.StatusBadRequest, "q is required.")
		return
	}
	if s.deps.Geocoder == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Geocoding is disabled.")
		return
	}

	result, err := s.deps.Geocoder.Geocode(r.Context(), query)
	s.writeGeocodeResult(w, r, result, err)
}

func (s *Server) handleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	point, err := parseLatLon(r)
	if err != nil {
		s.writeError(w, r, err, "Geocoding failed.")
		return
	}
	if s.deps.Geocoder == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Geocoding is disabled.")
		return
	}

	result, err := s.deps.Geocoder.ReverseGeocode(r.Context(), point.Latitude, point.Longitude)
	s.writeGeocodeResult(w, r, result, err)
}

func (s *Server) writeGeocodeResult(w http.ResponseWriter, r *http.Request, result domain.GeocodingResult, err error) {
	if err != nil {
		s.logger.Warn("geocoding failed", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusBadGateway, "Geocoding failed.")
		return
	}
	if !result.Found() {
		writeMessage(w, http.StatusNotFound, "Location not found.")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseLatLon(r *http.Request) (domain.Coordinate, error) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		return domain.Coordinate{}, invalidArgument("lat and lon must be numbers")
	}
	point := domain.Coordinate{Latitude: lat, Longitude: lon}
	if err := point.Validate(); err != nil {
		return domain.Coordinate{}, err
	}
	return point, nil
}
