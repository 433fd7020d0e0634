package http

import (
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
)

const planErrorMessage = "Failed to plan route."

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	ctx, span := observability.Tracer().Start(r.Context(), "http.routes")
	defer span.End()

	var req routeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, planErrorMessage)
		return
	}
	if req.Start == nil || req.End == nil {
		writeMessage(w, http.StatusBadRequest, "start and end are required.")
		return
	}

	areas, err := s.areasOrActive(ctx, req.FloodedAreas)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load flooded areas")
		s.writeError(w, r, err, planErrorMessage)
		return
	}

	routes, err := s.deps.Planner.CalculateRoutes(*req.Start, *req.End, areas)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "calculate routes")
		s.writeError(w, r, err, planErrorMessage)
		return
	}

	for _, route := range routes {
		s.metrics.RouteRisk.WithLabelValues(route.Risk.String()).Inc()
	}
	span.SetAttributes(
		attribute.Int("routes.count", len(routes)),
		attribute.Int("flooded_areas.count", len(areas)),
		attribute.String("routes.best_risk", routes[0].Risk.String()),
	)

	if wantsGeoJSON(r) {
		writeFeatureCollection(w, domain.RoutesFeatureCollection(routes, areas))
		return
	}
	writeJSON(w, http.StatusOK, routesResponse{Routes: toRouteDTOs(routes)})
}

func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	ctx, span := observability.Tracer().Start(r.Context(), "http.trips")
	defer span.End()

	var req tripRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, planErrorMessage)
		return
	}
	if req.Start == nil {
		writeMessage(w, http.StatusBadRequest, "start is required.")
		return
	}
	mode, err := domain.ParseTransportMode(req.Mode)
	if err != nil {
		s.writeError(w, r, err, planErrorMessage)
		return
	}

	end, dest, ok := s.resolveTripEnd(w, r, req)
	if !ok {
		return
	}

	areas, err := s.areasOrActive(ctx, req.FloodedAreas)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load flooded areas")
		s.writeError(w, r, err, planErrorMessage)
		return
	}

	plan, err := s.deps.Planner.PlanTrip(*req.Start, end, mode, areas)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan trip")
		s.writeError(w, r, err, planErrorMessage)
		return
	}

	span.SetAttributes(
		attribute.String("trip.mode", mode.String()),
		attribute.String("trip.selected_route", plan.RouteID),
		attribute.Bool("trip.flood_alert", plan.FloodAlert),
	)
	if plan.FloodAlert {
		s.logger.Info("flooded fastest route", "selected_route", plan.RouteID, "mode", mode.String())
	}

	if wantsGeoJSON(r) {
		writeFeatureCollection(w, domain.TripFeatureCollection(plan, areas))
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(plan, dest))
}

// resolveTripEnd returns the explicit end point or geocodes the destination
// address. It writes the error response itself and reports false on failure.
func (s *Server) resolveTripEnd(w http.ResponseWriter, r *http.Request, req tripRequest) (domain.Coordinate, *domain.GeocodingResult, bool) {
	if req.End != nil {
		return *req.End, nil, true
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		writeMessage(w, http.StatusBadRequest, "end or destination is required.")
		return domain.Coordinate{}, nil, false
	}
	if s.deps.Geocoder == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Geocoding is disabled.")
		return domain.Coordinate{}, nil, false
	}

	result, err := s.deps.Geocoder.Geocode(r.Context(), destination)
	if err != nil {
		s.logger.Warn("destination geocoding failed", "destination", destination, "error", err)
		writeMessage(w, http.StatusBadGateway, "Geocoding failed.")
		return domain.Coordinate{}, nil, false
	}
	if !result.Found() {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Destination %q not found.", destination))
		return domain.Coordinate{}, nil, false
	}
	return domain.Coordinate{Latitude: result.Lat, Longitude: result.Lon}, &result, true
}
