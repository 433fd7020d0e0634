package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
)

// Deps are the collaborators behind the API routes. Publisher and Geocoder
// are optional; the rest must be set.
type Deps struct {
	Users     UserStore
	Reports   ReportStore
	Records   RecordStore
	Publisher ReportPublisher
	Geocoder  domain.Geocoder
	Push      PushSender
	Inbox     InboxStore
	Planner   *domain.RoutePlanner
	Predictor *domain.Predictor
	Ready     sharedobs.ReadinessChecker

	// FloodAreaWindow is how far back reports count as active flooded areas.
	FloodAreaWindow time.Duration
}

// Server exposes the flood alert API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with every API route registered.
func NewServer(addr string, deps Deps, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		deps:    deps,
		logger:  logger,
		metrics: metrics,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.instrument(s.recoverer(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.routes(mux)
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(s.deps.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /reset-password", s.handleResetPassword)

	mux.HandleFunc("GET /flood-records", s.handleFloodRecords)
	mux.HandleFunc("GET /flood-prediction", s.handleFloodPrediction)
	mux.HandleFunc("POST /reports", s.handleCreateReport)
	mux.HandleFunc("GET /reports", s.handleListReports)
	mux.HandleFunc("GET /flooded-areas", s.handleFloodedAreas)

	mux.HandleFunc("POST /routes", s.handleRoutes)
	mux.HandleFunc("POST /trips", s.handleTrips)
	mux.HandleFunc("GET /geocode", s.handleGeocode)
	mux.HandleFunc("GET /reverse-geocode", s.handleReverseGeocode)

	mux.HandleFunc("POST /api/mob_app_users/save-token", s.handleSaveToken)
	mux.HandleFunc("POST /api/send-push-alert", s.handleSendPushAlert)
	mux.HandleFunc("GET /api/mob_app_users/{id}/notifications", s.handleListNotifications)
	mux.HandleFunc("POST /api/mob_app_users/{id}/notifications", s.handleAddNotification)
	mux.HandleFunc("DELETE /api/mob_app_users/{id}/notifications", s.handleClearNotifications)
	mux.HandleFunc("POST /api/mob_app_users/{id}/notifications/{nid}/read", s.handleMarkNotificationRead)

	mux.HandleFunc("/", handleNotFound)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "Server is running",
		Timestamp: domain.Now().UTC(),
	})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusNotFound, "Route not found")
}
