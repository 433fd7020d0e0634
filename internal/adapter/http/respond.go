package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	geojson "github.com/paulmach/go.geojson"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // the client is gone if this fails
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeFeatureCollection(w http.ResponseWriter, fc *geojson.FeatureCollection) {
	body, err := fc.MarshalJSON()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck // the client is gone if this fails
}

// writeError answers invalid input with 400 and the error text. Anything
// else is logged and reported to the client as fallback.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, domain.ErrInvalidArgument) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeMessage(w, http.StatusInternalServerError, fallback)
}

// decodeJSON reads exactly one JSON value from the request body. Malformed
// or oversized bodies are ErrInvalidArgument.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrInvalidArgument, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", domain.ErrInvalidArgument)
	}
	return nil
}

func wantsGeoJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "geojson"
}

func invalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, msg)
}
