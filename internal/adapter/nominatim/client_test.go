package nominatim

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
)

const (
	testUserAgent     = "rain-alert-test/1.0"
	testRegion        = ", San Fernando, Pampanga, Philippines"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		userAgent:  testUserAgent,
		region:     testRegion,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "SM City Pampanga"+testRegion, r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[{"lat":"15.0521","lon":"120.6981","display_name":"SM City Pampanga, San Fernando"}]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.Geocode(context.Background(), "SM City Pampanga")
	require.NoError(t, err)

	assert.InDelta(t, 15.0521, result.Lat, 1e-9)
	assert.InDelta(t, 120.6981, result.Lon, 1e-9)
	assert.Equal(t, "SM City Pampanga, San Fernando", result.DisplayName)
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("forward", "success")), 1e-9)
}

func TestClient_Geocode_RegionNotRepeated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Dolores"+testRegion, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Dolores"+testRegion)
	require.NoError(t, err)
}

func TestClient_Geocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.Geocode(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.False(t, result.Found())
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("forward", "empty")), 1e-9)
}

func TestClient_Geocode_EmptyQuery(t *testing.T) {
	_, err := testClient("http://unused").Geocode(context.Background(), "  ")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestClient_ReverseGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "15.027700", r.URL.Query().Get("lat"))
		assert.Equal(t, "120.692400", r.URL.Query().Get("lon"))
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"lat":"15.0277","lon":"120.6924","display_name":"Sto. Rosario, San Fernando"}`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).ReverseGeocode(context.Background(), 15.0277, 120.6924)
	require.NoError(t, err)
	assert.Equal(t, "Sto. Rosario, San Fernando", result.DisplayName)
}

func TestClient_ReverseGeocode_UnableToGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`missing user agent`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ReverseGeocode(context.Background(), 15, 120)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.metrics.GeocodeRequests.WithLabelValues("reverse", "error")), 1e-9)
}

func TestClient_APIErrorBodyTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(strings.Repeat("#", 1<<20)))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "SM City Pampanga")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, maxErrorBodyBytes, strings.Count(err.Error(), "#"))
}

func TestClient_BadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"north","lon":"120.6","display_name":"Somewhere"}]`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Somewhere")
	require.Error(t, err)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.Geocode(context.Background(), "Dolores")
	require.Error(t, err)
}
