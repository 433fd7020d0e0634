package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/rain-alert-service/internal/config"
	"github.com/couchcryptid/rain-alert-service/internal/domain"
	"github.com/couchcryptid/rain-alert-service/internal/observability"
)

// maxErrorBodyBytes bounds how much of a failed response is quoted in the error.
const maxErrorBodyBytes = 4 << 10

// Client implements domain.Geocoder against the OpenStreetMap Nominatim API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	region     string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim client from the geocoding settings.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.NominatimTimeout,
		},
		baseURL:   strings.TrimRight(cfg.NominatimBaseURL, "/"),
		userAgent: cfg.NominatimUserAgent,
		region:    cfg.NominatimRegion,
		metrics:   metrics,
		logger:    logger,
	}
}

// Geocode resolves a free-form address. The configured region suffix is
// appended unless the query already ends with it.
func (c *Client) Geocode(ctx context.Context, query string) (domain.GeocodingResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.GeocodingResult{}, fmt.Errorf("%w: geocode query is required", domain.ErrInvalidArgument)
	}
	if c.region != "" && !strings.HasSuffix(q, c.region) {
		q += c.region
	}
	params := url.Values{
		"q":      {q},
		"format": {"json"},
		"limit":  {"1"},
	}

	var places []place
	if err := c.doRequest(ctx, c.baseURL+"/search?"+params.Encode(), "forward", &places); err != nil {
		return domain.GeocodingResult{}, err
	}
	if len(places) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("forward", "empty").Inc()
		return domain.GeocodingResult{}, nil
	}
	return c.toResult(places[0], "forward")
}

// ReverseGeocode converts coordinates to a display name.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	params := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon":    {strconv.FormatFloat(lon, 'f', 6, 64)},
		"format": {"json"},
	}

	var p place
	if err := c.doRequest(ctx, c.baseURL+"/reverse?"+params.Encode(), "reverse", &p); err != nil {
		return domain.GeocodingResult{}, err
	}
	// Nominatim answers 200 with an error field when nothing is there.
	if p.Error != "" || p.DisplayName == "" {
		c.metrics.GeocodeRequests.WithLabelValues("reverse", "empty").Inc()
		return domain.GeocodingResult{}, nil
	}
	return c.toResult(p, "reverse")
}

func (c *Client) doRequest(ctx context.Context, fullURL, method string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("%s geocode request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) toResult(p place, method string) (domain.GeocodingResult, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("parse latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return domain.GeocodingResult{}, fmt.Errorf("parse longitude %q: %w", p.Lon, err)
	}
	c.metrics.GeocodeRequests.WithLabelValues(method, "success").Inc()
	c.logger.Debug("geocoded", "method", method, "display_name", p.DisplayName)
	return domain.GeocodingResult{Lat: lat, Lon: lon, DisplayName: p.DisplayName}, nil
}

// Nominatim API response types. Coordinates arrive as strings.

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}
