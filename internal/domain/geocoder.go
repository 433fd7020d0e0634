package domain

import "context"

// GeocodingResult is a resolved place.
type GeocodingResult struct {
	Lat         float64 `json:"latitude"`
	Lon         float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}

// Found reports whether the provider returned a place.
func (r GeocodingResult) Found() bool {
	return r.DisplayName != ""
}

// Geocoder resolves addresses and coordinates.
type Geocoder interface {
	// Geocode converts a free-form address to coordinates.
	Geocode(ctx context.Context, query string) (GeocodingResult, error)

	// ReverseGeocode converts coordinates to a display name.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
