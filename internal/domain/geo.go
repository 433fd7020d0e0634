package domain

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate returns an ErrInvalidArgument error when either component is
// non-finite or out of range.
func (c Coordinate) Validate() error {
	if !isFinite(c.Latitude) || !isFinite(c.Longitude) {
		return fmt.Errorf("%w: coordinate (%v, %v) is not finite", ErrInvalidArgument, c.Latitude, c.Longitude)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidArgument, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidArgument, c.Longitude)
	}
	return nil
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

func toDegrees(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// Distance returns the great-circle distance between a and b in kilometres
// using the haversine formula.
func Distance(a, b Coordinate) float64 {
	dLat := ToRadians(b.Latitude - a.Latitude)
	dLon := ToRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(ToRadians(a.Latitude))*math.Cos(ToRadians(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// PathDistance sums the haversine legs between consecutive coordinates.
func PathDistance(path []Coordinate) float64 {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		total += Distance(path[i], path[i+1])
	}
	return total
}

// Destination returns the point reached from origin after travelling
// distanceKm along a great circle with the given initial bearing
// (degrees clockwise from north).
func Destination(origin Coordinate, distanceKm, bearingDeg float64) Coordinate {
	lat1 := ToRadians(origin.Latitude)
	lon1 := ToRadians(origin.Longitude)
	brng := ToRadians(bearingDeg)
	d := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return Coordinate{
		Latitude:  toDegrees(lat2),
		Longitude: normalizeLongitude(toDegrees(lon2)),
	}
}

func normalizeLongitude(lon float64) float64 {
	return math.Mod(lon+540, 360) - 180
}

// wrapped folds a point offset from a valid one back into range: latitude
// is clamped at the poles and longitude wraps across the antimeridian.
func (c Coordinate) wrapped() Coordinate {
	c.Latitude = math.Max(-90, math.Min(90, c.Latitude))
	if c.Longitude < -180 || c.Longitude > 180 {
		c.Longitude = normalizeLongitude(c.Longitude)
	}
	return c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func validatePath(path []Coordinate) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: route needs at least 2 points, got %d", ErrInvalidArgument, len(path))
	}
	for i, c := range path {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("route point %d: %w", i, err)
		}
	}
	return nil
}
