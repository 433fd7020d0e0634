package domain

import (
	"fmt"
	"time"
)

// FloodedArea is a circular hazard zone.
type FloodedArea struct {
	Location     Coordinate `json:"location"`
	Level        AlertLevel `json:"level"`
	RadiusMeters float64    `json:"radius"`
}

// Validate returns an ErrInvalidArgument error for a bad centre, an unknown
// level, or a negative or non-finite radius.
func (a FloodedArea) Validate() error {
	if err := a.Location.Validate(); err != nil {
		return fmt.Errorf("flooded area: %w", err)
	}
	if !a.Level.Valid() {
		return fmt.Errorf("%w: flooded area level %s", ErrInvalidArgument, a.Level)
	}
	if !isFinite(a.RadiusMeters) || a.RadiusMeters < 0 {
		return fmt.Errorf("%w: flooded area radius %v", ErrInvalidArgument, a.RadiusMeters)
	}
	return nil
}

// Contains reports whether p lies within the area, boundary included.
func (a FloodedArea) Contains(p Coordinate) bool {
	return Distance(p, a.Location) <= a.RadiusMeters/1000
}

func validateAreas(areas []FloodedArea) error {
	for i := range areas {
		if err := areas[i].Validate(); err != nil {
			return fmt.Errorf("area %d: %w", i, err)
		}
	}
	return nil
}

// FloodReport is a resident-submitted flood sighting.
type FloodReport struct {
	ID          int64      `json:"id"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Address     string     `json:"address,omitempty"`
	Level       AlertLevel `json:"level"`
	Description string     `json:"description,omitempty"`
	ReportedAt  time.Time  `json:"reported_at"`
}

// Location returns the report position.
func (r FloodReport) Location() Coordinate {
	return Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}

// Validate checks the position and level of a new report.
func (r FloodReport) Validate() error {
	if err := r.Location().Validate(); err != nil {
		return fmt.Errorf("flood report: %w", err)
	}
	if !r.Level.Valid() {
		return fmt.Errorf("%w: flood report level %s", ErrInvalidArgument, r.Level)
	}
	return nil
}

// FloodedArea converts the report into a zone sized by its level.
func (r FloodReport) FloodedArea() FloodedArea {
	return FloodedArea{
		Location:     r.Location(),
		Level:        r.Level,
		RadiusMeters: r.Level.DefaultRadiusMeters(),
	}
}

// ActiveFloodedAreas converts reports made at or after since into zones,
// skipping any report that fails validation.
func ActiveFloodedAreas(reports []FloodReport, since time.Time) []FloodedArea {
	areas := make([]FloodedArea, 0, len(reports))
	for _, r := range reports {
		if r.ReportedAt.Before(since) || r.Validate() != nil {
			continue
		}
		areas = append(areas, r.FloodedArea())
	}
	return areas
}

// FloodRecord is a historical flood observation for a barangay.
type FloodRecord struct {
	ID            int64   `json:"id"`
	Year          int     `json:"year"`
	Month         string  `json:"month"`
	Barangay      string  `json:"barangay"`
	FloodDepthM   float64 `json:"flood_depth_m"`
	DurationHours float64 `json:"duration_hours"`
	Cause         string  `json:"cause"`
}
