package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TransportMode selects the average speed used for trip durations.
type TransportMode uint8

const (
	ModeCar TransportMode = iota + 1
	ModeBicycle
	ModeMotorcycle
)

// SpeedMetersPerSecond returns the average speed for the mode.
func (m TransportMode) SpeedMetersPerSecond() float64 {
	switch m {
	case ModeBicycle:
		return 5.56
	case ModeMotorcycle:
		return 11.11
	default:
		return 13.89
	}
}

func (m TransportMode) String() string {
	switch m {
	case ModeCar:
		return "car"
	case ModeBicycle:
		return "bicycle"
	case ModeMotorcycle:
		return "motorcycle"
	default:
		return fmt.Sprintf("TransportMode(%d)", uint8(m))
	}
}

// ParseTransportMode parses a mode name. An empty string means car.
func ParseTransportMode(s string) (TransportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "car":
		return ModeCar, nil
	case "bicycle":
		return ModeBicycle, nil
	case "motorcycle":
		return ModeMotorcycle, nil
	default:
		return 0, fmt.Errorf("%w: unknown transport mode %q", ErrInvalidArgument, s)
	}
}

func (m TransportMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *TransportMode) UnmarshalText(text []byte) error {
	parsed, err := ParseTransportMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// TripOption is one candidate of a live trip plan.
type TripOption struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	DistanceKm      float64      `json:"distanceKm"`
	DurationMinutes int          `json:"durationMinutes"`
	ETA             time.Time    `json:"eta"`
	Coordinates     []Coordinate `json:"coordinates"`
	IsFastest       bool         `json:"isFastest"`
	HasFlood        bool         `json:"hasFlood"`
	HasWarning      bool         `json:"hasWarning"`
}

// Selection is the outcome of SelectRoute.
type Selection struct {
	RouteID    string `json:"selectedRouteId"`
	FloodAlert bool   `json:"floodAlert"`
}

// TripPlan bundles the candidates with the recommended one.
type TripPlan struct {
	Mode    TransportMode `json:"mode"`
	Options []TripOption  `json:"routes"`
	Selection
}

// SelectRoute picks the recommended candidate. The first option is the
// primary (fastest) route. A flooded primary raises the flood alert and
// yields to the first dry candidate without a warning, then to the first
// dry candidate with one; when every candidate floods the primary is kept.
// A warning on a dry primary is advisory and never changes the selection.
func SelectRoute(options []TripOption) (Selection, error) {
	if len(options) == 0 {
		return Selection{}, fmt.Errorf("%w: no route candidates", ErrInvalidArgument)
	}

	primary := options[0]
	if !primary.HasFlood {
		return Selection{RouteID: primary.ID}, nil
	}

	sel := Selection{RouteID: primary.ID, FloodAlert: true}
	var warned string
	for _, o := range options {
		switch {
		case !o.HasFlood && !o.HasWarning:
			sel.RouteID = o.ID
			return sel, nil
		case !o.HasFlood && o.HasWarning:
			if warned == "" {
				warned = o.ID
			}
		case o.HasFlood && o.HasWarning, o.HasFlood && !o.HasWarning:
			// flooded candidates are never recommended
		}
	}
	if warned != "" {
		sel.RouteID = warned
	}
	return sel, nil
}

// tripShape describes how a candidate's waypoints and length derive from
// the straight line between start and end.
type tripShape struct {
	id        string
	title     string
	factor    float64
	fastest   bool
	waypoints func(start, end Coordinate) []Coordinate
}

var tripShapes = []tripShape{
	{
		id: "route-1", title: "Fastest Route", factor: 1.0, fastest: true,
		waypoints: func(s, e Coordinate) []Coordinate {
			return []Coordinate{lerp(s, e, 0.3, 0.2), lerp(s, e, 0.7, 0.9)}
		},
	},
	{
		id: "route-2", title: "Alternative", factor: 1.2,
		waypoints: func(s, e Coordinate) []Coordinate {
			return []Coordinate{lerp(s, e, 0.1, 0.5), lerp(s, e, 0.8, 0.1)}
		},
	},
	{
		id: "route-3", title: "Longer Path", factor: 1.5,
		waypoints: func(s, e Coordinate) []Coordinate {
			return []Coordinate{
				Coordinate{Latitude: s.Latitude - 0.01, Longitude: s.Longitude + 0.005}.wrapped(),
				Coordinate{Latitude: e.Latitude + 0.005, Longitude: e.Longitude - 0.01}.wrapped(),
			}
		},
	},
}

func lerp(s, e Coordinate, latFrac, lonFrac float64) Coordinate {
	return Coordinate{
		Latitude:  s.Latitude + (e.Latitude-s.Latitude)*latFrac,
		Longitude: s.Longitude + (e.Longitude-s.Longitude)*lonFrac,
	}
}

// PlanTrip builds the three live-navigation candidates for mode, flags
// each against areas and selects one. A candidate has a flood when its risk
// is medium or high, and a warning when it only grazes low-risk water.
func (p *RoutePlanner) PlanTrip(start, end Coordinate, mode TransportMode, areas []FloodedArea) (TripPlan, error) {
	if err := start.Validate(); err != nil {
		return TripPlan{}, fmt.Errorf("trip start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return TripPlan{}, fmt.Errorf("trip end: %w", err)
	}
	if err := validateAreas(areas); err != nil {
		return TripPlan{}, err
	}

	now := clock.Now()
	speed := mode.SpeedMetersPerSecond()
	baseMeters := Distance(start, end) * 1000

	options := make([]TripOption, 0, len(tripShapes))
	for _, shape := range tripShapes {
		coords := make([]Coordinate, 0, 4)
		coords = append(coords, start)
		coords = append(coords, shape.waypoints(start, end)...)
		coords = append(coords, end)

		assessment, err := CheckRouteForFlooding(coords, areas)
		if err != nil {
			return TripPlan{}, fmt.Errorf("%s: %w", shape.id, err)
		}

		meters := baseMeters * shape.factor
		minutes := int(math.Round(meters / speed / 60))
		options = append(options, TripOption{
			ID:              shape.id,
			Title:           shape.title,
			DistanceKm:      meters / 1000,
			DurationMinutes: minutes,
			ETA:             now.Add(time.Duration(minutes) * time.Minute),
			Coordinates:     coords,
			IsFastest:       shape.fastest,
			HasFlood:        assessment.Risk >= RiskMedium,
			HasWarning:      assessment.HasFlooding && assessment.Risk == RiskLow,
		})
	}

	sel, err := SelectRoute(options)
	if err != nil {
		return TripPlan{}, err
	}
	return TripPlan{Mode: mode, Options: options, Selection: sel}, nil
}
