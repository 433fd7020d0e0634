package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Route is a ranked candidate between two points.
type Route struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	DistanceKm      float64      `json:"distanceKm"`
	DurationMinutes int          `json:"durationMinutes"`
	Risk            RiskLevel    `json:"floodRisk"`
	HasFlooding     bool         `json:"hasFlooding"`
	Coordinates     []Coordinate `json:"coordinates"`
}

// EstimateDurationMinutes assumes an average speed of 30 km/h.
func EstimateDurationMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm * 2))
}

// RoutePlanner evaluates generated routes against flooded areas.
type RoutePlanner struct {
	generator *RouteGenerator
}

// NewRoutePlanner creates a planner over the given generator.
func NewRoutePlanner(generator *RouteGenerator) *RoutePlanner {
	return &RoutePlanner{generator: generator}
}

// CalculateRoutes generates the main route and two alternatives, scores
// each against areas, and returns them sorted from lowest to highest risk.
// Routes of equal risk keep generation order.
func (p *RoutePlanner) CalculateRoutes(start, end Coordinate, areas []FloodedArea) ([]Route, error) {
	if err := validateAreas(areas); err != nil {
		return nil, err
	}
	candidates, err := p.generator.GenerateAlternatives(start, end)
	if err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(candidates))
	for i, coords := range candidates {
		assessment, err := CheckRouteForFlooding(coords, areas)
		if err != nil {
			return nil, err
		}
		distance := PathDistance(coords)
		routes = append(routes, Route{
			ID:              fmt.Sprintf("route%d", i+1),
			Name:            routeName(i),
			DistanceKm:      distance,
			DurationMinutes: EstimateDurationMinutes(distance),
			Risk:            assessment.Risk,
			HasFlooding:     assessment.HasFlooding,
			Coordinates:     coords,
		})
	}

	slices.SortStableFunc(routes, func(a, b Route) int {
		return cmp.Compare(a.Risk.Ordinal(), b.Risk.Ordinal())
	})
	return routes, nil
}

func routeName(index int) string {
	if index == 0 {
		return "Main Route"
	}
	return fmt.Sprintf("Alternative Route %d", index)
}
