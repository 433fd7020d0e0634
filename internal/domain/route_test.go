package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRoutes_NoAreasKeepsGenerationOrder(t *testing.T) {
	p := NewRoutePlanner(NewSeededRouteGenerator(1))

	routes, err := p.CalculateRoutes(smDowntown, staLucia, nil)
	require.NoError(t, err)
	require.Len(t, routes, 3)

	assert.Equal(t, []string{"route1", "route2", "route3"}, routeIDs(routes))
	assert.Equal(t, "Main Route", routes[0].Name)
	assert.Equal(t, "Alternative Route 1", routes[1].Name)
	assert.Equal(t, "Alternative Route 2", routes[2].Name)
	for _, r := range routes {
		assert.Equal(t, RiskLow, r.Risk)
		assert.False(t, r.HasFlooding)
	}
}

func TestCalculateRoutes_DistanceAndDuration(t *testing.T) {
	p := NewRoutePlanner(NewSeededRouteGenerator(99))

	routes, err := p.CalculateRoutes(Coordinate{0, 0}, Coordinate{0, 0.1}, nil)
	require.NoError(t, err)
	for _, r := range routes {
		assert.InDelta(t, PathDistance(r.Coordinates), r.DistanceKm, 1e-12)
		assert.Equal(t, int(math.Round(r.DistanceKm*2)), r.DurationMinutes)
	}

	// The straight main route is 0.1 degrees of longitude on the equator.
	main := findRoute(t, routes, "route1")
	assert.InDelta(t, 11.119492664455873, main.DistanceKm, 1e-9)
	assert.Equal(t, 22, main.DurationMinutes)
}

func TestCalculateRoutes_SortsByRiskStable(t *testing.T) {
	// With a zero source every interior point of both alternatives moves
	// 0.005 degrees south-west, away from an area centred on the main route.
	p := NewRoutePlanner(NewRouteGenerator(sourceZero))
	areas := []FloodedArea{area(0, 0.04, AlertSevere, 100)}

	routes, err := p.CalculateRoutes(Coordinate{0, 0}, Coordinate{0, 0.1}, areas)
	require.NoError(t, err)

	assert.Equal(t, []string{"route2", "route3", "route1"}, routeIDs(routes))
	assert.Equal(t, RiskLow, routes[0].Risk)
	assert.Equal(t, RiskLow, routes[1].Risk)
	assert.Equal(t, RiskHigh, routes[2].Risk)
	assert.True(t, routes[2].HasFlooding)
}

func TestCalculateRoutes_NonDecreasingRisk(t *testing.T) {
	p := NewRoutePlanner(NewSeededRouteGenerator(2024))
	areas := []FloodedArea{
		area(37.7749, -122.4194, AlertSevere, 800),
		area(37.7833, -122.4167, AlertModerate, 500),
		area(37.8025, -122.4382, AlertCaution, 300),
		area(37.7923, -122.4102, AlertModerate, 500),
		area(37.7899, -122.4303, AlertCaution, 300),
	}

	for range 25 {
		routes, err := p.CalculateRoutes(Coordinate{37.7700, -122.4300}, Coordinate{37.8050, -122.4050}, areas)
		require.NoError(t, err)
		for i := 1; i < len(routes); i++ {
			assert.LessOrEqual(t, routes[i-1].Risk.Ordinal(), routes[i].Risk.Ordinal())
		}
	}
}

func TestCalculateRoutes_InvalidInput(t *testing.T) {
	p := NewRoutePlanner(NewSeededRouteGenerator(1))

	_, err := p.CalculateRoutes(Coordinate{math.NaN(), 0}, Coordinate{0, 1}, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.CalculateRoutes(Coordinate{0, 0}, Coordinate{0, 1}, []FloodedArea{area(0, 0, AlertCaution, -5)})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalculateRoutes_NearAntimeridianAndPoles(t *testing.T) {
	tests := []struct {
		name       string
		start, end Coordinate
	}{
		{"antimeridian", Coordinate{0, 179.999}, Coordinate{0, 180}},
		{"south pole", Coordinate{-89.995, 0}, Coordinate{-89.99, 1}},
		{"north pole", Coordinate{90, 0}, Coordinate{89.998, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewRoutePlanner(NewSeededRouteGenerator(1))
			for range 50 {
				routes, err := p.CalculateRoutes(tt.start, tt.end, nil)
				require.NoError(t, err)
				for _, r := range routes {
					for _, c := range r.Coordinates {
						require.NoError(t, c.Validate())
					}
					assert.Less(t, r.DistanceKm, 10.0, r.ID)
				}
			}
		})
	}
}

func TestEstimateDurationMinutes(t *testing.T) {
	tests := []struct {
		km   float64
		want int
	}{
		{0, 0},
		{0.24, 0},
		{0.25, 1},
		{3.4, 7},
		{11.119, 22},
		{100, 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateDurationMinutes(tt.km), "km=%v", tt.km)
	}
}

func routeIDs(routes []Route) []string {
	ids := make([]string, len(routes))
	for i, r := range routes {
		ids[i] = r.ID
	}
	return ids
}

func findRoute(t *testing.T, routes []Route, id string) Route {
	t.Helper()
	for _, r := range routes {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("route %s not found", id)
	return Route{}
}
