package domain

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// RouteSteps is the number of interpolation steps of a generated route,
// which therefore has RouteSteps+1 points.
const RouteSteps = 5

// PerturbationSpan is the width in degrees of the uniform jitter applied to
// interior points of alternative routes; offsets fall in ±PerturbationSpan/2.
const PerturbationSpan = 0.01

// RouteGenerator builds straight-line routes and jittered alternatives.
// It is safe for concurrent use.
type RouteGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRouteGenerator creates a generator drawing from src. A nil src uses a
// randomly seeded PCG source.
func NewRouteGenerator(src rand.Source) *RouteGenerator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &RouteGenerator{rng: rand.New(src)}
}

// NewSeededRouteGenerator creates a generator whose alternatives are
// reproducible for a given seed.
func NewSeededRouteGenerator(seed uint64) *RouteGenerator {
	return NewRouteGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateRoute interpolates RouteSteps+1 collinear points from start to end.
// The endpoints are copied verbatim.
func GenerateRoute(start, end Coordinate) ([]Coordinate, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("route start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("route end: %w", err)
	}

	route := make([]Coordinate, RouteSteps+1)
	route[0] = start
	for i := 1; i < RouteSteps; i++ {
		route[i] = Coordinate{
			Latitude:  start.Latitude + ((end.Latitude-start.Latitude)*float64(i))/RouteSteps,
			Longitude: start.Longitude + ((end.Longitude-start.Longitude)*float64(i))/RouteSteps,
		}
	}
	route[RouteSteps] = end
	return route, nil
}

// GenerateAlternatives returns the main route followed by two variants
// whose interior points are independently jittered.
func (g *RouteGenerator) GenerateAlternatives(start, end Coordinate) ([][]Coordinate, error) {
	primary, err := GenerateRoute(start, end)
	if err != nil {
		return nil, err
	}

	alt1 := make([]Coordinate, len(primary))
	alt2 := make([]Coordinate, len(primary))
	copy(alt1, primary)
	copy(alt2, primary)

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 1; i < len(primary)-1; i++ {
		alt1[i] = Coordinate{
			Latitude:  alt1[i].Latitude + g.offset(),
			Longitude: alt1[i].Longitude + g.offset(),
		}.wrapped()
		alt2[i] = Coordinate{
			Latitude:  alt2[i].Latitude + g.offset(),
			Longitude: alt2[i].Longitude + g.offset(),
		}.wrapped()
	}

	return [][]Coordinate{primary, alt1, alt2}, nil
}

// offset draws one jitter value. Callers hold g.mu.
func (g *RouteGenerator) offset() float64 {
	return (g.rng.Float64() - 0.5) * PerturbationSpan
}
