// Command routesim plans routes between two points against a set of flooded
// areas and prints the result as a GeoJSON FeatureCollection, ready to drop
// into geojson.io or QGIS.
//
// Usage:
//
//	go run ./cmd/routesim \
//	  -start 15.0300,120.6800 \
//	  -end 15.0500,120.7000 \
//	  -areas data/mock/flooded_areas.json \
//	  -seed 42
//
// With -trip the live-navigation candidates are planned instead, using -mode.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	startFlag := flag.String("start", "", "start point as lat,lon")
	endFlag := flag.String("end", "", "end point as lat,lon")
	areasPath := flag.String("areas", "", "JSON file with an array of flooded areas")
	seed := flag.Uint64("seed", 1, "seed for the alternative route jitter")
	trip := flag.Bool("trip", false, "plan live-navigation candidates instead of ranked routes")
	modeFlag := flag.String("mode", "car", "transport mode for -trip: car, bicycle or motorcycle")
	outPath := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	if *startFlag == "" || *endFlag == "" {
		flag.Usage()
		return fmt.Errorf("-start and -end are required")
	}
	start, err := parsePoint(*startFlag)
	if err != nil {
		return fmt.Errorf("-start: %w", err)
	}
	end, err := parsePoint(*endFlag)
	if err != nil {
		return fmt.Errorf("-end: %w", err)
	}
	areas, err := loadAreas(*areasPath)
	if err != nil {
		return err
	}

	planner := domain.NewRoutePlanner(domain.NewSeededRouteGenerator(*seed))

	var fc *geojson.FeatureCollection
	if *trip {
		mode, err := domain.ParseTransportMode(*modeFlag)
		if err != nil {
			return err
		}
		plan, err := planner.PlanTrip(start, end, mode, areas)
		if err != nil {
			return err
		}
		log.Printf("selected %s (flood alert: %t)", plan.RouteID, plan.FloodAlert)
		fc = domain.TripFeatureCollection(plan, areas)
	} else {
		routes, err := planner.CalculateRoutes(start, end, areas)
		if err != nil {
			return err
		}
		for _, r := range routes {
			log.Printf("%s %-18s %6.2f km %3d min risk=%s", r.ID, r.Name, r.DistanceKm, r.DurationMinutes, r.Risk)
		}
		fc = domain.RoutesFeatureCollection(routes, areas)
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal feature collection: %w", err)
	}
	if *outPath == "" {
		_, err = os.Stdout.Write(append(body, '\n'))
		return err
	}
	return os.WriteFile(*outPath, body, 0o644)
}

func parsePoint(s string) (domain.Coordinate, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("%q is not lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("longitude: %w", err)
	}
	c := domain.Coordinate{Latitude: lat, Longitude: lon}
	return c, c.Validate()
}

func loadAreas(path string) ([]domain.FloodedArea, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read areas: %w", err)
	}
	var areas []domain.FloodedArea
	if err := json.Unmarshal(raw, &areas); err != nil {
		return nil, fmt.Errorf("parse areas %s: %w", path, err)
	}
	return areas, nil
}
