package domain

import (
	geojson "github.com/paulmach/go.geojson"
)

// circleSegments is the number of polygon edges used to draw a flooded area.
const circleSegments = 32

// RoutesFeatureCollection renders routes as LineString features and areas
// as circular Polygon features.
func RoutesFeatureCollection(routes []Route, areas []FloodedArea) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range routes {
		f := geojson.NewLineStringFeature(lineCoordinates(r.Coordinates))
		f.ID = r.ID
		f.SetProperty("name", r.Name)
		f.SetProperty("floodRisk", r.Risk.String())
		f.SetProperty("hasFlooding", r.HasFlooding)
		f.SetProperty("distanceKm", r.DistanceKm)
		f.SetProperty("durationMinutes", r.DurationMinutes)
		fc.AddFeature(f)
	}
	addAreaFeatures(fc, areas)
	return fc
}

// TripFeatureCollection renders trip candidates and areas.
func TripFeatureCollection(plan TripPlan, areas []FloodedArea) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, o := range plan.Options {
		f := geojson.NewLineStringFeature(lineCoordinates(o.Coordinates))
		f.ID = o.ID
		f.SetProperty("title", o.Title)
		f.SetProperty("hasFlood", o.HasFlood)
		f.SetProperty("hasWarning", o.HasWarning)
		f.SetProperty("selected", o.ID == plan.RouteID)
		f.SetProperty("distanceKm", o.DistanceKm)
		f.SetProperty("durationMinutes", o.DurationMinutes)
		fc.AddFeature(f)
	}
	addAreaFeatures(fc, areas)
	return fc
}

// AreasFeatureCollection renders flooded areas only.
func AreasFeatureCollection(areas []FloodedArea) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	addAreaFeatures(fc, areas)
	return fc
}

func addAreaFeatures(fc *geojson.FeatureCollection, areas []FloodedArea) {
	for _, a := range areas {
		f := geojson.NewPolygonFeature([][][]float64{circleRing(a.Location, a.RadiusMeters/1000)})
		f.SetProperty("level", a.Level.String())
		f.SetProperty("radius", a.RadiusMeters)
		fc.AddFeature(f)
	}
}

// lineCoordinates converts to GeoJSON [lon, lat] order.
func lineCoordinates(path []Coordinate) [][]float64 {
	out := make([][]float64, 0, len(path))
	for _, c := range path {
		out = append(out, []float64{c.Longitude, c.Latitude})
	}
	return out
}

// circleRing approximates a circle as a closed ring of circleSegments edges.
func circleRing(center Coordinate, radiusKm float64) [][]float64 {
	ring := make([][]float64, 0, circleSegments+1)
	for i := 0; i <= circleSegments; i++ {
		bearing := 360 * float64(i%circleSegments) / circleSegments
		p := Destination(center, radiusKm, bearing)
		ring = append(ring, []float64{p.Longitude, p.Latitude})
	}
	return ring
}
