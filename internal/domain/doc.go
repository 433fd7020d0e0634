// Package domain models flood hazards reported by residents and the
// route evaluation built on top of them.
//
// # Flooded Areas
//
// A flooded area is a circular geofence: a centre coordinate, an alert
// level and a radius in meters. Areas come from user reports (see
// [FloodReport.FloodedArea]) or from the caller directly. Reports carry no
// radius, so each level maps to a display radius:
//
//	caution   300 m
//	moderate  500 m
//	severe    800 m
//
// # Route Risk
//
// A route is an ordered polyline. [CheckRouteForFlooding] counts every
// (point, area) pair where the point lies within the area, per level, and
// classifies the totals in this order, first match wins:
//
//	severe   > 0             high
//	moderate > 1             high
//	moderate == 1 or caution > 2   medium
//	caution  > 0             low (flooded)
//	otherwise                low (dry)
//
// The thresholds are not monotonic in the number of flooded points; they
// are kept as-is for compatibility with the mobile client.
//
// # Route Generation
//
// Routes are straight-line interpolations in [RouteSteps] steps. The two
// alternatives jitter every interior point by up to 0.005 degrees on each
// axis using the generator's random source. Endpoints are never moved.
//
// # Units
//
// Distances are kilometres unless a name says otherwise. Durations are
// whole minutes. Display strings ("3.4 km", "7 min") are produced by the
// HTTP layer, never here.
package domain
