package http

import (
	"fmt"
	"time"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// Display formats. The domain keeps numbers; only the API renders text.
const (
	distanceFormat = "%.1f km"
	durationFormat = "%d min"
	etaLayout      = time.Kitchen
)

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type userResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type reportRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Address     string   `json:"address"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
}

type reportCreatedResponse struct {
	Message  string `json:"message"`
	ReportID int64  `json:"reportId"`
}

type routeRequest struct {
	Start        *domain.Coordinate   `json:"start"`
	End          *domain.Coordinate   `json:"end"`
	FloodedAreas []domain.FloodedArea `json:"floodedAreas"`
}

type routeDTO struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Distance        string              `json:"distance"`
	Duration        string              `json:"duration"`
	DistanceKm      float64             `json:"distanceKm"`
	DurationMinutes int                 `json:"durationMinutes"`
	FloodRisk       domain.RiskLevel    `json:"floodRisk"`
	HasFlooding     bool                `json:"hasFlooding"`
	Coordinates     []domain.Coordinate `json:"coordinates"`
}

type routesResponse struct {
	Routes []routeDTO `json:"routes"`
}

func toRouteDTOs(routes []domain.Route) []routeDTO {
	out := make([]routeDTO, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeDTO{
			ID:              r.ID,
			Name:            r.Name,
			Distance:        formatDistance(r.DistanceKm),
			Duration:        formatDuration(r.DurationMinutes),
			DistanceKm:      r.DistanceKm,
			DurationMinutes: r.DurationMinutes,
			FloodRisk:       r.Risk,
			HasFlooding:     r.HasFlooding,
			Coordinates:     r.Coordinates,
		})
	}
	return out
}

type tripRequest struct {
	Start        *domain.Coordinate   `json:"start"`
	End          *domain.Coordinate   `json:"end"`
	Destination  string               `json:"destination"`
	Mode         string               `json:"mode"`
	FloodedAreas []domain.FloodedArea `json:"floodedAreas"`
}

type tripOptionDTO struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Distance        string              `json:"distance"`
	Duration        string              `json:"duration"`
	ETA             string              `json:"eta"`
	ArrivalTime     time.Time           `json:"arrivalTime"`
	DistanceKm      float64             `json:"distanceKm"`
	DurationMinutes int                 `json:"durationMinutes"`
	Coordinates     []domain.Coordinate `json:"coordinates"`
	IsFastest       bool                `json:"isFastest"`
	HasFlood        bool                `json:"hasFlood"`
	HasWarning      bool                `json:"hasWarning"`
}

type tripResponse struct {
	Mode            domain.TransportMode    `json:"mode"`
	Destination     *domain.GeocodingResult `json:"destination,omitempty"`
	Routes          []tripOptionDTO         `json:"routes"`
	SelectedRouteID string                  `json:"selectedRouteId"`
	FloodAlert      bool                    `json:"floodAlert"`
}

func toTripResponse(plan domain.TripPlan, dest *domain.GeocodingResult) tripResponse {
	routes := make([]tripOptionDTO, 0, len(plan.Options))
	for _, o := range plan.Options {
		routes = append(routes, tripOptionDTO{
			ID:              o.ID,
			Title:           o.Title,
			Distance:        formatDistance(o.DistanceKm),
			Duration:        formatDuration(o.DurationMinutes),
			ETA:             o.ETA.Format(etaLayout),
			ArrivalTime:     o.ETA,
			DistanceKm:      o.DistanceKm,
			DurationMinutes: o.DurationMinutes,
			Coordinates:     o.Coordinates,
			IsFastest:       o.IsFastest,
			HasFlood:        o.HasFlood,
			HasWarning:      o.HasWarning,
		})
	}
	return tripResponse{
		Mode:            plan.Mode,
		Destination:     dest,
		Routes:          routes,
		SelectedRouteID: plan.RouteID,
		FloodAlert:      plan.FloodAlert,
	}
}

type floodedAreasResponse struct {
	Areas []domain.FloodedArea `json:"areas"`
}

type saveTokenRequest struct {
	UserID int64  `json:"userId"`
	Token  string `json:"token"`
}

type pushAlertRequest struct {
	UserIDs []int64 `json:"userIds"`
	Message string  `json:"message"`
	Level   string  `json:"level"`
}

type pushAlertResponse struct {
	Message string              `json:"message"`
	Tickets []domain.PushTicket `json:"tickets"`
}

type inboxResponse struct {
	Notifications domain.Inbox `json:"notifications"`
	Unread        int          `json:"unread"`
	Added         *bool        `json:"added,omitempty"`
}

func newInboxResponse(ib domain.Inbox) inboxResponse {
	if ib == nil {
		ib = domain.Inbox{}
	}
	return inboxResponse{Notifications: ib, Unread: ib.Unread()}
}

func formatDistance(km float64) string {
	return fmt.Sprintf(distanceFormat, km)
}

func formatDuration(minutes int) string {
	return fmt.Sprintf(durationFormat, minutes)
}
