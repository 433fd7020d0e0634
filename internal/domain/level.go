package domain

import (
	"fmt"
	"strings"
)

// AlertLevel is the severity of a flooded area or report.
// The zero value is not a valid level.
type AlertLevel uint8

const (
	AlertCaution AlertLevel = iota + 1
	AlertModerate
	AlertSevere
)

// AlertLevels lists every valid level in ascending severity.
var AlertLevels = []AlertLevel{AlertCaution, AlertModerate, AlertSevere}

func (l AlertLevel) String() string {
	switch l {
	case AlertCaution:
		return "caution"
	case AlertModerate:
		return "moderate"
	case AlertSevere:
		return "severe"
	default:
		return fmt.Sprintf("AlertLevel(%d)", uint8(l))
	}
}

// Valid reports whether l is one of the declared levels.
func (l AlertLevel) Valid() bool {
	switch l {
	case AlertCaution, AlertModerate, AlertSevere:
		return true
	default:
		return false
	}
}

// AtLeast reports whether l is as severe as floor or more.
func (l AlertLevel) AtLeast(floor AlertLevel) bool {
	return l >= floor
}

// DefaultRadiusMeters is the display radius used when a report carries none.
func (l AlertLevel) DefaultRadiusMeters() float64 {
	switch l {
	case AlertModerate:
		return 500
	case AlertSevere:
		return 800
	default:
		return 300
	}
}

// NotificationLevel maps the alert level onto the inbox vocabulary of the
// mobile client.
func (l AlertLevel) NotificationLevel() string {
	switch l {
	case AlertSevere:
		return "Critical"
	case AlertModerate:
		return "Danger"
	default:
		return DefaultNotificationLevel
	}
}

// ParseAlertLevel parses a level name case-insensitively.
func ParseAlertLevel(s string) (AlertLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "caution":
		return AlertCaution, nil
	case "moderate":
		return AlertModerate, nil
	case "severe":
		return AlertSevere, nil
	default:
		return 0, fmt.Errorf("%w: unknown alert level %q", ErrInvalidArgument, s)
	}
}

func (l AlertLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: cannot marshal %s", ErrInvalidArgument, l)
	}
	return []byte(l.String()), nil
}

func (l *AlertLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseAlertLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// RiskLevel is the flood exposure of a route. Its ordinal drives sorting.
type RiskLevel uint8

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

// Ordinal returns 0 for low, 1 for medium and 2 for high.
func (r RiskLevel) Ordinal() int {
	return int(r)
}

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return fmt.Sprintf("RiskLevel(%d)", uint8(r))
	}
}

// ParseRiskLevel parses a risk name case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return 0, fmt.Errorf("%w: unknown risk level %q", ErrInvalidArgument, s)
	}
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	if r > RiskHigh {
		return nil, fmt.Errorf("%w: cannot marshal %s", ErrInvalidArgument, r)
	}
	return []byte(r.String()), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
