package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// alertNamespace scopes alert ids derived from report ids.
var alertNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:rain-alert:flood-report"))

// ParseFloodReportEvent decodes and validates a flood report message.
func ParseFloodReportEvent(raw RawEvent) (FloodReport, error) {
	var report FloodReport
	if err := json.Unmarshal(raw.Value, &report); err != nil {
		return FloodReport{}, fmt.Errorf("parse flood report event: %w", err)
	}
	if err := report.Validate(); err != nil {
		return FloodReport{}, fmt.Errorf("parse flood report event: %w", err)
	}
	return report, nil
}

// NewFloodAlert builds the alert for report, or returns ErrBelowThreshold
// when the report is less severe than minLevel.
func NewFloodAlert(report FloodReport, minLevel AlertLevel) (FloodAlert, error) {
	if !report.Level.AtLeast(minLevel) {
		return FloodAlert{}, fmt.Errorf("%w: %s < %s", ErrBelowThreshold, report.Level, minLevel)
	}
	return FloodAlert{
		ID:        alertID(report.ID),
		ReportID:  report.ID,
		Title:     alertTitle(report.Level),
		Message:   alertMessage(report),
		Level:     report.Level,
		Location:  report.Location(),
		Address:   report.Address,
		CreatedAt: clock.Now(),
	}, nil
}

// alertID is a name-based UUID of the report id, so redelivered reports
// produce the same notification identifier and dedupe in the inbox.
func alertID(reportID int64) string {
	return uuid.NewSHA1(alertNamespace, []byte(strconv.FormatInt(reportID, 10))).String()
}

func alertTitle(level AlertLevel) string {
	return capitalize(level.String()) + " flood alert"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func alertMessage(r FloodReport) string {
	where := r.Address
	if where == "" {
		where = fmt.Sprintf("%.4f, %.4f", r.Latitude, r.Longitude)
	}
	msg := fmt.Sprintf("%s flooding reported near %s.", capitalize(r.Level.String()), where)
	if d := strings.TrimSpace(r.Description); d != "" {
		msg += " " + d
	}
	return msg
}
