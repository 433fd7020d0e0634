package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlertLevel(t *testing.T) {
	tests := []struct {
		in   string
		want AlertLevel
	}{
		{"caution", AlertCaution},
		{"Moderate", AlertModerate},
		{" SEVERE ", AlertSevere},
	}
	for _, tt := range tests {
		got, err := ParseAlertLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "critical", "warning", "sev"} {
		_, err := ParseAlertLevel(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, bad)
	}
}

func TestAlertLevel_Ordering(t *testing.T) {
	assert.True(t, AlertSevere.AtLeast(AlertModerate))
	assert.True(t, AlertModerate.AtLeast(AlertModerate))
	assert.False(t, AlertCaution.AtLeast(AlertModerate))
}

func TestAlertLevel_DefaultRadius(t *testing.T) {
	assert.Equal(t, 300.0, AlertCaution.DefaultRadiusMeters())
	assert.Equal(t, 500.0, AlertModerate.DefaultRadiusMeters())
	assert.Equal(t, 800.0, AlertSevere.DefaultRadiusMeters())
}

func TestAlertLevel_NotificationLevel(t *testing.T) {
	assert.Equal(t, "Warning", AlertCaution.NotificationLevel())
	assert.Equal(t, "Danger", AlertModerate.NotificationLevel())
	assert.Equal(t, "Critical", AlertSevere.NotificationLevel())
}

func TestAlertLevel_JSON(t *testing.T) {
	type payload struct {
		Level AlertLevel `json:"level"`
	}

	data, err := json.Marshal(payload{Level: AlertModerate})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"moderate"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"level":"Severe"}`), &p))
	assert.Equal(t, AlertSevere, p.Level)

	require.Error(t, json.Unmarshal([]byte(`{"level":"flood"}`), &p))

	_, err = json.Marshal(payload{})
	require.Error(t, err)
}

func TestRiskLevel(t *testing.T) {
	assert.Equal(t, 0, RiskLow.Ordinal())
	assert.Equal(t, 1, RiskMedium.Ordinal())
	assert.Equal(t, 2, RiskHigh.Ordinal())

	for _, r := range []RiskLevel{RiskLow, RiskMedium, RiskHigh} {
		text, err := r.MarshalText()
		require.NoError(t, err)
		parsed, err := ParseRiskLevel(string(text))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := RiskLevel(7).MarshalText()
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseRiskLevel("extreme")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
