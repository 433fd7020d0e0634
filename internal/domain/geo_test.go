package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sanFrancisco = Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	losAngeles   = Coordinate{Latitude: 34.0522, Longitude: -118.2437}
	smDowntown   = Coordinate{Latitude: 15.02773, Longitude: 120.69239}
	staLucia     = Coordinate{Latitude: 15.0218, Longitude: 120.6890}
)

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		{"one degree of longitude at the equator", Coordinate{0, 0}, Coordinate{0, 1}, 111.19492664455873},
		{"one degree of latitude", Coordinate{0, 0}, Coordinate{1, 0}, 111.19492664455873},
		{"san francisco to los angeles", sanFrancisco, losAngeles, 559.1205770615533},
		{"within san fernando", Coordinate{15.0277, 120.6924}, Coordinate{15.0218, 120.689}, 0.7508179863592124},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			assert.InEpsilon(t, tt.want, got, 1e-6)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{sanFrancisco, losAngeles},
		{smDowntown, staLucia},
		{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: 51.5074, Longitude: -0.1278}},
		{{Latitude: 89.9, Longitude: 0}, {Latitude: -89.9, Longitude: 179.9}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p[0], p[1]), Distance(p[1], p[0]), 1e-9)
	}
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	for _, c := range []Coordinate{sanFrancisco, smDowntown, {0, 0}, {-45.5, 170.25}} {
		assert.Zero(t, Distance(c, c))
	}
}

func TestToRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, ToRadians(180), 1e-15)
	assert.InDelta(t, math.Pi/2, ToRadians(90), 1e-15)
	assert.Zero(t, ToRadians(0))
}

func TestPathDistance(t *testing.T) {
	path := []Coordinate{{0, 0}, {0, 1}, {0, 2}}
	assert.InEpsilon(t, 2*111.19492664455873, PathDistance(path), 1e-9)
	assert.Zero(t, PathDistance(path[:1]))
	assert.Zero(t, PathDistance(nil))
}

func TestDestination_RoundTrip(t *testing.T) {
	for _, bearing := range []float64{0, 45, 90, 180, 270, 333} {
		p := Destination(smDowntown, 0.8, bearing)
		assert.InDelta(t, 0.8, Distance(smDowntown, p), 1e-6, "bearing %v", bearing)
	}
}

func TestCoordinate_Wrapped(t *testing.T) {
	tests := []struct {
		name string
		in   Coordinate
		want Coordinate
	}{
		{"in range unchanged", Coordinate{15.03, 120.68}, Coordinate{15.03, 120.68}},
		{"antimeridian kept", Coordinate{0, 180}, Coordinate{0, 180}},
		{"east overflow wraps west", Coordinate{0, 180.004}, Coordinate{0, -179.996}},
		{"west overflow wraps east", Coordinate{0, -180.01}, Coordinate{0, 179.99}},
		{"south pole clamped", Coordinate{-90.005, 3}, Coordinate{-90, 3}},
		{"north pole clamped", Coordinate{90.01, 3}, Coordinate{90, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.wrapped()
			assert.InDelta(t, tt.want.Latitude, got.Latitude, 1e-9)
			assert.InDelta(t, tt.want.Longitude, got.Longitude, 1e-9)
			require.NoError(t, got.Validate())
		})
	}
}

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Coordinate
		wantErr bool
	}{
		{"valid", sanFrancisco, false},
		{"poles and antimeridian", Coordinate{90, 180}, false},
		{"nan latitude", Coordinate{math.NaN(), 0}, true},
		{"infinite longitude", Coordinate{0, math.Inf(1)}, true},
		{"latitude too large", Coordinate{90.0001, 0}, true},
		{"longitude too small", Coordinate{0, -180.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			assert.NoError(t, err)
		})
	}
}
