package geo

import (
	"testing"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestHaversine(t *testing.T) {
	// GRU -> GIG is roughly 340 km
	d := Haversine(-23.4356, -46.4731, -22.8100, -43.2506)
	assert.InDelta(t, 338, d, 5)
	assert.Zero(t, Haversine(10, 10, 10, 10))
}

func TestNearest(t *testing.T) {
	airports := []domain.AirportInfo{
		{IATA: "GRU", Name: "Guarulhos", Latitude: ptr(-23.4356), Longitude: ptr(-46.4731)},
		{IATA: "VCP", Name: "Viracopos", Latitude: ptr(-23.0074), Longitude: ptr(-47.1345)},
		{IATA: "XXX", Name: "No coordinates"},
	}

	// Campinas city centre
	a, ok := Nearest(-22.9056, -47.0608, airports)

	require.True(t, ok)
	assert.Equal(t, "VCP", a.IATA)
	assert.Greater(t, a.DistanceKm, 0.0)
	assert.Less(t, a.DistanceKm, 20.0)
}

func TestNearest_NoCandidates(t *testing.T) {
	_, ok := Nearest(0, 0, []domain.AirportInfo{{IATA: "XXX"}})
	assert.False(t, ok)
}
