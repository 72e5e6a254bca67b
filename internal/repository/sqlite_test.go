package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	err = store.Load(context.Background(), Snapshot{
		Segments: []domain.Segment{
			{ID: 10, Carrier: "la", FlightNumber: "3300", Origin: "gru", Destination: "rec",
				DepartureDate: domain.Date(2024, time.May, 1), DepartureTime: domain.NewClock(23, 10, 0), ArrivalTime: domain.NewClock(2, 20, 0)},
			{ID: 11, Carrier: "AD", FlightNumber: "4100", Origin: "REC", Destination: "AJU",
				DepartureDate: domain.Date(2024, time.May, 3), DepartureTime: domain.NewClock(9, 0, 0), ArrivalTime: domain.NewClock(10, 0, 0)},
			{ID: 12, Carrier: "AD", FlightNumber: "4102", Origin: "REC", Destination: "AJU",
				DepartureDate: domain.Date(2024, time.May, 20), DepartureTime: domain.NewClock(9, 0, 0), ArrivalTime: domain.NewClock(10, 0, 0)},
		},
		Carriers: domain.CarrierScores{"LA": 80, "AD": 0},
		Tariffs: []domain.Tariff{
			{Origin: "GRU", Destination: "REC", Carrier: "LA", Service: "STANDARD", Rate: 12.5},
		},
		Airports: []domain.AirportInfo{
			{IATA: "GRU", Name: "Guarulhos", Latitude: ptr(-23.43), Longitude: ptr(-46.47)},
			{IATA: "REC", Name: "Recife"},
			{IATA: "AJU", Name: "Aracaju"},
			{IATA: "NVT", Name: "Navegantes"},
		},
		Cities: []domain.City{
			{Name: "Itajaí", UF: "sc", Latitude: -26.9078, Longitude: -48.6619},
			{Name: "Balneário Camboriú", UF: "SC", Latitude: -26.9906, Longitude: -48.6348},
			{Name: "Itajaí", UF: "PR", Latitude: -1, Longitude: -1},
		},
	})
	require.NoError(t, err)
	return store
}

func TestSQLiteStore_Segments(t *testing.T) {
	store := openTestStore(t)

	segs, err := store.Segments().ListActive(context.Background(), domain.Date(2024, time.May, 1), domain.Date(2024, time.May, 6))

	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, int64(10), segs[0].ID)
	assert.Equal(t, "LA", segs[0].Carrier)
	assert.Equal(t, "GRU", segs[0].Origin)
	assert.True(t, segs[0].Overnight())
	assert.Equal(t, domain.Date(2024, time.May, 1), segs[0].DepartureDate)
	assert.Equal(t, domain.NewClock(2, 20, 0), segs[0].ArrivalTime)
}

func TestSQLiteStore_Reference(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	scores, err := store.Carriers().Scores(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80, scores.Score("LA"))
	assert.True(t, scores.Excluded("AD"))

	tariffs, err := store.Tariffs().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, tariffs, 1)
	assert.Equal(t, 12.5, tariffs[0].Rate)

	found, err := store.Airports().FindByCodes(ctx, []string{"gru", "REC", "XXX"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	require.NotNil(t, found["GRU"].Latitude)
	assert.Equal(t, -23.43, *found["GRU"].Latitude)
	assert.Nil(t, found["REC"].Latitude)

	active, err := store.Airports().ListActive(ctx)
	require.NoError(t, err)
	var codes []string
	for _, a := range active {
		codes = append(codes, a.IATA)
	}
	// AJU only receives flights
	assert.Equal(t, []string{"GRU", "REC"}, codes)
}

func TestSQLiteStore_LoadReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx, Snapshot{}))

	segs, err := store.Segments().ListActive(ctx, domain.Date(2024, time.January, 1), domain.Date(2024, time.December, 31))
	require.NoError(t, err)
	assert.Empty(t, segs)

	found, err := store.Airports().FindByCodes(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSQLiteStore_ListAllAirports(t *testing.T) {
	store := openTestStore(t)

	all, err := store.Airports().ListAll(context.Background())

	require.NoError(t, err)
	var codes []string
	for _, a := range all {
		codes = append(codes, a.IATA)
	}
	assert.Equal(t, []string{"AJU", "GRU", "NVT", "REC"}, codes)
}

func TestSQLiteStore_FindCity(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	city, err := store.Cities().FindCity(ctx, "itajai", "SC")
	require.NoError(t, err)
	require.NotNil(t, city)
	assert.Equal(t, "Itajaí", city.Name)
	assert.Equal(t, "SC", city.UF)
	assert.Equal(t, -26.9078, city.Latitude)

	city, err = store.Cities().FindCity(ctx, "Camboriu", "sc")
	require.NoError(t, err)
	require.NotNil(t, city)
	assert.Equal(t, "Balneário Camboriú", city.Name)

	city, err = store.Cities().FindCity(ctx, "Itajaí", "RS")
	require.NoError(t, err)
	assert.Nil(t, city)
}
