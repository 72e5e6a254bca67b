package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewPGRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewSegmentRepository(pool))
	assert.NotNil(t, NewCarrierRepository(pool))
	assert.NotNil(t, NewTariffRepository(pool))
	assert.NotNil(t, NewAirportRepository(pool))
	assert.NotNil(t, NewCityRepository(pool))
}

func TestPGCityRepository_FindCity_BlankInput(t *testing.T) {
	repo := NewCityRepository(&pgxpool.Pool{})

	city, err := repo.FindCity(context.Background(), "Itajaí", " ")
	assert.NoError(t, err)
	assert.Nil(t, city)

	city, err = repo.FindCity(context.Background(), "", "SC")
	assert.NoError(t, err)
	assert.Nil(t, city)
}

func TestClockFromPG(t *testing.T) {
	tm := pgtype.Time{Microseconds: (23*time.Hour + 5*time.Minute + 7*time.Second).Microseconds(), Valid: true}
	assert.Equal(t, "23:05:07", clockFromPG(tm).Seconds())
}
