package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
)

// SegmentRepository reads the active flight schedule.
type SegmentRepository interface {
	// ListActive returns the segments of the active batch departing within [from, to].
	ListActive(ctx context.Context, from, to time.Time) ([]domain.Segment, error)
}

type CarrierRepository interface {
	Scores(ctx context.Context) (domain.CarrierScores, error)
}

type TariffRepository interface {
	ListActive(ctx context.Context) ([]domain.Tariff, error)
}

type AirportRepository interface {
	FindByCodes(ctx context.Context, codes []string) (map[string]domain.AirportInfo, error)
	// ListActive returns airports that have at least one departure in the active batch.
	ListActive(ctx context.Context) ([]domain.AirportInfo, error)
	// ListAll returns every airport of the active batch.
	ListAll(ctx context.Context) ([]domain.AirportInfo, error)
}

type CityRepository interface {
	// FindCity resolves a city of the state uf by accent-insensitive name. A miss
	// returns nil, nil.
	FindCity(ctx context.Context, name, uf string) (*domain.City, error)
}
