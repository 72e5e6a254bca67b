package api

import (
	"context"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/Domenick1991/airroutes/internal/service/search"
	"github.com/stretchr/testify/mock"
)

// MockSearchUseCase is a mock implementation of search.SearchUseCase
type MockSearchUseCase struct {
	mock.Mock
}

func (m *MockSearchUseCase) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.Result), args.Error(1)
}

func (m *MockSearchUseCase) NearestAirport(ctx context.Context, lat, lon float64) (*domain.Airport, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockSearchUseCase) NearestAirportToCity(ctx context.Context, city, uf string) (*search.CityAirport, error) {
	args := m.Called(ctx, city, uf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.CityAirport), args.Error(1)
}

func (m *MockSearchUseCase) Airport(ctx context.Context, iata string) (*domain.Airport, error) {
	args := m.Called(ctx, iata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockSearchUseCase) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}
