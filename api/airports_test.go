package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/Domenick1991/airroutes/internal/service/search"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAirportHandler_list(t *testing.T) {
	mockService := &MockSearchUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/airports", nil)

	airports := []domain.Airport{{AirportInfo: domain.AirportInfo{IATA: "GRU", Name: "Guarulhos"}}}
	mockService.On("ListAirports", c.Request.Context()).Return(airports, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "GRU", got[0]["iata"])
	assert.NotContains(t, got[0], "distance_km")

	mockService.AssertExpectations(t)
}

func TestAirportHandler_list_Error(t *testing.T) {
	mockService := &MockSearchUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/airports", nil)

	mockService.On("ListAirports", c.Request.Context()).
		Return(nil, &domain.OpError{Op: "list_airports", Kind: domain.KindDataAccess, Err: errors.New("db down")})

	handler.list(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAirportHandler_nearest(t *testing.T) {
	mockService := &MockSearchUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/airports/nearest?lat=-8.05&lon=-34.9", nil)

	mockService.On("NearestAirport", c.Request.Context(), -8.05, -34.9).
		Return(&domain.Airport{AirportInfo: domain.AirportInfo{IATA: "REC", Name: "Recife"}, DistanceKm: 8.9}, nil)

	handler.nearest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "REC", got["iata"])
	assert.Equal(t, 8.9, got["distance_km"])

	mockService.AssertExpectations(t)
}

func TestAirportHandler_nearest_Errors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, target := range []string{"/nearest?lon=1", "/nearest?lat=abc&lon=1", "/nearest?lat=1"} {
		mockService := &MockSearchUseCase{}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", target, nil)

		NewAirportHandler(mockService).nearest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	mockService := &MockSearchUseCase{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/nearest?lat=0&lon=0", nil)
	mockService.On("NearestAirport", c.Request.Context(), 0.0, 0.0).
		Return(nil, &domain.OpError{Op: "nearest_airport", Kind: domain.KindNotFound, Err: domain.ErrNotFound})

	NewAirportHandler(mockService).nearest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAirportHandler_nearest_City(t *testing.T) {
	mockService := &MockSearchUseCase{}
	handler := NewAirportHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/airports/nearest?city=Itaja%C3%AD&uf=SC", nil)

	mockService.On("NearestAirportToCity", c.Request.Context(), "Itajaí", "SC").Return(&search.CityAirport{
		City:    domain.City{Name: "Itajaí", UF: "SC", Latitude: -26.9078, Longitude: -48.6619},
		Airport: domain.Airport{AirportInfo: domain.AirportInfo{IATA: "NVT", Name: "Navegantes"}, DistanceKm: 8.4},
	}, nil)

	handler.nearest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got struct {
		City    map[string]any `json:"city"`
		Airport map[string]any `json:"airport"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Itajaí", got.City["name"])
	assert.Equal(t, "NVT", got.Airport["iata"])
	assert.Equal(t, 8.4, got.Airport["distance_km"])

	mockService.AssertExpectations(t)
	mockService.AssertNotCalled(t, "NearestAirport", mock.Anything, mock.Anything, mock.Anything)
}

func TestAirportHandler_nearest_CityErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		target string
		err    error
		status int
	}{
		{"/nearest?city=Itajai", &domain.OpError{Op: "nearest_airport_to_city", Kind: domain.KindInvalidRequest, Err: domain.ErrInvalidRequest}, http.StatusBadRequest},
		{"/nearest?city=Atlantis&uf=SC", &domain.OpError{Op: "nearest_airport_to_city", Kind: domain.KindNotFound, Err: domain.ErrNotFound}, http.StatusNotFound},
	}
	for _, tc := range cases {
		mockService := &MockSearchUseCase{}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", tc.target, nil)
		mockService.On("NearestAirportToCity", c.Request.Context(), mock.Anything, mock.Anything).Return(nil, tc.err)

		NewAirportHandler(mockService).nearest(c)

		assert.Equal(t, tc.status, w.Code, tc.target)
	}
}

func TestAirportHandler_get(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockService := &MockSearchUseCase{}
	router := gin.New()
	NewAirportHandler(mockService).Register(router.Group("/api/v1/airports"))

	mockService.On("Airport", mock.Anything, "nvt").
		Return(&domain.Airport{AirportInfo: domain.AirportInfo{IATA: "NVT", Name: "Navegantes"}}, nil).Once()
	mockService.On("Airport", mock.Anything, "XXX").
		Return(nil, &domain.OpError{Op: "airport", Kind: domain.KindNotFound, Err: domain.ErrNotFound}).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/airports/nvt", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Navegantes", got["name"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/airports/XXX", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	mockService.AssertExpectations(t)
}
