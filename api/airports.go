package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airroutes/internal/service/search"
	"github.com/gin-gonic/gin"
)

type AirportHandler struct {
	service search.SearchUseCase
}

func NewAirportHandler(service search.SearchUseCase) *AirportHandler {
	return &AirportHandler{service: service}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/nearest", h.nearest)
	router.GET("/:iata", h.get)
}

func (h *AirportHandler) list(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) get(c *gin.Context) {
	airport, err := h.service.Airport(c.Request.Context(), c.Param("iata"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}

// nearest accepts either ?city=&uf= or ?lat=&lon=.
func (h *AirportHandler) nearest(c *gin.Context) {
	if city, uf := c.Query("city"), c.Query("uf"); city != "" || uf != "" {
		found, err := h.service.NearestAirportToCity(c.Request.Context(), city, uf)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
		return
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lon"})
		return
	}

	airport, err := h.service.NearestAirport(c.Request.Context(), lat, lon)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airport)
}
