package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/Domenick1991/airroutes/internal/routing"
	"github.com/Domenick1991/airroutes/internal/service/search"
	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	service search.SearchUseCase
}

func NewRouteHandler(service search.SearchUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.POST("/search", h.search)
}

type searchRequest struct {
	Origins      []string `json:"origins" binding:"required"`
	Destinations []string `json:"destinations" binding:"required"`
	// DateFrom accepts "2006-01-02" or "2006-01-02T15:04" to set the earliest departure.
	DateFrom string  `json:"date_from" binding:"required"`
	DateTo   string  `json:"date_to"`
	Weight   float64 `json:"weight"`
}

func (h *RouteHandler) search(c *gin.Context) {
	var body searchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := search.Request{
		Origins:      body.Origins,
		Destinations: body.Destinations,
		Weight:       body.Weight,
	}
	var err error
	if req.DateFrom, err = parseDate(body.DateFrom); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.DateTo != "" {
		if req.DateTo, err = parseDate(body.DateTo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	res, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		resp := gin.H{"error": err.Error(), "options": routing.EmptyOptions()}
		if res != nil {
			resp["search_id"] = res.SearchID
		}
		c.JSON(statusFor(err), resp)
		return
	}
	c.JSON(http.StatusOK, res)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{domain.DateLayout, "2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}
