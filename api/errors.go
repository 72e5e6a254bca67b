package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/gin-gonic/gin"
)

// StatusClientClosedRequest is reported when the caller went away before the
// search finished.
const StatusClientClosedRequest = 499

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled), domain.IsKind(err, domain.KindCanceled):
		return StatusClientClosedRequest
	case domain.IsKind(err, domain.KindInvalidRequest):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.KindNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.KindDataAccess):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
