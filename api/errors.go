package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/GaborIreHun/flightmanager/internal/logger"
)

const (
	CodeInvalidRequest      = "invalid_request"
	CodeValidationError     = "validation_error"
	CodeInvalidPriceRange   = "invalid_price_range"
	CodeNegativePrice       = "negative_price"
	CodeNotFound            = "not_found"
	CodeDiscountUnavailable = "discount_unavailable"
	CodeDiscountTimeout     = "discount_timeout"
	CodeInternalError       = "internal_error"
	CodeUnavailable         = "service_unavailable"
)

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Code: code, Message: message})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, errorResponse{Code: CodeNotFound, Message: message})
}

// writeError maps service errors onto HTTP responses. Only unexpected
// failures are logged at error level.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    CodeValidationError,
			Message: "request validation failed",
			Details: map[string]string{verr.Field: verr.Message},
		})
	case errors.Is(err, domain.ErrFlightNotFound):
		notFound(c, "flight not found")
	case errors.Is(err, domain.ErrNegativePrice):
		badRequest(c, CodeNegativePrice, "discount exceeds flight price")
	case errors.Is(err, domain.ErrInvalidPriceRange):
		badRequest(c, CodeInvalidPriceRange, err.Error())
	case errors.Is(err, domain.ErrDiscountTimeout):
		c.JSON(http.StatusGatewayTimeout, errorResponse{Code: CodeDiscountTimeout, Message: "discount service timed out"})
	case errors.Is(err, domain.ErrDiscountUnavailable):
		c.JSON(http.StatusBadGateway, errorResponse{Code: CodeDiscountUnavailable, Message: "discount service unavailable"})
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Code: CodeInternalError, Message: "internal server error"})
	}
}
