package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/GaborIreHun/flightmanager/internal/service/flights"
)

// BasePath is the prefix every flight route is mounted under.
const BasePath = "/flightapi"

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/flights", h.create)
	router.GET("/flights", h.list)
	router.GET("/flights/:id", h.get)
	router.GET("/flights/destinations/:destination", h.byDestination)
	router.GET("/flights/origins/:origin", h.byOrigin)
	router.GET("/flights/by-price", h.byPriceRange)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, CodeInvalidRequest, "failed to parse request body")
		return
	}
	input := req.toInput()
	if err := flights.ValidateCreateInput(input); err != nil {
		writeError(c, err)
		return
	}

	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", BasePath+"/flights/"+strconv.FormatInt(flight.ID, 10))
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, CodeInvalidRequest, "invalid flight id")
		return
	}
	flight, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	respondList(c, list, err, "no flights found")
}

func (h *FlightHandler) byDestination(c *gin.Context) {
	destination := c.Param("destination")
	list, err := h.service.ByDestination(c.Request.Context(), destination)
	respondList(c, list, err, fmt.Sprintf("no flights to %s", destination))
}

func (h *FlightHandler) byOrigin(c *gin.Context) {
	origin := c.Param("origin")
	list, err := h.service.ByOrigin(c.Request.Context(), origin)
	respondList(c, list, err, fmt.Sprintf("no flights from %s", origin))
}

func (h *FlightHandler) byPriceRange(c *gin.Context) {
	r, ok := parsePriceRange(c)
	if !ok {
		return
	}
	list, err := h.service.ByPriceRange(c.Request.Context(), r)
	respondList(c, list, err, "no flights in price range")
}

// parsePriceRange reads minPrice and maxPrice, writing a 400 response and
// returning false when either is missing, malformed or negative.
func parsePriceRange(c *gin.Context) (domain.PriceRange, bool) {
	var r domain.PriceRange
	for _, p := range []struct {
		name string
		dst  *decimal.Decimal
	}{{"minPrice", &r.Min}, {"maxPrice", &r.Max}} {
		raw, present := c.GetQuery(p.name)
		if !present || raw == "" {
			badRequest(c, CodeInvalidPriceRange, p.name+" is required")
			return r, false
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			badRequest(c, CodeInvalidPriceRange, p.name+" must be a decimal number")
			return r, false
		}
		*p.dst = d
	}
	if err := flights.ValidatePriceRange(r); err != nil {
		writeError(c, err)
		return r, false
	}
	return r, true
}

func respondList(c *gin.Context, list []domain.Flight, err error, emptyMessage string) {
	if err != nil {
		writeError(c, err)
		return
	}
	if len(list) == 0 {
		notFound(c, emptyMessage)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}
