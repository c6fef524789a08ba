package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	ServiceName string
	Logger      zerolog.Logger
	Flights     *FlightHandler
	Store       Pinger
}

// NewRouter builds the gin engine with the full route table:
//
//	GET  /health
//	GET  /metrics
//	POST /flightapi/flights
//	GET  /flightapi/flights
//	GET  /flightapi/flights/:id
//	GET  /flightapi/flights/destinations/:destination
//	GET  /flightapi/flights/origins/:origin
//	GET  /flightapi/flights/by-price
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		otelgin.Middleware(deps.ServiceName),
		RequestContext(deps.Logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			zerolog.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Msg("handler panicked")
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Code: CodeInternalError, Message: "internal server error"})
		}),
		RequestLogger(),
		RequestMetrics(),
	)

	router.GET("/health", healthHandler(deps.Store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	deps.Flights.Register(router.Group(BasePath))
	return router
}

func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if store != nil {
			if err := store.Ping(ctx); err != nil {
				zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("store ping failed")
				c.JSON(http.StatusServiceUnavailable, errorResponse{Code: CodeUnavailable, Message: "flight store unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
