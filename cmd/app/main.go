package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GaborIreHun/flightmanager/api"
	"github.com/GaborIreHun/flightmanager/config"
	"github.com/GaborIreHun/flightmanager/internal/bootstrap"
	"github.com/GaborIreHun/flightmanager/internal/cache"
	"github.com/GaborIreHun/flightmanager/internal/discount"
	"github.com/GaborIreHun/flightmanager/internal/kafka"
	"github.com/GaborIreHun/flightmanager/internal/logger"
	"github.com/GaborIreHun/flightmanager/internal/repository"
	"github.com/GaborIreHun/flightmanager/internal/service/flights"
	"github.com/GaborIreHun/flightmanager/internal/telemetry"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Bootstrap("flightmanager").Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}
	log := logger.New(cfg.Log, cfg.App.Name)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Telemetry, cfg.App.Name, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("init tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown tracing")
		}
	}()

	var repo repository.FlightRepository
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory flight store; data is lost on restart")
		repo = repository.NewMemoryFlightRepository()
	default:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("connect postgres")
		}
		defer pool.Close()
		repo = repository.NewFlightRepository(pool)
	}

	opts := []flights.FlightServiceOption{}
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		opts = append(opts, flights.WithCache(redisCache))
	}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, flights.WithEvents(producer, cfg.Kafka.FlightEventsTopic))
	}

	flightService := flights.NewFlightService(repo, discount.NewClient(cfg.Discount), opts...)
	router := api.NewRouter(api.RouterDeps{
		ServiceName: cfg.App.Name,
		Logger:      log,
		Flights:     api.NewFlightHandler(flightService),
		Store:       repo,
	})

	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Database.Driver).
		Bool("cache", cfg.Redis.Enabled()).
		Bool("events", cfg.Kafka.Enabled()).
		Bool("trace_export", cfg.Telemetry.ExportEnabled()).
		Str("discount_url", cfg.Discount.BaseURL).
		Msg("configuration loaded")

	if err := bootstrap.Run(ctx, cfg.HTTP, router, log); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
