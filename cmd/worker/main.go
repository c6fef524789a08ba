package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/GaborIreHun/flightmanager/config"
	"github.com/GaborIreHun/flightmanager/internal/bootstrap"
	"github.com/GaborIreHun/flightmanager/internal/kafka"
	"github.com/GaborIreHun/flightmanager/internal/logger"
	"github.com/GaborIreHun/flightmanager/internal/metrics"
	"github.com/GaborIreHun/flightmanager/internal/notify"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Bootstrap("flightmanager-worker").Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}
	log := logger.New(cfg.Log, cfg.App.Name+"-worker")

	if !cfg.Kafka.Enabled() {
		log.Fatal().Msg("kafka.brokers and kafka.flight_events_topic are required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightEventsTopic)
	defer consumer.Close()

	sender := notify.NewSender(log)

	metricsCfg := config.HTTPConfig{Address: cfg.Worker.MetricsAddress, ReadTimeout: cfg.HTTP.ReadTimeout, WriteTimeout: cfg.HTTP.WriteTimeout}
	go func() {
		if err := bootstrap.Run(ctx, metricsCfg, metricsHandler(), log); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	log.Info().Str("topic", cfg.Kafka.FlightEventsTopic).Str("group", cfg.Kafka.GroupID).Msg("worker started")
	err = consumer.Consume(ctx, eventHandler(log, sender))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("consumer stopped")
		os.Exit(1)
	}
	log.Info().Msg("worker stopped")
}

// eventHandler skips payloads that do not decode so one bad message cannot
// wedge the partition.
func eventHandler(log zerolog.Logger, sender *notify.Sender) func(context.Context, kafkaGo.Message) error {
	return func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.FlightEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn().Err(err).Int64("offset", msg.Offset).Msg("skip undecodable event")
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			return err
		}
		metrics.EventsConsumed.Inc()
		return nil
	}
}

func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
