// Package logger builds the zerolog loggers used by the service binaries.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/GaborIreHun/flightmanager/config"
)

// New returns a logger writing to stdout in the configured format.
func New(cfg config.LogConfig, service string) zerolog.Logger {
	return NewWithOutput(cfg, service, os.Stdout)
}

// NewWithOutput is New with a custom writer, used by tests.
func NewWithOutput(cfg config.LogConfig, service string, output io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// FromContext returns the request-scoped logger. A context without one
// yields a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// Bootstrap returns a JSON logger on stderr for failures that happen before
// the configuration, and with it the real logger, is available.
func Bootstrap(service string) *zerolog.Logger {
	return bootstrap(os.Stderr, service)
}

func bootstrap(output io.Writer, service string) *zerolog.Logger {
	l := zerolog.New(output).With().Timestamp().Str("service", service).Logger()
	return &l
}
