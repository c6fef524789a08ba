package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/GaborIreHun/flightmanager/internal/kafka"
)

// Sender announces newly published flights. It writes a structured
// notification record for each event.
type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log.With().Str("component", "notifier").Logger()}
}

func (s *Sender) Send(ctx context.Context, event kafka.FlightEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info().
		Str("event", event.Type).
		Int64("flight_id", event.FlightID).
		Str("origin", event.Origin).
		Str("destination", event.Destination).
		Str("price", event.Price).
		Time("occurred_at", event.OccurredAt).
		Msg("flight published")
	return nil
}
