package notify

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaborIreHun/flightmanager/internal/kafka"
)

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender(zerolog.New(&buf))

	err := s.Send(context.Background(), kafka.FlightEvent{
		Type:        kafka.EventFlightCreated,
		FlightID:    3,
		Origin:      "DUB",
		Destination: "JFK",
		Price:       "450.00",
		OccurredAt:  time.Now(),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"notifier"`)
	assert.Contains(t, out, `"flight_id":3`)
	assert.Contains(t, out, `"price":"450.00"`)
}

func TestSender_SendCancelled(t *testing.T) {
	s := NewSender(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Send(ctx, kafka.FlightEvent{}), context.Canceled)
}
