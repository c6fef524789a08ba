package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GaborIreHun/flightmanager/internal/domain"
	"github.com/segmentio/kafka-go"
)

const EventFlightCreated = "flight_created"

type FlightEvent struct {
	Type         string    `json:"type"`
	FlightID     int64     `json:"flight_id"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Price        string    `json:"price"`
	DiscountCode string    `json:"discount_code,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func NewFlightEvent(eventType string, f *domain.Flight) FlightEvent {
	return FlightEvent{
		Type:         eventType,
		FlightID:     f.ID,
		Origin:       f.Origin,
		Destination:  f.Destination,
		Price:        f.Price.StringFixed(domain.PricePlaces),
		DiscountCode: f.DiscountCode,
		OccurredAt:   time.Now().UTC(),
	}
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write message to %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
