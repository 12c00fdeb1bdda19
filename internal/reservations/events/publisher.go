package events

import (
	"carrental/pkg/kafka"
	"carrental/pkg/model"
	"context"
	"fmt"
	"strconv"
)

type Publisher interface {
	ReservationCreated(ctx context.Context, r *model.Reservation, user model.UserRef, correlationID string) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer messagePublisher
	source   string
}

// NewKafkaPublisher keys every event by car id so events for one car stay ordered.
func NewKafkaPublisher(producer messagePublisher, source string) Publisher {
	return &kafkaPublisher{producer: producer, source: source}
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, r *model.Reservation, user model.UserRef, correlationID string) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(r.CarID, 10)).
		WithValue(NewReservationCreated(r, user)).
		WithEventType(TypeReservationCreated).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(correlationID).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", TypeReservationCreated, err)
	}
	return p.producer.Publish(ctx, msg)
}

type noopPublisher struct{}

// NewNoopPublisher is used when Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) ReservationCreated(context.Context, *model.Reservation, model.UserRef, string) error {
	return nil
}
