package notifier

import (
	"carrental/internal/reservations/events"
	"carrental/pkg/kafka"
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrMissingEventID = errors.New("message has no event id")

type Notifier struct {
	store NotificationStore
	log   *logger.Logger
	now   func() time.Time
}

func NewNotifier(store NotificationStore, log *logger.Logger) *Notifier {
	return &Notifier{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Handle is the kafka.MessageHandler for the reservations topic. Events of other types
// are committed without action.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	if msg.GetEventType() != events.TypeReservationCreated {
		n.log.Debug("Skipping event", "event_type", msg.GetEventType(), "offset", msg.Offset)
		return nil
	}

	eventID := msg.GetEventID()
	if eventID == "" {
		return kafka.NewPermanentError("invalid reservation event", ErrMissingEventID)
	}

	var event events.ReservationCreated
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode reservation event", err)
	}
	if event.ReservationID == "" || event.UserID < 1 || event.CarID < 1 {
		return kafka.NewPermanentError("invalid reservation event",
			fmt.Errorf("reservation %q user %d car %d", event.ReservationID, event.UserID, event.CarID))
	}

	notification := &model.Notification{
		ID:            eventID,
		ReservationID: event.ReservationID,
		UserID:        event.UserID,
		CarID:         event.CarID,
		Message:       confirmation(event),
		CreatedAt:     n.now().UTC(),
	}

	created, err := n.store.Save(ctx, notification)
	if err != nil {
		return kafka.NewTransientError("failed to store notification", err)
	}
	if !created {
		n.log.Info("Duplicate reservation event ignored",
			"event_id", eventID,
			"reservation_id", event.ReservationID,
		)
		return nil
	}

	n.log.Info("Reservation confirmation recorded",
		"event_id", eventID,
		"correlation_id", msg.GetCorrelationID(),
		"reservation_id", event.ReservationID,
		"user_id", event.UserID,
	)
	return nil
}

func confirmation(e events.ReservationCreated) string {
	name := e.UserLogin
	if name == "" {
		name = fmt.Sprintf("user %d", e.UserID)
	}
	return fmt.Sprintf("Hello %s, your reservation %s for car %d from %s to %s is confirmed.",
		name, e.ReservationID, e.CarID, e.StartDate, e.EndDate)
}
