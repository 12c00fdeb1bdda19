package model

import "time"

// Notification is the confirmation recorded for a user once a reservation event is
// consumed. ID is the originating event id so redelivered events are recorded once.
type Notification struct {
	ID            string    `json:"id" bson:"_id"`
	ReservationID string    `json:"reservation_id" bson:"reservation_id"`
	UserID        int64     `json:"user_id" bson:"user_id"`
	CarID         int64     `json:"car_id" bson:"car_id"`
	Message       string    `json:"message" bson:"message"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
