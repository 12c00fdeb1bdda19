package model

import "time"

type Reservation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	CarID     int64     `json:"car_id" bson:"car_id" validate:"required,min=1"`
	UserID    int64     `json:"user_id" bson:"user_id" validate:"required,min=1"`
	StartDate time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" bson:"end_date" validate:"required,gtfield=StartDate"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewReservation binds a reservation to a car and user. Dates are truncated to
// calendar days and CreatedAt is fixed to now.
func NewReservation(carID int64, user UserRef, startDate, endDate, now time.Time) *Reservation {
	return &Reservation{
		CarID:     carID,
		UserID:    user.ID,
		StartDate: DateOf(startDate),
		EndDate:   DateOf(endDate),
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}
}

// CreateReservationRequest is the body of POST /api/reservations. Dates are kept as
// strings until validated so that a missing field and a malformed one can be told apart.
type CreateReservationRequest struct {
	CarID     int64  `json:"carId" validate:"required,min=1"`
	StartDate string `json:"startDate" validate:"required,calendar_date"`
	EndDate   string `json:"endDate" validate:"required,calendar_date"`
}
