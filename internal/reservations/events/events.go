package events

import (
	"carrental/pkg/model"
	"time"
)

const (
	TypeReservationCreated = "reservation.created"
	SchemaVersion          = "1"
)

// ReservationCreated is published after a reservation has been committed.
type ReservationCreated struct {
	ReservationID string    `json:"reservationId"`
	CarID         int64     `json:"carId"`
	UserID        int64     `json:"userId"`
	UserLogin     string    `json:"userLogin"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewReservationCreated(r *model.Reservation, user model.UserRef) ReservationCreated {
	return ReservationCreated{
		ReservationID: r.ID,
		CarID:         r.CarID,
		UserID:        r.UserID,
		UserLogin:     user.Login,
		StartDate:     model.FormatDate(r.StartDate),
		EndDate:       model.FormatDate(r.EndDate),
		CreatedAt:     r.CreatedAt,
	}
}
