package model

// Car is owned by the fleet collaborator; reservations only read it.
// ReservationVersion is bumped by every admitted reservation so that concurrent
// admissions for the same car collide inside the storage transaction.
type Car struct {
	ID                 int64  `json:"id" bson:"_id" validate:"required,min=1"`
	Model              string `json:"model,omitempty" bson:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Plate              string `json:"plate,omitempty" bson:"plate,omitempty" validate:"omitempty,min=1,max=20"`
	ReservationVersion int64  `json:"-" bson:"reservation_version"`
}
