package service

import (
	"carrental/internal/reservations/availability"
	reservationerrors "carrental/internal/reservations/errors"
	"carrental/internal/reservations/repository"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

type ReservationService interface {
	// Create admits a reservation of carID over [startDate, endDate] for user. Checks run
	// in order: car exists, end after start, car available. The availability check and
	// the insert share one storage transaction.
	Create(ctx context.Context, carID int64, startDate, endDate time.Time, user model.UserRef) (*model.Reservation, error)
	// ListForCar returns the car's reservations by start date, earliest first.
	ListForCar(ctx context.Context, carID int64) ([]*model.Reservation, error)
	// ListForUser returns the user's reservations by creation time, newest first.
	ListForUser(ctx context.Context, userID int64) ([]*model.Reservation, error)
}

type reservationService struct {
	cars         repository.CarRepository
	reservations repository.ReservationRepository
	engine       *availability.Engine
	now          func() time.Time
}

type Option func(*reservationService)

// WithClock replaces time.Now as the source of CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *reservationService) {
		s.now = now
	}
}

func NewReservationService(
	cars repository.CarRepository,
	reservations repository.ReservationRepository,
	opts ...Option,
) ReservationService {
	s := &reservationService{
		cars:         cars,
		reservations: reservations,
		engine:       availability.NewEngine(reservations),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reservationService) Create(ctx context.Context, carID int64, startDate, endDate time.Time, user model.UserRef) (*model.Reservation, error) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return nil, classify(err, carID)
	}

	start, end := model.DateOf(startDate), model.DateOf(endDate)
	if !end.After(start) {
		return nil, classify(reservationerrors.ErrInvalidDateRange, carID)
	}

	var created *model.Reservation
	err = s.reservations.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		available, err := s.engine.IsAvailable(txCtx, car.ID, start, end)
		if err != nil {
			return err
		}
		if !available {
			return reservationerrors.ErrNotAvailable
		}

		if err := s.cars.Guard(txCtx, car.ID); err != nil {
			return err
		}

		reservation := model.NewReservation(car.ID, user, start, end, s.now())
		if err := s.reservations.Create(txCtx, reservation); err != nil {
			return err
		}
		created = reservation
		return nil
	})
	if err != nil {
		return nil, classify(err, carID)
	}

	return created, nil
}

func (s *reservationService) ListForCar(ctx context.Context, carID int64) ([]*model.Reservation, error) {
	if _, err := s.cars.FindByID(ctx, carID); err != nil {
		return nil, classify(err, carID)
	}

	reservations, err := s.reservations.FindByCar(ctx, carID)
	if err != nil {
		return nil, classify(err, carID)
	}
	return reservations, nil
}

func (s *reservationService) ListForUser(ctx context.Context, userID int64) ([]*model.Reservation, error) {
	reservations, err := s.reservations.FindByUser(ctx, userID)
	if err != nil {
		return nil, classify(err, 0)
	}
	return reservations, nil
}

// classify maps storage and rule failures onto AppErrors that still match the
// reservation sentinels with errors.Is.
func classify(err error, carID int64) error {
	switch {
	case errors.Is(err, reservationerrors.ErrCarNotFound):
		return apperrors.NotFoundWithID("Car", strconv.FormatInt(carID, 10)).WithCause(err)
	case errors.Is(err, reservationerrors.ErrInvalidDateRange):
		return apperrors.InvalidInput("End date must be after start date").WithCause(err)
	case errors.Is(err, reservationerrors.ErrNotAvailable):
		return apperrors.Conflict("Car is not available for the selected dates").WithCause(err)
	case errors.Is(err, reservationerrors.ErrOverlapConflict):
		return apperrors.Conflict("Car is not available for the selected dates").
			WithCause(fmt.Errorf("%w: %w", reservationerrors.ErrNotAvailable, err))
	case errors.Is(err, reservationerrors.ErrStorageUnavailable):
		return apperrors.Unavailable("Reservation storage").WithCause(err)
	}
	return apperrors.Unavailable("Reservation storage").
		WithCause(fmt.Errorf("%w: %w", reservationerrors.ErrStorageUnavailable, err))
}
