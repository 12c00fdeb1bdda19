package repository

import (
	"carrental/internal/reservations/availability"
	reservationerrors "carrental/internal/reservations/errors"
	mongotx "carrental/pkg/db/mongo"
	"carrental/pkg/model"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps cars and reservations in process. Transactions are serialized and
// Create rejects overlapping reservations, so it upholds the same no-overlap guarantee
// as the MongoDB repositories.
type MemoryStore struct {
	txMu sync.Mutex

	mu           sync.RWMutex
	cars         map[int64]*model.Car
	reservations []*model.Reservation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cars: make(map[int64]*model.Car),
	}
}

// Cars exposes the store as a CarRepository.
func (s *MemoryStore) Cars() CarRepository {
	return memoryCars{s}
}

func (s *MemoryStore) Reservations() ReservationRepository {
	return memoryReservations{s}
}

type memoryCars struct{ s *MemoryStore }

func (m memoryCars) Create(ctx context.Context, car *model.Car) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.cars[car.ID]; ok {
		return fmt.Errorf("car %d already exists", car.ID)
	}
	c := *car
	m.s.cars[car.ID] = &c
	return nil
}

func (m memoryCars) FindByID(ctx context.Context, id int64) (*model.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	car, ok := m.s.cars[id]
	if !ok {
		return nil, reservationerrors.ErrCarNotFound
	}
	c := *car
	return &c, nil
}

func (m memoryCars) Guard(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	car, ok := m.s.cars[id]
	if !ok {
		return reservationerrors.ErrCarNotFound
	}
	car.ReservationVersion++
	return nil
}

type memoryReservations struct{ s *MemoryStore }

func (m memoryReservations) CountOverlapping(ctx context.Context, carID int64, start, end time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	return m.s.countOverlapping(carID, availability.Interval{Start: start, End: end}), nil
}

func (s *MemoryStore) countOverlapping(carID int64, iv availability.Interval) int64 {
	var n int64
	for _, r := range s.reservations {
		if r.CarID == carID && availability.Overlaps(iv, availability.Interval{Start: r.StartDate, End: r.EndDate}) {
			n++
		}
	}
	return n
}

func (m memoryReservations) Create(ctx context.Context, reservation *model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	iv := availability.Interval{Start: reservation.StartDate, End: reservation.EndDate}
	if m.s.countOverlapping(reservation.CarID, iv) > 0 {
		return reservationerrors.ErrOverlapConflict
	}

	reservation.ID = uuid.NewString()
	r := *reservation
	m.s.reservations = append(m.s.reservations, &r)
	return nil
}

func (m memoryReservations) FindByCar(ctx context.Context, carID int64) ([]*model.Reservation, error) {
	out, err := m.s.filter(ctx, func(r *model.Reservation) bool { return r.CarID == carID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b *model.Reservation) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return out, nil
}

func (m memoryReservations) FindByUser(ctx context.Context, userID int64) ([]*model.Reservation, error) {
	out, err := m.s.filter(ctx, func(r *model.Reservation) bool { return r.UserID == userID })
	if err != nil {
		return nil, err
	}
	// newest first; the later insert wins a tie
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b *model.Reservation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) filter(ctx context.Context, keep func(*model.Reservation) bool) ([]*model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Reservation{}
	for _, r := range s.reservations {
		if keep(r) {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

// ExecuteTransaction runs fn while holding the store's transaction lock.
func (m memoryReservations) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
