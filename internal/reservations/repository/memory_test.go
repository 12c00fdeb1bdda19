package repository

import (
	reservationerrors "carrental/internal/reservations/errors"
	"carrental/pkg/model"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(month time.Month, d int) time.Time {
	return time.Date(2030, month, d, 0, 0, 0, 0, time.UTC)
}

func seededStore(t *testing.T, carIDs ...int64) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for _, id := range carIDs {
		require.NoError(t, store.Cars().Create(context.Background(), &model.Car{ID: id, Model: "Corolla"}))
	}
	return store
}

func TestMemoryCars(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, 1)
	cars := store.Cars()

	car, err := cars.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Corolla", car.Model)

	_, err = cars.FindByID(ctx, 999999)
	assert.ErrorIs(t, err, reservationerrors.ErrCarNotFound)

	assert.Error(t, cars.Create(ctx, &model.Car{ID: 1}), "duplicate id must be rejected")

	require.NoError(t, cars.Guard(ctx, 1))
	require.NoError(t, cars.Guard(ctx, 1))
	car, err = cars.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), car.ReservationVersion)

	assert.ErrorIs(t, cars.Guard(ctx, 7), reservationerrors.ErrCarNotFound)
}

func TestMemoryReservations_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t, 1, 2).Reservations()

	first := &model.Reservation{CarID: 1, UserID: 10, StartDate: date(3, 10), EndDate: date(3, 15)}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	touching := &model.Reservation{CarID: 1, UserID: 11, StartDate: date(3, 15), EndDate: date(3, 20)}
	assert.ErrorIs(t, repo.Create(ctx, touching), reservationerrors.ErrOverlapConflict)
	assert.Empty(t, touching.ID)

	otherCar := &model.Reservation{CarID: 2, UserID: 11, StartDate: date(3, 15), EndDate: date(3, 20)}
	require.NoError(t, repo.Create(ctx, otherCar))

	n, err := repo.CountOverlapping(ctx, 1, date(3, 1), date(3, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountOverlapping(ctx, 1, date(3, 16), date(3, 30))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryReservations_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t, 1, 2).Reservations()
	base := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	inputs := []*model.Reservation{
		{CarID: 1, UserID: 5, StartDate: date(6, 1), EndDate: date(6, 3), CreatedAt: base},
		{CarID: 1, UserID: 5, StartDate: date(4, 1), EndDate: date(4, 3), CreatedAt: base.Add(time.Hour)},
		{CarID: 2, UserID: 5, StartDate: date(5, 1), EndDate: date(5, 3), CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range inputs {
		require.NoError(t, repo.Create(ctx, r))
	}

	byCar, err := repo.FindByCar(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byCar, 2)
	assert.Equal(t, date(4, 1), byCar[0].StartDate)
	assert.Equal(t, date(6, 1), byCar[1].StartDate)

	byUser, err := repo.FindByUser(ctx, 5)
	require.NoError(t, err)
	require.Len(t, byUser, 3)
	assert.Equal(t, inputs[2].ID, byUser[0].ID)
	assert.Equal(t, inputs[1].ID, byUser[1].ID)
	assert.Equal(t, inputs[0].ID, byUser[2].ID)

	empty, err := repo.FindByUser(ctx, 404)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryReservations_ResultsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := seededStore(t, 1).Reservations()
	require.NoError(t, repo.Create(ctx, &model.Reservation{CarID: 1, UserID: 1, StartDate: date(1, 1), EndDate: date(1, 2)}))

	got, err := repo.FindByCar(ctx, 1)
	require.NoError(t, err)
	got[0].EndDate = date(12, 31)

	again, err := repo.FindByCar(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, date(1, 2), again[0].EndDate)
}

func TestMemoryReservations_TransactionsSerialize(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t, 1)
	repo := store.Reservations()

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.ExecuteTransaction(ctx, func(ctx context.Context) error {
				mu.Lock()
				active++
				maxSeen = max(maxSeen, active)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestMemoryReservations_TransactionReturnsCallbackError(t *testing.T) {
	repo := NewMemoryStore().Reservations()
	sentinel := errors.New("stop")

	err := repo.ExecuteTransaction(context.Background(), func(context.Context) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = repo.ExecuteTransaction(cancelled, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
