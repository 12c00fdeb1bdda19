//go:build integration

package repository_test

import (
	mongoMigration "carrental/internal/migrations/mongo"
	reservationerrors "carrental/internal/reservations/errors"
	"carrental/internal/reservations/repository"
	"carrental/internal/reservations/service"
	"carrental/pkg/client"
	"carrental/pkg/config"
	"carrental/pkg/logger"
	"carrental/pkg/model"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newMongoConfig starts a single node replica set, which transactions require.
func newMongoConfig(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetDirect(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mc.Disconnect(context.Background()) })

	cfg := &config.Config{
		MongoDatabaseName: "carrental_test",
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log:               logger.Discard(),
		Client:            &client.Client{Mongo: mc},
	}
	require.NoError(t, mongoMigration.RunMigration(ctx, mc.Database(cfg.MongoDatabaseName), cfg.Log))
	return cfg
}

func date(s string) time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMongo_ConcurrentCreateAdmitsExactlyOne(t *testing.T) {
	cfg := newMongoConfig(t)
	ctx := context.Background()

	cars := repository.NewMongoCarRepository(cfg)
	reservations := repository.NewMongoReservationRepository(cfg)
	require.NoError(t, cars.Create(ctx, &model.Car{ID: 1, Model: "Clio"}))

	svc := service.NewReservationService(cars, reservations)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			<-start
			_, err := svc.Create(ctx, 1, date("2026-06-10"), date("2026-06-12"), model.UserRef{ID: userID})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, reservationerrors.ErrNotAvailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(i + 1))
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	stored, err := reservations.FindByCar(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestMongo_BoundariesAndOrdering(t *testing.T) {
	cfg := newMongoConfig(t)
	ctx := context.Background()

	cars := repository.NewMongoCarRepository(cfg)
	reservations := repository.NewMongoReservationRepository(cfg)
	require.NoError(t, cars.Create(ctx, &model.Car{ID: 1}))
	svc := service.NewReservationService(cars, reservations)

	user := model.UserRef{ID: 5, Login: "alice"}
	_, err := svc.Create(ctx, 1, date("2026-07-10"), date("2026-07-12"), user)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, date("2026-07-12"), date("2026-07-14"), user)
	assert.ErrorIs(t, err, reservationerrors.ErrNotAvailable)

	_, err = svc.Create(ctx, 1, date("2026-07-01"), date("2026-07-09"), user)
	require.NoError(t, err)

	_, err = svc.Create(ctx, 999999, date("2026-07-01"), date("2026-07-09"), user)
	assert.ErrorIs(t, err, reservationerrors.ErrCarNotFound)

	byCar, err := svc.ListForCar(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byCar, 2)
	assert.Equal(t, date("2026-07-01"), byCar[0].StartDate.UTC())
	assert.Equal(t, date("2026-07-10"), byCar[1].StartDate.UTC())

	byUser, err := svc.ListForUser(ctx, 5)
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.False(t, byUser[0].CreatedAt.Before(byUser[1].CreatedAt))
}
