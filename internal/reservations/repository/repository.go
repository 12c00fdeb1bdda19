package repository

import (
	"carrental/pkg/config"
	mongotx "carrental/pkg/db/mongo"
	"carrental/pkg/model"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id int64) (*model.Car, error)
	// Guard bumps the car's reservation version. Called inside the admission transaction
	// so that two admissions for the same car cannot both commit.
	Guard(ctx context.Context, id int64) error
}

type ReservationRepository interface {
	CountOverlapping(ctx context.Context, carID int64, start, end time.Time) (int64, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByCar(ctx context.Context, carID int64) ([]*model.Reservation, error)
	FindByUser(ctx context.Context, userID int64) ([]*model.Reservation, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

// withTimeout wraps the context with a timeout unless it is bound to a session.
// A SessionContext cannot be wrapped without losing the transaction.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func database(cfg *config.Config) *mongo.Database {
	return cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
}
