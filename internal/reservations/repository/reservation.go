package repository

import (
	reservationerrors "carrental/internal/reservations/errors"
	"carrental/pkg/config"
	mongotx "carrental/pkg/db/mongo"
	"carrental/pkg/model"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReservationsCollection = "Reservations"

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: database(cfg).Collection(ReservationsCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func overlapFilter(carID int64, start, end time.Time) bson.M {
	return bson.M{
		"car_id":     carID,
		"start_date": bson.M{"$lte": end},
		"end_date":   bson.M{"$gte": start},
	}
}

func (r *mongoReservationRepository) CountOverlapping(ctx context.Context, carID int64, start, end time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, overlapFilter(carID, start, end))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping reservations: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByCar(ctx context.Context, carID int64) ([]*model.Reservation, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "start_date", Value: 1},
		{Key: "_id", Value: 1},
	})
	return r.find(ctx, bson.M{"car_id": carID}, opts)
}

func (r *mongoReservationRepository) FindByUser(ctx context.Context, userID int64) ([]*model.Reservation, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *mongoReservationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*model.Reservation{}
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// ExecuteTransaction runs fn in a snapshot transaction. Errors returned by fn come back
// untouched; a write conflict that outlived the driver's retries is reported as
// ErrOverlapConflict and a lost connection as ErrStorageUnavailable.
func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	err := r.txManager.ExecuteTransaction(ctx, fn)
	switch {
	case err == nil:
		return nil
	case mongotx.IsUnavailable(err):
		return fmt.Errorf("%w: %v", reservationerrors.ErrStorageUnavailable, err)
	case mongotx.IsWriteConflict(err):
		return fmt.Errorf("%w: %v", reservationerrors.ErrOverlapConflict, err)
	}
	return err
}
