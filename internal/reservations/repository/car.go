package repository

import (
	reservationerrors "carrental/internal/reservations/errors"
	"carrental/pkg/config"
	"carrental/pkg/model"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CarsCollection = "Cars"

type mongoCarRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCarRepository(cfg *config.Config) CarRepository {
	return &mongoCarRepository{
		cfg:        cfg,
		collection: database(cfg).Collection(CarsCollection),
	}
}

// Create returns a duplicate key error if a car with the same id exists.
func (r *mongoCarRepository) Create(ctx context.Context, car *model.Car) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, car); err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

func (r *mongoCarRepository) FindByID(ctx context.Context, id int64) (*model.Car, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var car model.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to find car: %w", err)
	}
	return &car, nil
}

func (r *mongoCarRepository) Guard(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"reservation_version": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to guard car %d: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return reservationerrors.ErrCarNotFound
	}
	return nil
}
