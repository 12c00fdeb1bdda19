package notifier

import (
	"carrental/pkg/config"
	"carrental/pkg/model"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "Notifications"

type NotificationStore interface {
	// Save records n. It returns false without error when a notification with the same
	// id already exists.
	Save(ctx context.Context, n *model.Notification) (bool, error)
}

type mongoNotificationStore struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoNotificationStore(cfg *config.Config) NotificationStore {
	return &mongoNotificationStore{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func (s *mongoNotificationStore) Save(ctx context.Context, n *model.Notification) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, n); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to save notification: %w", err)
	}
	return true, nil
}
