package mongodb

import (
	"context"
	"fmt"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type driverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) interfaces.DriverRepository {
	return &driverRepository{collection: db.Collection("drivers")}
}

func (r *driverRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error) {
	return findOne[models.Driver](ctx, r.collection, bson.M{"user": userID}, "driver")
}

func (r *driverRepository) Activate(ctx context.Context, userID primitive.ObjectID, change models.DriverStatusChange) error {
	change.Status = models.DriverStatusActive
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{
			"$set":  bson.M{"status": models.DriverStatusActive, "updatedAt": time.Now()},
			"$push": bson.M{"statusHistory": change},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to activate driver: %w", err)
	}
	return nil
}
