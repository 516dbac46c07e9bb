package mongodb

import (
	"context"
	"fmt"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type staffActivityRepository struct {
	collection *mongo.Collection
}

func NewStaffActivityRepository(db *mongo.Database) interfaces.StaffActivityRepository {
	return &staffActivityRepository{
		collection: db.Collection("staffactivities"),
	}
}

func (r *staffActivityRepository) Create(ctx context.Context, activity *models.StaffActivity) error {
	activity.ID = primitive.NewObjectID()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return fmt.Errorf("failed to create staff activity: %w", err)
	}
	return nil
}
