package mongodb

import (
	"context"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type tourRepository struct {
	collection *mongo.Collection
}

func NewTourRepository(db *mongo.Database) interfaces.TourRepository {
	return &tourRepository{collection: db.Collection("tours")}
}

func (r *tourRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	return findOne[models.Tour](ctx, r.collection, bson.M{"_id": id}, "tour")
}

func (r *tourRepository) FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	return findIDs(ctx, r.collection, filter, "tour")
}
