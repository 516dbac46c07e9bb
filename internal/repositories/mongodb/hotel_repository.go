package mongodb

import (
	"context"
	"fmt"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type hotelRepository struct {
	collection *mongo.Collection
}

func NewHotelRepository(db *mongo.Database) interfaces.HotelRepository {
	return &hotelRepository{collection: db.Collection("hotels")}
}

func (r *hotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	now := time.Now()
	hotel.ID = primitive.NewObjectID()
	hotel.CreatedAt = now
	hotel.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, hotel); err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *hotelRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Hotel, error) {
	return findOne[models.Hotel](ctx, r.collection, bson.M{"_id": id}, "hotel")
}

func (r *hotelRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now()
	return updateByID(ctx, r.collection, id, bson.M{"$set": updates}, "hotel")
}

func (r *hotelRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id, "hotel")
}

func (r *hotelRepository) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Hotel, error) {
	return findAll[models.Hotel](ctx, r.collection, filter, opts, "hotels")
}

func (r *hotelRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return count(ctx, r.collection, filter, "hotels")
}
