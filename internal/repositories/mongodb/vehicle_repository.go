package mongodb

import (
	"context"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type vehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) interfaces.VehicleRepository {
	return &vehicleRepository{collection: db.Collection("vehicles")}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	return findOne[models.Vehicle](ctx, r.collection, bson.M{"_id": id}, "vehicle")
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, set, unset bson.M) error {
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = time.Now()
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return updateByID(ctx, r.collection, id, update, "vehicle")
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id, "vehicle")
}

func (r *vehicleRepository) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Vehicle, error) {
	return findAll[models.Vehicle](ctx, r.collection, filter, opts, "vehicles")
}

func (r *vehicleRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return count(ctx, r.collection, filter, "vehicles")
}
