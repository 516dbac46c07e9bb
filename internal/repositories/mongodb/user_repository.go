package mongodb

import (
	"context"
	"strings"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, bson.M{"_id": id}, "user")
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.collection, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, "user")
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now()
	return updateByID(ctx, r.collection, id, bson.M{"$set": updates}, "user")
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.collection, id, "user")
}

func (r *userRepository) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.User, error) {
	return findAll[models.User](ctx, r.collection, filter, opts, "users")
}

func (r *userRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return count(ctx, r.collection, filter, "users")
}

func (r *userRepository) FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	return findIDs(ctx, r.collection, filter, "user")
}
