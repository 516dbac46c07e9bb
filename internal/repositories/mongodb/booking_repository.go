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

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return findOne[models.Booking](ctx, r.collection, bson.M{"_id": id}, "booking")
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now()
	return updateByID(ctx, r.collection, id, bson.M{"$set": updates}, "booking")
}

func (r *bookingRepository) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Booking, error) {
	return findAll[models.Booking](ctx, r.collection, filter, opts, "bookings")
}

func (r *bookingRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return count(ctx, r.collection, filter, "bookings")
}

func (r *bookingRepository) SumAmount(ctx context.Context, filter bson.M) (float64, error) {
	return sumField(ctx, r.collection, filter, "totalAmount", "bookings")
}

// DailyTrends groups the matching bookings by creation day.
func (r *bookingRepository) DailyTrends(ctx context.Context, filter bson.M) ([]models.DailyBookingTrend, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$totalAmount"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking trends: %w", err)
	}
	defer cursor.Close(ctx)

	trends := make([]models.DailyBookingTrend, 0)
	if err := cursor.All(ctx, &trends); err != nil {
		return nil, fmt.Errorf("failed to decode booking trends: %w", err)
	}
	return trends, nil
}

type legacyBookingRepository struct {
	collections map[models.BookingKind]*mongo.Collection
}

func NewLegacyBookingRepository(db *mongo.Database) interfaces.LegacyBookingRepository {
	return &legacyBookingRepository{
		collections: map[models.BookingKind]*mongo.Collection{
			models.BookingKindTour:  db.Collection("tourbookings"),
			models.BookingKindGuide: db.Collection("guidebookings"),
		},
	}
}

func (r *legacyBookingRepository) collection(kind models.BookingKind) (*mongo.Collection, error) {
	coll, ok := r.collections[kind]
	if !ok {
		return nil, fmt.Errorf("no legacy collection for %q bookings", kind)
	}
	return coll, nil
}

func (r *legacyBookingRepository) Find(ctx context.Context, kind models.BookingKind, opts *utils.QueryOptions) ([]*models.Booking, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	return findAll[models.Booking](ctx, coll, bson.M{}, opts, "legacy "+string(kind)+" bookings")
}

func (r *legacyBookingRepository) Count(ctx context.Context, kind models.BookingKind) (int64, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return 0, err
	}
	return count(ctx, coll, bson.M{}, "legacy "+string(kind)+" bookings")
}

type hotelBookingRepository struct {
	collection *mongo.Collection
}

func NewHotelBookingRepository(db *mongo.Database) interfaces.HotelBookingRepository {
	return &hotelBookingRepository{collection: db.Collection("hotelbookings")}
}

func (r *hotelBookingRepository) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.HotelBooking, error) {
	return findAll[models.HotelBooking](ctx, r.collection, filter, opts, "hotel bookings")
}

func (r *hotelBookingRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return count(ctx, r.collection, filter, "hotel bookings")
}

func (r *hotelBookingRepository) SumAmount(ctx context.Context, filter bson.M) (float64, error) {
	return sumField(ctx, r.collection, filter, "pricing.totalPrice", "hotel bookings")
}

type vehicleBookingRepository struct {
	collection *mongo.Collection
}

func NewVehicleBookingRepository(db *mongo.Database) interfaces.VehicleBookingRepository {
	return &vehicleBookingRepository{collection: db.Collection("vehiclebookings")}
}

func (r *vehicleBookingRepository) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.VehicleBooking, error) {
	return findAll[models.VehicleBooking](ctx, r.collection, filter, opts, "vehicle bookings")
}

func (r *vehicleBookingRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return count(ctx, r.collection, filter, "vehicle bookings")
}

func (r *vehicleBookingRepository) SumAmount(ctx context.Context, filter bson.M) (float64, error) {
	return sumField(ctx, r.collection, filter, "pricing.totalPrice", "vehicle bookings")
}
