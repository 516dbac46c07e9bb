package interfaces

import (
	"context"
	"errors"

	"serendibgo/internal/models"
	"serendibgo/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup by key matches no document.
var ErrNotFound = errors.New("document not found")

// TransactionManager runs fn inside a multi-document transaction. Repository
// calls made with the context passed to fn join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.User, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error)
}

// BookingRepository covers tour and guide bookings in the bookings collection.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error

	Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Booking, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	SumAmount(ctx context.Context, filter bson.M) (float64, error)
	DailyTrends(ctx context.Context, filter bson.M) ([]models.DailyBookingTrend, error)
}

// LegacyBookingRepository reads the pre-migration tourbookings and
// guidebookings collections. They are never filtered.
type LegacyBookingRepository interface {
	Find(ctx context.Context, kind models.BookingKind, opts *utils.QueryOptions) ([]*models.Booking, error)
	Count(ctx context.Context, kind models.BookingKind) (int64, error)
}

type HotelBookingRepository interface {
	Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.HotelBooking, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	SumAmount(ctx context.Context, filter bson.M) (float64, error)
}

type VehicleBookingRepository interface {
	Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.VehicleBooking, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	SumAmount(ctx context.Context, filter bson.M) (float64, error)
}

type TourRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error)
	FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error)
}

type DriverRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error)
	// Activate sets the driver linked to userID active and appends change to
	// its status history. A user without a driver record is not an error.
	Activate(ctx context.Context, userID primitive.ObjectID, change models.DriverStatusChange) error
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, set, unset bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Vehicle, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Hotel, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Hotel, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

type StaffActivityRepository interface {
	Create(ctx context.Context, activity *models.StaffActivity) error
}
