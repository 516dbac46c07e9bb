package services

import (
	"context"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/utils"
	"serendibgo/pkg/logger"
	"serendibgo/pkg/payment"
	"serendibgo/pkg/sms"
	"serendibgo/pkg/storage"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testLogger = logger.NewNop()

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.User, error) {
	args := m.Called(ctx, filter, opts)
	u, _ := args.Get(0).([]*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, filter)
	ids, _ := args.Get(0).([]primitive.ObjectID)
	return ids, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockBookingRepo) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Booking, error) {
	args := m.Called(ctx, filter, opts)
	b, _ := args.Get(0).([]*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) SumAmount(ctx context.Context, filter bson.M) (float64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockBookingRepo) DailyTrends(ctx context.Context, filter bson.M) ([]models.DailyBookingTrend, error) {
	args := m.Called(ctx, filter)
	t, _ := args.Get(0).([]models.DailyBookingTrend)
	return t, args.Error(1)
}

type mockLegacyRepo struct{ mock.Mock }

func (m *mockLegacyRepo) Find(ctx context.Context, kind models.BookingKind, opts *utils.QueryOptions) ([]*models.Booking, error) {
	args := m.Called(ctx, kind, opts)
	b, _ := args.Get(0).([]*models.Booking)
	return b, args.Error(1)
}

func (m *mockLegacyRepo) Count(ctx context.Context, kind models.BookingKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

type mockHotelBookingRepo struct{ mock.Mock }

func (m *mockHotelBookingRepo) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.HotelBooking, error) {
	args := m.Called(ctx, filter, opts)
	b, _ := args.Get(0).([]*models.HotelBooking)
	return b, args.Error(1)
}

func (m *mockHotelBookingRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHotelBookingRepo) SumAmount(ctx context.Context, filter bson.M) (float64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(float64), args.Error(1)
}

type mockVehicleBookingRepo struct{ mock.Mock }

func (m *mockVehicleBookingRepo) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.VehicleBooking, error) {
	args := m.Called(ctx, filter, opts)
	b, _ := args.Get(0).([]*models.VehicleBooking)
	return b, args.Error(1)
}

func (m *mockVehicleBookingRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVehicleBookingRepo) SumAmount(ctx context.Context, filter bson.M) (float64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(float64), args.Error(1)
}

type mockTourRepo struct{ mock.Mock }

func (m *mockTourRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.Tour)
	return t, args.Error(1)
}

func (m *mockTourRepo) FindIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, filter)
	ids, _ := args.Get(0).([]primitive.ObjectID)
	return ids, args.Error(1)
}

type mockDriverRepo struct{ mock.Mock }

func (m *mockDriverRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(*models.Driver)
	return d, args.Error(1)
}

func (m *mockDriverRepo) Activate(ctx context.Context, userID primitive.ObjectID, change models.DriverStatusChange) error {
	return m.Called(ctx, userID, change).Error(0)
}

type mockVehicleRepo struct{ mock.Mock }

func (m *mockVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Vehicle)
	return v, args.Error(1)
}

func (m *mockVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, set, unset bson.M) error {
	return m.Called(ctx, id, set, unset).Error(0)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVehicleRepo) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Vehicle, error) {
	args := m.Called(ctx, filter, opts)
	v, _ := args.Get(0).([]*models.Vehicle)
	return v, args.Error(1)
}

func (m *mockVehicleRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockHotelRepo struct{ mock.Mock }

func (m *mockHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error {
	return m.Called(ctx, hotel).Error(0)
}

func (m *mockHotelRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Hotel, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*models.Hotel)
	return h, args.Error(1)
}

func (m *mockHotelRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *mockHotelRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHotelRepo) Find(ctx context.Context, filter bson.M, opts *utils.QueryOptions) ([]*models.Hotel, error) {
	args := m.Called(ctx, filter, opts)
	h, _ := args.Get(0).([]*models.Hotel)
	return h, args.Error(1)
}

func (m *mockHotelRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// inlineTx runs the callback directly, standing in for a Mongo session.
type inlineTx struct{ calls int }

func (t *inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	args := m.Called(ctx, request)
	r, _ := args.Get(0).(*sms.SMSResponse)
	return r, args.Error(1)
}

type mockRefunds struct{ mock.Mock }

func (m *mockRefunds) RefundPayment(ctx context.Context, request *payment.RefundRequest) (*payment.RefundResponse, error) {
	args := m.Called(ctx, request)
	r, _ := args.Get(0).(*payment.RefundResponse)
	return r, args.Error(1)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	args := m.Called(ctx, request)
	r, _ := args.Get(0).(*storage.UploadResponse)
	return r, args.Error(1)
}

func (m *mockStorage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

type mockRevoker struct{ mock.Mock }

func (m *mockRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *mockRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
