package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/validators"
	"serendibgo/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingFixture struct {
	bookings *mockBookingRepo
	users    *mockUserRepo
	tours    *mockTourRepo
	refunds  *mockRefunds
	svc      *bookingService
}

var bookingNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings: &mockBookingRepo{},
		users:    &mockUserRepo{},
		tours:    &mockTourRepo{},
		refunds:  &mockRefunds{},
	}
	f.svc = NewBookingService(f.bookings, f.users, f.tours, f.refunds, "LKR", testLogger).(*bookingService)
	f.svc.now = fixedClock(bookingNow)
	return f
}

func TestBookingHistory_NewestFirst(t *testing.T) {
	created := bookingNow.Add(-48 * time.Hour)
	cancelled := bookingNow.Add(-time.Hour)
	b := &models.Booking{
		Status:             models.BookingStatusCancelled,
		CreatedAt:          created,
		UpdatedAt:          bookingNow,
		CancelledAt:        &cancelled,
		CancellationReason: "weather",
	}

	history := bookingHistory(b)
	require.Len(t, history, 2)
	assert.Equal(t, "cancelled", history[0].Action)
	assert.Equal(t, cancelled, history[0].Timestamp)
	assert.Equal(t, "weather", history[0].Reason)
	assert.Equal(t, "created", history[1].Action)
}

func TestGetBooking_NotFound(t *testing.T) {
	f := newBookingFixture()
	id := primitive.NewObjectID()
	f.bookings.On("GetByID", mock.Anything, id).Return(nil, interfaces.ErrNotFound)

	_, err := f.svc.GetBooking(context.Background(), id.Hex())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Booking not found", err.Error())
}

func TestGetBooking_InvalidID(t *testing.T) {
	f := newBookingFixture()
	_, err := f.svc.GetBooking(context.Background(), "nope")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUpdateBooking(t *testing.T) {
	staff := primitive.NewObjectID()

	t.Run("invalid status", func(t *testing.T) {
		f := newBookingFixture()
		status := "archived"
		_, err := f.svc.UpdateBooking(context.Background(), primitive.NewObjectID().Hex(), &validators.UpdateBookingRequest{Status: &status}, staff)
		assert.Equal(t, KindValidation, KindOf(err))
		f.bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("stamps modifier and stores notes", func(t *testing.T) {
		f := newBookingFixture()
		booking := tourBooking(bookingNow, models.BookingStatusPending)
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
		f.bookings.On("Update", mock.Anything, booking.ID, mock.MatchedBy(func(u bson.M) bool {
			return u["status"] == "confirmed" &&
				u["staffNotes"] == "called customer" &&
				u["lastModifiedBy"] == staff &&
				u["lastModifiedAt"] == bookingNow &&
				u["groupSize"] == 4
		})).Return(nil)

		status, notes, size := "confirmed", "called customer", 4
		_, err := f.svc.UpdateBooking(context.Background(), booking.ID.Hex(), &validators.UpdateBookingRequest{
			Status: &status, Notes: &notes, GroupSize: &size,
		}, staff)
		require.NoError(t, err)
		f.bookings.AssertExpectations(t)
	})
}

func TestCancelBooking(t *testing.T) {
	staff := primitive.NewObjectID()

	t.Run("already cancelled", func(t *testing.T) {
		f := newBookingFixture()
		booking := tourBooking(bookingNow, models.BookingStatusCancelled)
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

		_, err := f.svc.CancelBooking(context.Background(), booking.ID.Hex(), &validators.CancelBookingRequest{}, staff)
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.Equal(t, "Booking is already cancelled", err.Error())
		f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refund failure leaves booking untouched", func(t *testing.T) {
		f := newBookingFixture()
		booking := tourBooking(bookingNow, models.BookingStatusConfirmed)
		booking.PaymentIntentID = "pi_123"
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
		f.refunds.On("RefundPayment", mock.Anything, mock.Anything).Return(nil, errors.New("card_declined"))

		_, err := f.svc.CancelBooking(context.Background(), booking.ID.Hex(), &validators.CancelBookingRequest{Reason: "ill", RefundAmount: 25}, staff)
		require.Error(t, err)
		assert.Equal(t, KindInfrastructure, KindOf(err))
		f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refund then cancel", func(t *testing.T) {
		f := newBookingFixture()
		booking := tourBooking(bookingNow, models.BookingStatusConfirmed)
		booking.PaymentIntentID = "pi_456"
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
		f.refunds.On("RefundPayment", mock.Anything, mock.MatchedBy(func(r *payment.RefundRequest) bool {
			return r.PaymentIntentID == "pi_456" && r.Amount == 25 &&
				r.Metadata["booking_id"] == booking.ID.Hex() &&
				r.IdempotencyKey == "refund-"+booking.ID.Hex()
		})).Return(&payment.RefundResponse{RefundID: "re_1"}, nil)
		f.bookings.On("Update", mock.Anything, booking.ID, mock.MatchedBy(func(u bson.M) bool {
			return u["refundId"] == "re_1" && u["paymentStatus"] == models.PaymentStatusRefunded && u["status"] == nil
		})).Return(nil).Once()
		f.bookings.On("Update", mock.Anything, booking.ID, mock.MatchedBy(func(u bson.M) bool {
			return u["status"] == models.BookingStatusCancelled &&
				u["cancelledBy"] == staff &&
				u["cancellationReason"] == "ill"
		})).Return(nil).Once()

		_, err := f.svc.CancelBooking(context.Background(), booking.ID.Hex(), &validators.CancelBookingRequest{Reason: "ill", RefundAmount: 25}, staff)
		require.NoError(t, err)
		f.refunds.AssertExpectations(t)
		f.bookings.AssertExpectations(t)
	})

	t.Run("retry after failed status write does not refund twice", func(t *testing.T) {
		f := newBookingFixture()
		booking := tourBooking(bookingNow, models.BookingStatusConfirmed)
		booking.PaymentIntentID = "pi_789"
		refunded := *booking
		refunded.RefundID = "re_9"
		refunded.PaymentStatus = models.PaymentStatusRefunded
		cancelled := refunded
		cancelled.Status = models.BookingStatusCancelled

		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil).Once()
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(&refunded, nil).Once()
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(&cancelled, nil).Once()
		f.refunds.On("RefundPayment", mock.Anything, mock.Anything).Return(&payment.RefundResponse{RefundID: "re_9"}, nil).Once()
		f.bookings.On("Update", mock.Anything, booking.ID, mock.MatchedBy(func(u bson.M) bool {
			return u["refundId"] == "re_9"
		})).Return(nil).Once()
		isCancel := mock.MatchedBy(func(u bson.M) bool { return u["status"] == models.BookingStatusCancelled })
		f.bookings.On("Update", mock.Anything, booking.ID, isCancel).Return(errors.New("write conflict")).Once()
		f.bookings.On("Update", mock.Anything, booking.ID, isCancel).Return(nil).Once()

		req := &validators.CancelBookingRequest{Reason: "ill", RefundAmount: 25}
		_, err := f.svc.CancelBooking(context.Background(), booking.ID.Hex(), req, staff)
		require.Error(t, err)
		assert.Equal(t, KindInfrastructure, KindOf(err))

		got, err := f.svc.CancelBooking(context.Background(), booking.ID.Hex(), req, staff)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, got.Status)
		assert.Equal(t, "re_9", got.RefundID)
		f.refunds.AssertNumberOfCalls(t, "RefundPayment", 1)
		f.bookings.AssertExpectations(t)
	})

	t.Run("unrecorded refund surfaces as infrastructure error", func(t *testing.T) {
		f := newBookingFixture()
		booking := tourBooking(bookingNow, models.BookingStatusConfirmed)
		booking.PaymentIntentID = "pi_000"
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
		f.refunds.On("RefundPayment", mock.Anything, mock.Anything).Return(&payment.RefundResponse{RefundID: "re_0"}, nil)
		f.bookings.On("Update", mock.Anything, booking.ID, mock.Anything).Return(errors.New("timeout")).Once()

		_, err := f.svc.CancelBooking(context.Background(), booking.ID.Hex(), &validators.CancelBookingRequest{RefundAmount: 5}, staff)
		require.Error(t, err)
		assert.Equal(t, KindInfrastructure, KindOf(err))
		f.bookings.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("no payment intent skips refund", func(t *testing.T) {
		f := newBookingFixture()
		booking := tourBooking(bookingNow, models.BookingStatusPending)
		f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
		f.bookings.On("Update", mock.Anything, booking.ID, mock.Anything).Return(nil)

		_, err := f.svc.CancelBooking(context.Background(), booking.ID.Hex(), &validators.CancelBookingRequest{RefundAmount: 10}, staff)
		require.NoError(t, err)
		f.refunds.AssertNotCalled(t, "RefundPayment", mock.Anything, mock.Anything)
	})
}

func TestCreateManualBooking(t *testing.T) {
	staff := primitive.NewObjectID()
	userID, tourID, guideID := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	valid := func() *validators.CreateBookingRequest {
		return &validators.CreateBookingRequest{
			UserID: userID.Hex(), TourID: tourID.Hex(), GuideID: guideID.Hex(),
			StartDate: "2025-04-01", GroupSize: 2, TotalAmount: 300,
		}
	}

	t.Run("missing fields", func(t *testing.T) {
		f := newBookingFixture()
		req := valid()
		req.TourID = ""
		_, err := f.svc.CreateManualBooking(context.Background(), req, staff)
		require.Error(t, err)
		assert.Equal(t, "Missing required fields", err.Error())
	})

	t.Run("guide must have guide role", func(t *testing.T) {
		f := newBookingFixture()
		f.users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
		f.tours.On("GetByID", mock.Anything, tourID).Return(&models.Tour{ID: tourID}, nil)
		f.users.On("GetByID", mock.Anything, guideID).Return(&models.User{ID: guideID, Role: models.UserRoleTourist}, nil)

		_, err := f.svc.CreateManualBooking(context.Background(), valid(), staff)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "Guide not found", err.Error())
	})

	t.Run("creates confirmed paid booking", func(t *testing.T) {
		f := newBookingFixture()
		f.users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
		f.tours.On("GetByID", mock.Anything, tourID).Return(&models.Tour{ID: tourID}, nil)
		f.users.On("GetByID", mock.Anything, guideID).Return(&models.User{ID: guideID, Role: models.UserRoleGuide}, nil)
		f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*models.Booking")).Return(nil)

		booking, err := f.svc.CreateManualBooking(context.Background(), valid(), staff)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
		assert.True(t, booking.IsManualBooking)
		assert.Equal(t, staff, *booking.CreatedBy)
		assert.Regexp(t, `^BK250310-[0-9A-F]{8}$`, booking.BookingReference)
	})
}

func TestGetBookingStatistics(t *testing.T) {
	f := newBookingFixture()
	f.bookings.On("Count", mock.Anything, mock.Anything).Return(int64(4), nil)
	f.bookings.On("SumAmount", mock.Anything, mock.Anything).Return(800.0, nil)
	f.bookings.On("DailyTrends", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		since := filter["createdAt"].(bson.M)["$gte"].(time.Time)
		return since.Equal(bookingNow.AddDate(0, 0, -7))
	})).Return([]models.DailyBookingTrend{{Date: "2025-03-09", Count: 2, Revenue: 400}}, nil)

	stats, err := f.svc.GetStatistics(context.Background(), "7d")
	require.NoError(t, err)
	assert.Equal(t, "7d", stats.Period)
	assert.Equal(t, int64(4), stats.Recent)
	assert.Equal(t, 100.0, stats.AverageBookingValue)
	require.Len(t, stats.DailyTrends, 1)
}

func TestGetBookingConflicts(t *testing.T) {
	f := newBookingFixture()
	_, err := f.svc.GetConflicts(context.Background(), "", "2025-03-01")
	assert.Equal(t, KindValidation, KindOf(err))

	guide := primitive.NewObjectID()
	overlapping := tourBooking(bookingNow, models.BookingStatusConfirmed)
	f.bookings.On("Find", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		end := filter["startDate"].(bson.M)["$lte"].(time.Time)
		return filter["guide"] == guide && end.Hour() == 23
	}), mock.Anything).Return([]*models.Booking{overlapping}, nil)

	conflicts, err := f.svc.GetConflicts(context.Background(), guide.Hex(), "2025-03-01")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, overlapping.ID, conflicts[0].ID)
}
