package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type dashboardFixture struct {
	users *mockUserRepo
	tours *mockBookingRepo
	hb    *mockHotelBookingRepo
	vb    *mockVehicleBookingRepo
	svc   DashboardService
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		users: &mockUserRepo{},
		tours: &mockBookingRepo{},
		hb:    &mockHotelBookingRepo{},
		vb:    &mockVehicleBookingRepo{},
	}
	f.svc = NewDashboardService(f.users, f.tours, f.hb, f.vb, testLogger)
	return f
}

func hasKey(key string) interface{} {
	return mock.MatchedBy(func(f bson.M) bool {
		_, ok := f[key]
		return ok
	})
}

func TestDashboardOverview_Totals(t *testing.T) {
	f := newDashboardFixture()
	f.users.On("Count", mock.Anything, hasKey("isVerified")).Return(int64(4), nil)
	f.users.On("Count", mock.Anything, mock.Anything).Return(int64(120), nil)
	f.tours.On("Count", mock.Anything, hasKey("status")).Return(int64(3), nil)
	f.tours.On("Count", mock.Anything, mock.Anything).Return(int64(30), nil)
	f.hb.On("Count", mock.Anything, hasKey("bookingStatus")).Return(int64(2), nil)
	f.hb.On("Count", mock.Anything, mock.Anything).Return(int64(20), nil)
	f.vb.On("Count", mock.Anything, hasKey("bookingStatus")).Return(int64(1), nil)
	f.vb.On("Count", mock.Anything, mock.Anything).Return(int64(10), nil)
	f.tours.On("SumAmount", mock.Anything, hasKey("status")).Return(1000.0, nil)
	f.hb.On("SumAmount", mock.Anything, hasKey("bookingStatus")).Return(500.5, nil)
	f.vb.On("SumAmount", mock.Anything, hasKey("bookingStatus")).Return(250.0, nil)

	out, err := f.svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(120), out.TotalUsers)
	assert.Equal(t, int64(4), out.PendingApprovals)
	assert.Equal(t, DashboardBookings{Total: 60, TourGuide: 30, Hotel: 20, Vehicle: 10, Pending: 6}, out.Bookings)
	assert.InDelta(t, 1750.5, out.TotalRevenue, 0.001)
}

func TestDashboardOverview_FailsOnAnyError(t *testing.T) {
	f := newDashboardFixture()
	f.users.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.tours.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.hb.On("Count", mock.Anything, mock.Anything).Return(int64(0), errors.New("hotel bookings unavailable"))
	f.vb.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.tours.On("SumAmount", mock.Anything, mock.Anything).Return(0.0, nil)
	f.hb.On("SumAmount", mock.Anything, mock.Anything).Return(0.0, nil)
	f.vb.On("SumAmount", mock.Anything, mock.Anything).Return(0.0, nil)

	out, err := f.svc.Overview(context.Background())
	assert.Nil(t, out)
	assert.Equal(t, KindInfrastructure, KindOf(err))
}
