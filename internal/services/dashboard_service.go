package services

import (
	"context"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

type DashboardBookings struct {
	Total     int64 `json:"total"`
	TourGuide int64 `json:"tourGuide"`
	Hotel     int64 `json:"hotel"`
	Vehicle   int64 `json:"vehicle"`
	Pending   int64 `json:"pending"`
}

type DashboardOverview struct {
	TotalUsers       int64             `json:"totalUsers"`
	PendingApprovals int64             `json:"pendingApprovals"`
	Bookings         DashboardBookings `json:"bookings"`
	TotalRevenue     float64           `json:"totalRevenue"`
}

type dashboardService struct {
	users           interfaces.UserRepository
	bookings        interfaces.BookingRepository
	hotelBookings   interfaces.HotelBookingRepository
	vehicleBookings interfaces.VehicleBookingRepository
	logger          *logger.Logger
}

func NewDashboardService(
	users interfaces.UserRepository,
	bookings interfaces.BookingRepository,
	hotelBookings interfaces.HotelBookingRepository,
	vehicleBookings interfaces.VehicleBookingRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		users:           users,
		bookings:        bookings,
		hotelBookings:   hotelBookings,
		vehicleBookings: vehicleBookings,
		logger:          logger,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	var (
		out                                       DashboardOverview
		tourPending, hotelPending, vehiclePending int64
		tourRevenue, hotelRevenue, vehicleRevenue float64
	)
	revenue := bson.M{"$in": revenueStatuses}

	g, gctx := errgroup.WithContext(ctx)
	counts := []struct {
		dst    *int64
		count  countFunc
		filter bson.M
	}{
		{&out.TotalUsers, s.users.Count, bson.M{}},
		{&out.PendingApprovals, s.users.Count, bson.M{"isVerified": false, "role": bson.M{"$in": models.ServiceProviderRoles}}},
		{&out.Bookings.TourGuide, s.bookings.Count, bson.M{}},
		{&out.Bookings.Hotel, s.hotelBookings.Count, bson.M{}},
		{&out.Bookings.Vehicle, s.vehicleBookings.Count, bson.M{}},
		{&tourPending, s.bookings.Count, bson.M{"status": models.BookingStatusPending}},
		{&hotelPending, s.hotelBookings.Count, bson.M{"bookingStatus": models.BookingStatusPending}},
		{&vehiclePending, s.vehicleBookings.Count, bson.M{"bookingStatus": models.BookingStatusPending}},
	}
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := c.count(gctx, c.filter)
			*c.dst = n
			return err
		})
	}
	sums := []struct {
		dst *float64
		sum sumFunc
		key string
	}{
		{&tourRevenue, s.bookings.SumAmount, "status"},
		{&hotelRevenue, s.hotelBookings.SumAmount, "bookingStatus"},
		{&vehicleRevenue, s.vehicleBookings.SumAmount, "bookingStatus"},
	}
	for _, sm := range sums {
		sm := sm
		g.Go(func() error {
			v, err := sm.sum(gctx, bson.M{sm.key: revenue})
			*sm.dst = v
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to build dashboard overview")
		return nil, NewInfrastructureError("Server error fetching dashboard", err)
	}

	out.Bookings.Total = out.Bookings.TourGuide + out.Bookings.Hotel + out.Bookings.Vehicle
	out.Bookings.Pending = tourPending + hotelPending + vehiclePending
	out.TotalRevenue = tourRevenue + hotelRevenue + vehicleRevenue
	return &out, nil
}
