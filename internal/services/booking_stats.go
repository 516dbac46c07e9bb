package services

import (
	"context"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

// revenueStatuses are the statuses whose amounts count as earned revenue.
var revenueStatuses = []string{string(models.BookingStatusConfirmed), string(models.BookingStatusCompleted)}

type countFunc func(ctx context.Context, filter bson.M) (int64, error)
type sumFunc func(ctx context.Context, filter bson.M) (float64, error)

// statsSource is one primary booking collection as seen by the statistics.
type statsSource struct {
	statusField string
	count       countFunc
	sum         sumFunc
}

type categoryStats struct {
	total, pending, confirmed, completed, cancelled int64
	today, thisWeek, thisMonth                      int64
	revenue                                         float64
}

func (s *bookingQueryService) Statistics(ctx context.Context) (*BookingStats, error) {
	stats, err := s.computeStats(ctx)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Error("Failed to compute booking statistics")
		return nil, NewInfrastructureError(msgFetchBookingsFailed, err)
	}
	return stats, nil
}

// computeStats counts the three primary collections concurrently, ignoring
// filters and pagination, and sums the results.
func (s *bookingQueryService) computeStats(ctx context.Context) (*BookingStats, error) {
	now := s.now()
	sources := []statsSource{
		{statusField: "status", count: s.bookings.Count, sum: s.bookings.SumAmount},
		{statusField: "bookingStatus", count: s.hotelBookings.Count, sum: s.hotelBookings.SumAmount},
		{statusField: "bookingStatus", count: s.vehicleBookings.Count, sum: s.vehicleBookings.SumAmount},
	}
	results := make([]categoryStats, len(sources))

	var tourCount, guideCount int64
	g, gctx := errgroup.WithContext(ctx)
	for i := range sources {
		i := i
		g.Go(func() error {
			var err error
			results[i], err = collectCategoryStats(gctx, sources[i], now)
			return err
		})
	}
	g.Go(func() error {
		var err error
		tourCount, err = s.bookings.Count(gctx, models.KindFilter(models.BookingKindTour))
		if err != nil {
			return err
		}
		guideCount, err = s.bookings.Count(gctx, models.KindFilter(models.BookingKindGuide))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &BookingStats{
		ByType: BookingTypeCounts{
			Tour:    tourCount,
			Guide:   guideCount,
			Hotel:   results[1].total,
			Vehicle: results[2].total,
		},
	}
	for _, r := range results {
		stats.Total += r.total
		stats.Pending += r.pending
		stats.Confirmed += r.confirmed
		stats.Completed += r.completed
		stats.Cancelled += r.cancelled
		stats.Today += r.today
		stats.ThisWeek += r.thisWeek
		stats.ThisMonth += r.thisMonth
		stats.TotalRevenue += r.revenue
	}
	return stats, nil
}

func collectCategoryStats(ctx context.Context, src statsSource, now time.Time) (categoryStats, error) {
	var out categoryStats

	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&out.total, bson.M{}},
		{&out.pending, bson.M{src.statusField: string(models.BookingStatusPending)}},
		{&out.confirmed, bson.M{src.statusField: string(models.BookingStatusConfirmed)}},
		{&out.completed, bson.M{src.statusField: string(models.BookingStatusCompleted)}},
		{&out.cancelled, bson.M{src.statusField: string(models.BookingStatusCancelled)}},
		{&out.today, bson.M{"createdAt": bson.M{"$gte": utils.StartOfDay(now)}}},
		{&out.thisWeek, bson.M{"createdAt": bson.M{"$gte": now.AddDate(0, 0, -7)}}},
		{&out.thisMonth, bson.M{"createdAt": bson.M{"$gte": now.AddDate(0, 0, -30)}}},
	}
	for _, c := range counts {
		n, err := src.count(ctx, c.filter)
		if err != nil {
			return categoryStats{}, err
		}
		*c.dst = n
	}

	revenue, err := src.sum(ctx, bson.M{src.statusField: bson.M{"$in": revenueStatuses}})
	if err != nil {
		return categoryStats{}, err
	}
	out.revenue = revenue
	return out, nil
}
