package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"
	"serendibgo/pkg/logger"
	"serendibgo/pkg/payment"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	GetBooking(ctx context.Context, id string) (*models.BookingDetails, error)
	UpdateBooking(ctx context.Context, id string, req *validators.UpdateBookingRequest, staffID primitive.ObjectID) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string, req *validators.CancelBookingRequest, staffID primitive.ObjectID) (*models.Booking, error)
	CreateManualBooking(ctx context.Context, req *validators.CreateBookingRequest, staffID primitive.ObjectID) (*models.Booking, error)
	GetStatistics(ctx context.Context, period string) (*BookingPeriodStats, error)
	GetConflicts(ctx context.Context, guideID, date string) ([]models.BookingConflict, error)
}

type BookingPeriodStats struct {
	Period              string                     `json:"period"`
	Total               int64                      `json:"total"`
	Pending             int64                      `json:"pending"`
	Confirmed           int64                      `json:"confirmed"`
	Completed           int64                      `json:"completed"`
	Cancelled           int64                      `json:"cancelled"`
	Recent              int64                      `json:"recent"`
	TotalRevenue        float64                    `json:"totalRevenue"`
	RecentRevenue       float64                    `json:"recentRevenue"`
	AverageBookingValue float64                    `json:"averageBookingValue"`
	DailyTrends         []models.DailyBookingTrend `json:"dailyTrends"`
}

type bookingService struct {
	bookings interfaces.BookingRepository
	users    interfaces.UserRepository
	tours    interfaces.TourRepository
	refunds  payment.RefundProvider
	currency string
	logger   *logger.Logger
	now      func() time.Time
}

// NewBookingService builds the booking service. refunds may be nil when no
// payment gateway is configured; cancellations with a refund then fail.
func NewBookingService(
	bookings interfaces.BookingRepository,
	users interfaces.UserRepository,
	tours interfaces.TourRepository,
	refunds payment.RefundProvider,
	currency string,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookings: bookings,
		users:    users,
		tours:    tours,
		refunds:  refunds,
		currency: currency,
		logger:   logger,
		now:      time.Now,
	}
}

func parseObjectID(id, resource string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, NewValidationError("Invalid " + resource + " ID")
	}
	return oid, nil
}

func (s *bookingService) loadBooking(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := parseObjectID(id, "booking")
	if err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFoundError("Booking not found")
		}
		return nil, NewInfrastructureError("Server error fetching booking", err)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.BookingDetails, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &models.BookingDetails{Booking: booking, History: bookingHistory(booking)}
	if u, err := s.users.GetByID(ctx, booking.User); err == nil {
		details.User = userSummary(u)
	}
	if booking.Guide != nil {
		if g, err := s.users.GetByID(ctx, *booking.Guide); err == nil {
			details.Guide = userSummary(g)
		}
	}
	if booking.Tour != nil {
		if t, err := s.tours.GetByID(ctx, *booking.Tour); err == nil {
			details.Tour = t.Summary()
		}
	}
	return details, nil
}

func userSummary(u *models.User) *models.UserSummary {
	return &models.UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone}
}

// bookingHistory synthesizes the timeline of a booking, newest first.
func bookingHistory(b *models.Booking) []models.BookingHistoryEntry {
	history := []models.BookingHistoryEntry{{
		Action:      "created",
		Timestamp:   b.CreatedAt,
		Description: "Booking created",
	}}
	switch b.Status {
	case models.BookingStatusConfirmed:
		history = append(history, models.BookingHistoryEntry{
			Action:      "confirmed",
			Timestamp:   b.UpdatedAt,
			Description: "Booking confirmed",
		})
	case models.BookingStatusCancelled:
		at := b.UpdatedAt
		if b.CancelledAt != nil {
			at = *b.CancelledAt
		}
		history = append(history, models.BookingHistoryEntry{
			Action:      "cancelled",
			Timestamp:   at,
			Description: "Booking cancelled",
			Reason:      b.CancellationReason,
		})
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.After(history[j].Timestamp)
	})
	return history
}

func (s *bookingService) UpdateBooking(ctx context.Context, id string, req *validators.UpdateBookingRequest, staffID primitive.ObjectID) (*models.Booking, error) {
	if req.Status != nil && !models.IsValidBookingStatus(*req.Status) {
		return nil, NewValidationError("Invalid booking status")
	}
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updates := bson.M{"lastModifiedBy": staffID, "lastModifiedAt": now}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.StartDate != nil {
		t, _, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			return nil, NewValidationError("Invalid startDate")
		}
		updates["startDate"] = t
	}
	if req.EndDate != nil {
		t, _, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return nil, NewValidationError("Invalid endDate")
		}
		updates["endDate"] = t
	}
	if req.GroupSize != nil {
		if *req.GroupSize < 1 || *req.GroupSize > 50 {
			return nil, NewValidationError("Group size must be between 1 and 50")
		}
		updates["groupSize"] = *req.GroupSize
	}
	if req.TotalAmount != nil {
		if *req.TotalAmount < 0 {
			return nil, NewValidationError("Total amount cannot be negative")
		}
		updates["totalAmount"] = *req.TotalAmount
	}
	if req.SpecialRequests != nil {
		updates["specialRequests"] = *req.SpecialRequests
	}
	if req.Notes != nil {
		updates["staffNotes"] = *req.Notes
	}

	if err := s.bookings.Update(ctx, booking.ID, updates); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFoundError("Booking not found")
		}
		return nil, NewInfrastructureError("Server error updating booking", err)
	}

	s.logger.LogStaffActivity(staffID, "", "booking_updated", map[string]interface{}{
		"booking_id": booking.ID.Hex(),
	})
	return s.loadBooking(ctx, booking.ID.Hex())
}

func (s *bookingService) CancelBooking(ctx context.Context, id string, req *validators.CancelBookingRequest, staffID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, NewConflictError("Booking is already cancelled")
	}

	now := s.now()
	updates := bson.M{
		"status":             models.BookingStatusCancelled,
		"cancellationReason": req.Reason,
		"cancelledBy":        staffID,
		"cancelledAt":        now,
		"staffNotes":         req.Notes,
	}
	if booking.RefundID == "" {
		updates["refundAmount"] = req.RefundAmount
	}

	// The refund goes first so a failed refund leaves the booking untouched.
	// Its id is stored before the status write; a retry after a failed status
	// write finds it and does not refund twice.
	if req.RefundAmount > 0 && booking.PaymentIntentID != "" && booking.RefundID == "" {
		if err := s.refund(ctx, booking, req, staffID); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.Update(ctx, booking.ID, updates); err != nil {
		return nil, NewInfrastructureError("Server error cancelling booking", err)
	}

	s.logger.LogStaffActivity(staffID, "", "booking_cancelled", map[string]interface{}{
		"booking_id":    booking.ID.Hex(),
		"refund_amount": req.RefundAmount,
	})
	return s.loadBooking(ctx, booking.ID.Hex())
}

func (s *bookingService) refund(ctx context.Context, booking *models.Booking, req *validators.CancelBookingRequest, staffID primitive.ObjectID) error {
	if s.refunds == nil {
		return NewInfrastructureError("Refund could not be processed", errors.New("no payment gateway configured"))
	}
	refund, err := s.refunds.RefundPayment(ctx, &payment.RefundRequest{
		PaymentIntentID: booking.PaymentIntentID,
		Amount:          req.RefundAmount,
		Reason:          req.Reason,
		Metadata: map[string]string{
			"booking_id": booking.ID.Hex(),
			"staff_id":   staffID.Hex(),
			"currency":   s.currency,
		},
		IdempotencyKey: "refund-" + booking.ID.Hex(),
	})
	if err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.ID.Hex()).Error("Refund failed")
		return NewInfrastructureError("Refund could not be processed", err)
	}

	err = s.bookings.Update(ctx, booking.ID, bson.M{
		"refundId":      refund.RefundID,
		"refundAmount":  req.RefundAmount,
		"paymentStatus": models.PaymentStatusRefunded,
	})
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"booking_id": booking.ID.Hex(),
			"refund_id":  refund.RefundID,
		}).Error("Refund issued but not recorded")
		return NewInfrastructureError("Server error cancelling booking", err)
	}
	return nil
}

func (s *bookingService) CreateManualBooking(ctx context.Context, req *validators.CreateBookingRequest, staffID primitive.ObjectID) (*models.Booking, error) {
	if req.UserID == "" || req.TourID == "" || req.GuideID == "" || req.StartDate == "" || req.GroupSize == 0 || req.TotalAmount == 0 {
		return nil, NewValidationError("Missing required fields")
	}

	userID, err := parseObjectID(req.UserID, "user")
	if err != nil {
		return nil, err
	}
	tourID, err := parseObjectID(req.TourID, "tour")
	if err != nil {
		return nil, err
	}
	guideID, err := parseObjectID(req.GuideID, "guide")
	if err != nil {
		return nil, err
	}
	startDate, _, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, NewValidationError("Invalid startDate")
	}
	endDate := startDate
	if req.EndDate != "" {
		if endDate, _, err = utils.ParseDate(req.EndDate); err != nil {
			return nil, NewValidationError("Invalid endDate")
		}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, lookupError(err, "User not found")
	}
	if _, err := s.tours.GetByID(ctx, tourID); err != nil {
		return nil, lookupError(err, "Tour not found")
	}
	guide, err := s.users.GetByID(ctx, guideID)
	if err != nil {
		return nil, lookupError(err, "Guide not found")
	}
	if guide.Role != models.UserRoleGuide {
		return nil, NewNotFoundError("Guide not found")
	}

	now := s.now()
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "manual"
	}
	booking := &models.Booking{
		BookingReference: utils.GenerateBookingReference(utils.BookingReferencePrefix, now),
		User:             userID,
		Tour:             &tourID,
		Guide:            &guideID,
		BookingDate:      now,
		StartDate:        startDate,
		EndDate:          endDate,
		GroupSize:        req.GroupSize,
		TotalAmount:      req.TotalAmount,
		Status:           models.BookingStatusConfirmed,
		PaymentStatus:    models.PaymentStatusPaid,
		PaymentMethod:    paymentMethod,
		SpecialRequests:  req.SpecialRequests,
		StaffNotes:       req.Notes,
		CreatedBy:        &staffID,
		IsManualBooking:  true,
		IsActive:         true,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, NewInfrastructureError("Server error creating booking", err)
	}

	s.logger.LogStaffActivity(staffID, "", "booking_created", map[string]interface{}{
		"booking_id":        booking.ID.Hex(),
		"booking_reference": booking.BookingReference,
	})
	return booking, nil
}

// lookupError maps a repository lookup failure to a service error.
func lookupError(err error, notFound string) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return NewNotFoundError(notFound)
	}
	return NewInfrastructureError("Server error", err)
}

func (s *bookingService) GetStatistics(ctx context.Context, period string) (*BookingPeriodStats, error) {
	days := utils.PeriodDays(period)
	since := s.now().AddDate(0, 0, -days)
	revenueFilter := bson.M{"status": bson.M{"$in": revenueStatuses}}

	stats := &BookingPeriodStats{Period: normalizedPeriod(period)}
	counts := []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, bson.M{}},
		{&stats.Pending, bson.M{"status": models.BookingStatusPending}},
		{&stats.Confirmed, bson.M{"status": models.BookingStatusConfirmed}},
		{&stats.Completed, bson.M{"status": models.BookingStatusCompleted}},
		{&stats.Cancelled, bson.M{"status": models.BookingStatusCancelled}},
		{&stats.Recent, bson.M{"createdAt": bson.M{"$gte": since}}},
	}
	for _, c := range counts {
		n, err := s.bookings.Count(ctx, c.filter)
		if err != nil {
			return nil, NewInfrastructureError("Server error fetching booking statistics", err)
		}
		*c.dst = n
	}

	var err error
	if stats.TotalRevenue, err = s.bookings.SumAmount(ctx, revenueFilter); err != nil {
		return nil, NewInfrastructureError("Server error fetching booking statistics", err)
	}
	recentRevenueFilter := bson.M{"status": revenueFilter["status"], "createdAt": bson.M{"$gte": since}}
	if stats.RecentRevenue, err = s.bookings.SumAmount(ctx, recentRevenueFilter); err != nil {
		return nil, NewInfrastructureError("Server error fetching booking statistics", err)
	}
	if earning := stats.Confirmed + stats.Completed; earning > 0 {
		stats.AverageBookingValue = stats.TotalRevenue / float64(earning)
	}
	if stats.DailyTrends, err = s.bookings.DailyTrends(ctx, bson.M{"createdAt": bson.M{"$gte": since}}); err != nil {
		return nil, NewInfrastructureError("Server error fetching booking statistics", err)
	}
	if stats.DailyTrends == nil {
		stats.DailyTrends = []models.DailyBookingTrend{}
	}
	return stats, nil
}

func normalizedPeriod(period string) string {
	switch period {
	case "7d", "90d":
		return period
	default:
		return "30d"
	}
}

func (s *bookingService) GetConflicts(ctx context.Context, guideID, date string) ([]models.BookingConflict, error) {
	guideID, date = strings.TrimSpace(guideID), strings.TrimSpace(date)
	if guideID == "" || date == "" {
		return nil, NewValidationError("Guide ID and date are required")
	}
	gid, err := parseObjectID(guideID, "guide")
	if err != nil {
		return nil, err
	}
	day, _, err := utils.ParseDate(date)
	if err != nil {
		return nil, NewValidationError("Invalid date")
	}
	dayStart, dayEnd := utils.StartOfDay(day), utils.EndOfDay(day)

	rows, err := s.bookings.Find(ctx, bson.M{
		"guide":     gid,
		"status":    bson.M{"$in": []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}},
		"startDate": bson.M{"$lte": dayEnd},
		"endDate":   bson.M{"$gte": dayStart},
	}, &utils.QueryOptions{SortField: "startDate", SortOrder: 1})
	if err != nil {
		return nil, NewInfrastructureError("Server error checking conflicts", err)
	}

	conflicts := make([]models.BookingConflict, 0, len(rows))
	for _, b := range rows {
		conflicts = append(conflicts, models.BookingConflict{
			ID:        b.ID,
			User:      b.User,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Status:    b.Status,
			GroupSize: b.GroupSize,
		})
	}
	return conflicts, nil
}
