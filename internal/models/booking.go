package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type PaymentStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// BookingStatuses are the statuses a tour or guide booking may hold.
var BookingStatuses = []BookingStatus{
	BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted,
}

func IsValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Booking is a tour or guide booking stored in the bookings collection. The
// legacy tourbookings and guidebookings collections share this shape.
type Booking struct {
	ID                 primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	BookingReference   string              `json:"bookingReference,omitempty" bson:"bookingReference,omitempty"`
	User               primitive.ObjectID  `json:"user" bson:"user"`
	Tour               *primitive.ObjectID `json:"tour,omitempty" bson:"tour,omitempty"`
	CustomTrip         *primitive.ObjectID `json:"customTrip,omitempty" bson:"customTrip,omitempty"`
	Guide              *primitive.ObjectID `json:"guide,omitempty" bson:"guide,omitempty"`
	BookingDate        time.Time           `json:"bookingDate" bson:"bookingDate"`
	StartDate          time.Time           `json:"startDate" bson:"startDate"`
	EndDate            time.Time           `json:"endDate" bson:"endDate"`
	Duration           string              `json:"duration,omitempty" bson:"duration,omitempty"`
	GroupSize          int                 `json:"groupSize" bson:"groupSize"`
	TotalAmount        float64             `json:"totalAmount" bson:"totalAmount"`
	Status             BookingStatus       `json:"status" bson:"status"`
	PaymentStatus      PaymentStatus       `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod      string              `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentIntentID    string              `json:"-" bson:"paymentIntentId,omitempty"`
	SpecialRequests    string              `json:"specialRequests,omitempty" bson:"specialRequests,omitempty"`
	CancellationReason string              `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	RefundAmount       float64             `json:"refundAmount,omitempty" bson:"refundAmount,omitempty"`
	RefundID           string              `json:"refundId,omitempty" bson:"refundId,omitempty"`
	CancelledBy        *primitive.ObjectID `json:"cancelledBy,omitempty" bson:"cancelledBy,omitempty"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	StaffNotes         string              `json:"staffNotes,omitempty" bson:"staffNotes,omitempty"`
	LastModifiedBy     *primitive.ObjectID `json:"lastModifiedBy,omitempty" bson:"lastModifiedBy,omitempty"`
	LastModifiedAt     *time.Time          `json:"lastModifiedAt,omitempty" bson:"lastModifiedAt,omitempty"`
	CreatedBy          *primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	IsManualBooking    bool                `json:"isManualBooking,omitempty" bson:"isManualBooking,omitempty"`
	IsActive           bool                `json:"isActive" bson:"isActive"`
	CreatedAt          time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// BookingHistoryEntry is a synthesized timeline item for the booking detail view.
type BookingHistoryEntry struct {
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Reason      string    `json:"reason,omitempty"`
}

// BookingDetails is a booking with its populated references and history.
type BookingDetails struct {
	Booking *Booking              `json:"booking"`
	User    *UserSummary          `json:"user,omitempty"`
	Guide   *UserSummary          `json:"guide,omitempty"`
	Tour    *TourSummary          `json:"tour,omitempty"`
	History []BookingHistoryEntry `json:"history"`
}

// BookingConflict is an overlapping booking for a guide.
type BookingConflict struct {
	ID        primitive.ObjectID `json:"_id"`
	User      primitive.ObjectID `json:"user"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
	Status    BookingStatus      `json:"status"`
	GroupSize int                `json:"groupSize"`
}

// DailyBookingTrend is one day of booking counts and revenue.
type DailyBookingTrend struct {
	Date    string  `json:"_id" bson:"_id"`
	Count   int64   `json:"count" bson:"count"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}
