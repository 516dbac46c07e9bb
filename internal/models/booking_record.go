package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingKind tags a normalized booking with its source category.
type BookingKind string

const (
	BookingKindTour    BookingKind = "tour"
	BookingKindGuide   BookingKind = "guide"
	BookingKindHotel   BookingKind = "hotel"
	BookingKindVehicle BookingKind = "vehicle"
)

var BookingKinds = []BookingKind{BookingKindTour, BookingKindGuide, BookingKindHotel, BookingKindVehicle}

// BookingRecord is the common shape every booking category is mapped into
// before results are merged.
type BookingRecord struct {
	ID               primitive.ObjectID  `json:"_id"`
	Kind             BookingKind         `json:"type"`
	BookingReference string              `json:"bookingReference,omitempty"`
	User             primitive.ObjectID  `json:"user"`
	Tour             *primitive.ObjectID `json:"tour,omitempty"`
	Guide            *primitive.ObjectID `json:"guide,omitempty"`
	Hotel            *primitive.ObjectID `json:"hotel,omitempty"`
	Room             *primitive.ObjectID `json:"room,omitempty"`
	Vehicle          *primitive.ObjectID `json:"vehicle,omitempty"`
	StartDate        time.Time           `json:"startDate"`
	EndDate          time.Time           `json:"endDate"`
	GroupSize        int                 `json:"groupSize"`
	TotalAmount      float64             `json:"totalAmount"`
	Currency         string              `json:"currency,omitempty"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"paymentStatus"`
	SpecialRequests  string              `json:"specialRequests,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// ClassifyBooking derives the kind of a tour/guide booking from its
// references: a tour reference makes it a tour booking, otherwise it is a
// guide booking.
func ClassifyBooking(b *Booking) BookingKind {
	if b.Tour != nil && !b.Tour.IsZero() {
		return BookingKindTour
	}
	return BookingKindGuide
}

// KindFilter is the bookings-collection predicate for ClassifyBooking: it
// matches exactly the documents classified as kind. Other kinds match nothing
// in that collection.
func KindFilter(kind BookingKind) bson.M {
	noTour := bson.A{nil, primitive.NilObjectID}
	switch kind {
	case BookingKindTour:
		return bson.M{"tour": bson.M{"$nin": noTour}}
	case BookingKindGuide:
		return bson.M{"tour": bson.M{"$in": noTour}}
	}
	return bson.M{"_id": bson.M{"$exists": false}}
}

// RecordFromBooking normalizes a tour or guide booking.
func RecordFromBooking(b *Booking) BookingRecord {
	return BookingRecord{
		ID:               b.ID,
		Kind:             ClassifyBooking(b),
		BookingReference: b.BookingReference,
		User:             b.User,
		Tour:             b.Tour,
		Guide:            b.Guide,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		GroupSize:        b.GroupSize,
		TotalAmount:      b.TotalAmount,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		SpecialRequests:  b.SpecialRequests,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// RecordFromHotelBooking normalizes a hotel booking. Group size counts adults
// and children; infants are not counted.
func RecordFromHotelBooking(h *HotelBooking) BookingRecord {
	hotel, room := h.Hotel, h.Room
	return BookingRecord{
		ID:               h.ID,
		Kind:             BookingKindHotel,
		BookingReference: h.BookingReference,
		User:             h.User,
		Hotel:            &hotel,
		Room:             &room,
		StartDate:        h.CheckInDate,
		EndDate:          h.CheckOutDate,
		GroupSize:        h.Guests.Adults + h.Guests.Children,
		TotalAmount:      h.Pricing.TotalPrice,
		Currency:         h.Pricing.Currency,
		Status:           h.BookingStatus,
		PaymentStatus:    h.PaymentStatus,
		SpecialRequests:  h.SpecialRequests,
		CreatedAt:        h.CreatedAt,
		UpdatedAt:        h.UpdatedAt,
	}
}

// RecordFromVehicleBooking normalizes a vehicle booking.
func RecordFromVehicleBooking(v *VehicleBooking) BookingRecord {
	vehicle := v.Vehicle
	return BookingRecord{
		ID:               v.ID,
		Kind:             BookingKindVehicle,
		BookingReference: v.BookingReference,
		User:             v.User,
		Vehicle:          &vehicle,
		StartDate:        v.TripDetails.StartDate,
		EndDate:          v.TripDetails.EndDate,
		GroupSize:        v.Passengers.Adults + v.Passengers.Children,
		TotalAmount:      v.Pricing.TotalPrice,
		Currency:         v.Pricing.Currency,
		Status:           v.BookingStatus,
		PaymentStatus:    v.PaymentStatus,
		SpecialRequests:  v.SpecialRequests,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
