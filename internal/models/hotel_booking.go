package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GuestCount struct {
	Adults   int `json:"adults" bson:"adults"`
	Children int `json:"children" bson:"children"`
	Infants  int `json:"infants" bson:"infants"`
}

type GuestDetails struct {
	PrimaryGuest struct {
		FirstName string `json:"firstName" bson:"firstName"`
		LastName  string `json:"lastName" bson:"lastName"`
		Email     string `json:"email" bson:"email"`
		Phone     string `json:"phone" bson:"phone"`
	} `json:"primaryGuest" bson:"primaryGuest"`
}

type BookingPricing struct {
	BasePrice     float64 `json:"basePrice" bson:"basePrice"`
	Taxes         float64 `json:"taxes" bson:"taxes"`
	ServiceCharge float64 `json:"serviceCharge" bson:"serviceCharge"`
	TotalPrice    float64 `json:"totalPrice" bson:"totalPrice"`
	Currency      string  `json:"currency" bson:"currency"`
}

// HotelBooking is a room reservation in the hotelbookings collection.
type HotelBooking struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Hotel              primitive.ObjectID `json:"hotel" bson:"hotel"`
	Room               primitive.ObjectID `json:"room" bson:"room"`
	User               primitive.ObjectID `json:"user" bson:"user"`
	BookingReference   string             `json:"bookingReference" bson:"bookingReference"`
	CheckInDate        time.Time          `json:"checkInDate" bson:"checkInDate"`
	CheckOutDate       time.Time          `json:"checkOutDate" bson:"checkOutDate"`
	NumberOfRooms      int                `json:"numberOfRooms" bson:"numberOfRooms"`
	Guests             GuestCount         `json:"guests" bson:"guests"`
	GuestDetails       GuestDetails       `json:"guestDetails" bson:"guestDetails"`
	Pricing            BookingPricing     `json:"pricing" bson:"pricing"`
	BookingStatus      string             `json:"bookingStatus" bson:"bookingStatus"`
	PaymentStatus      string             `json:"paymentStatus" bson:"paymentStatus"`
	SpecialRequests    string             `json:"specialRequests,omitempty" bson:"specialRequests,omitempty"`
	CancellationReason string             `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	BookedAt           *time.Time         `json:"bookedAt,omitempty" bson:"bookedAt,omitempty"`
	ConfirmedAt        *time.Time         `json:"confirmedAt,omitempty" bson:"confirmedAt,omitempty"`
	CancelledAt        *time.Time         `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}
