package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripDetails struct {
	PickupLocation  string    `json:"pickupLocation" bson:"pickupLocation"`
	DropoffLocation string    `json:"dropoffLocation" bson:"dropoffLocation"`
	StartDate       time.Time `json:"startDate" bson:"startDate"`
	EndDate         time.Time `json:"endDate" bson:"endDate"`
	StartTime       string    `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime         string    `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Duration        float64   `json:"duration,omitempty" bson:"duration,omitempty"`
	Distance        float64   `json:"distance,omitempty" bson:"distance,omitempty"`
}

// VehicleBooking is a vehicle hire in the vehiclebookings collection.
type VehicleBooking struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	BookingReference string             `json:"bookingReference" bson:"bookingReference"`
	Vehicle          primitive.ObjectID `json:"vehicle" bson:"vehicle"`
	User             primitive.ObjectID `json:"user" bson:"user"`
	TripDetails      TripDetails        `json:"tripDetails" bson:"tripDetails"`
	Passengers       GuestCount         `json:"passengers" bson:"passengers"`
	GuestDetails     GuestDetails       `json:"guestDetails" bson:"guestDetails"`
	SpecialRequests  string             `json:"specialRequests,omitempty" bson:"specialRequests,omitempty"`
	Pricing          BookingPricing     `json:"pricing" bson:"pricing"`
	BookingStatus    string             `json:"bookingStatus" bson:"bookingStatus"`
	PaymentStatus    string             `json:"paymentStatus" bson:"paymentStatus"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}
