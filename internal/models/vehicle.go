package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleStatus string

const (
	VehicleStatusPending     VehicleStatus = "pending"
	VehicleStatusApproved    VehicleStatus = "approved"
	VehicleStatusRejected    VehicleStatus = "rejected"
	VehicleStatusInactive    VehicleStatus = "inactive"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

var VehicleStatuses = []VehicleStatus{
	VehicleStatusPending, VehicleStatusApproved, VehicleStatusRejected, VehicleStatusInactive, VehicleStatusMaintenance,
}

type VehicleLocation struct {
	City     string `json:"city,omitempty" bson:"city,omitempty"`
	District string `json:"district,omitempty" bson:"district,omitempty"`
}

type VehicleCapacity struct {
	Passengers int `json:"passengers" bson:"passengers"`
	Luggage    int `json:"luggage" bson:"luggage"`
}

type VehiclePricing struct {
	DailyRate  float64 `json:"dailyRate" bson:"dailyRate"`
	HourlyRate float64 `json:"hourlyRate,omitempty" bson:"hourlyRate,omitempty"`
}

type Vehicle struct {
	ID                primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name              string              `json:"name" bson:"name"`
	VehicleType       string              `json:"vehicleType" bson:"vehicleType"`
	Make              string              `json:"make" bson:"make"`
	Model             string              `json:"model" bson:"model"`
	Year              int                 `json:"year" bson:"year"`
	LicensePlate      string              `json:"licensePlate" bson:"licensePlate"`
	FuelType          string              `json:"fuelType,omitempty" bson:"fuelType,omitempty"`
	Capacity          VehicleCapacity     `json:"capacity" bson:"capacity"`
	Pricing           VehiclePricing      `json:"pricing" bson:"pricing"`
	Location          VehicleLocation     `json:"location" bson:"location"`
	Owner             *primitive.ObjectID `json:"owner,omitempty" bson:"owner,omitempty"`
	Driver            *primitive.ObjectID `json:"driver,omitempty" bson:"driver,omitempty"`
	Status            VehicleStatus       `json:"status" bson:"status"`
	ApprovedAt        *time.Time          `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ApprovedBy        *primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	RejectionReason   string              `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	SuspensionReason  string              `json:"suspensionReason,omitempty" bson:"suspensionReason,omitempty"`
	SuspendedAt       *time.Time          `json:"suspendedAt,omitempty" bson:"suspendedAt,omitempty"`
	SuspendedBy       *primitive.ObjectID `json:"suspendedBy,omitempty" bson:"suspendedBy,omitempty"`
	MaintenanceReason string              `json:"maintenanceReason,omitempty" bson:"maintenanceReason,omitempty"`
	CreatedAt         time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt" bson:"updatedAt"`
}
