package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverStatus string

const (
	DriverStatusPending     DriverStatus = "pending"
	DriverStatusActive      DriverStatus = "active"
	DriverStatusSuspended   DriverStatus = "suspended"
	DriverStatusInactive    DriverStatus = "inactive"
	DriverStatusBlacklisted DriverStatus = "blacklisted"
)

type DriverStatusChange struct {
	Status    DriverStatus        `json:"status" bson:"status"`
	Timestamp time.Time           `json:"timestamp" bson:"timestamp"`
	UpdatedBy *primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	Notes     string              `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Driver is the driver-specific record linked to a user with role driver.
type Driver struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	DriverID      string               `json:"driverId" bson:"driverId"`
	User          primitive.ObjectID   `json:"user" bson:"user"`
	Status        DriverStatus         `json:"status" bson:"status"`
	StatusHistory []DriverStatusChange `json:"statusHistory,omitempty" bson:"statusHistory,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}
