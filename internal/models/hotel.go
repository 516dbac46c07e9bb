package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HotelStatus string

const (
	HotelStatusDraft     HotelStatus = "draft"
	HotelStatusPending   HotelStatus = "pending"
	HotelStatusApproved  HotelStatus = "approved"
	HotelStatusRejected  HotelStatus = "rejected"
	HotelStatusSuspended HotelStatus = "suspended"
)

var HotelStatuses = []HotelStatus{
	HotelStatusDraft, HotelStatusPending, HotelStatusApproved, HotelStatusRejected, HotelStatusSuspended,
}

type HotelLocation struct {
	Address  string `json:"address,omitempty" bson:"address,omitempty"`
	City     string `json:"city,omitempty" bson:"city,omitempty"`
	District string `json:"district,omitempty" bson:"district,omitempty"`
	Province string `json:"province,omitempty" bson:"province,omitempty"`
}

type HotelRatings struct {
	Overall      float64 `json:"overall" bson:"overall"`
	TotalReviews int     `json:"totalReviews" bson:"totalReviews"`
}

type Hotel struct {
	ID              primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name            string              `json:"name" bson:"name"`
	Description     string              `json:"description,omitempty" bson:"description,omitempty"`
	Location        HotelLocation       `json:"location" bson:"location"`
	Owner           primitive.ObjectID  `json:"owner" bson:"owner"`
	StarRating      int                 `json:"starRating,omitempty" bson:"starRating,omitempty"`
	Amenities       map[string]bool     `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Status          HotelStatus         `json:"status" bson:"status"`
	Ratings         HotelRatings        `json:"ratings" bson:"ratings"`
	ApprovalDate    *time.Time          `json:"approvalDate,omitempty" bson:"approvalDate,omitempty"`
	RejectionReason string              `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	CreatedBy       *primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}
