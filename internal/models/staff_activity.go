package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffActivity is one audited staff request.
type StaffActivity struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	StaffID    primitive.ObjectID `json:"staffId" bson:"staffId"`
	Role       string             `json:"role" bson:"role"`
	Action     string             `json:"action" bson:"action"`
	Method     string             `json:"method" bson:"method"`
	Path       string             `json:"path" bson:"path"`
	ResourceID string             `json:"resourceId,omitempty" bson:"resourceId,omitempty"`
	StatusCode int                `json:"statusCode" bson:"statusCode"`
	IPAddress  string             `json:"ipAddress" bson:"ipAddress"`
	UserAgent  string             `json:"userAgent" bson:"userAgent"`
	RequestID  string             `json:"requestId,omitempty" bson:"requestId,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
