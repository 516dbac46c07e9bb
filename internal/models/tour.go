package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tour struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Title     string              `json:"title" bson:"title"`
	Location  string              `json:"location,omitempty" bson:"location,omitempty"`
	Price     float64             `json:"price,omitempty" bson:"price,omitempty"`
	Guide     *primitive.ObjectID `json:"guide,omitempty" bson:"guide,omitempty"`
	IsActive  bool                `json:"isActive" bson:"isActive"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

type TourSummary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Title    string             `json:"title" bson:"title"`
	Location string             `json:"location,omitempty" bson:"location,omitempty"`
}

func (t *Tour) Summary() *TourSummary {
	return &TourSummary{ID: t.ID, Title: t.Title, Location: t.Location}
}
