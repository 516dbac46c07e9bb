package services

import (
	"strings"

	"serendibgo/internal/models"
	"serendibgo/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// CatalogFilters are the list parameters shared by the guide, vehicle and
// hotel lists. Each list reads the fields it supports.
type CatalogFilters struct {
	Page        int
	Limit       int
	Search      string
	Status      string
	Location    string
	Rating      string
	Experience  string
	VehicleType string
	FuelType    string
	SortBy      string
	SortOrder   string
}

// activeBookingStatuses block deletion of the resource a booking references.
var activeBookingStatuses = []string{string(models.BookingStatusPending), string(models.BookingStatusConfirmed)}

var ratingBuckets = map[string]float64{
	"4.5+": 4.5,
	"4.0+": 4.0,
	"3.5+": 3.5,
	"3.0+": 3.0,
}

// ratingFilter returns the lower bound for a rating bucket, or nil when the
// bucket is empty or unknown.
func ratingFilter(bucket string) bson.M {
	min, ok := ratingBuckets[bucket]
	if !ok {
		return nil
	}
	return bson.M{"$gte": min}
}

func experienceFilter(bucket string) bson.M {
	switch bucket {
	case "0-2":
		return bson.M{"$gte": 0, "$lte": 2}
	case "3-5":
		return bson.M{"$gte": 3, "$lte": 5}
	case "6-10":
		return bson.M{"$gte": 6, "$lte": 10}
	case "10+":
		return bson.M{"$gte": 10}
	default:
		return nil
	}
}

// catalogPaging normalizes paging and maps the public sort key through
// sortable. An unknown key is a validation error.
func catalogPaging(f *CatalogFilters, sortable map[string]string) (*utils.PaginationParams, *utils.QueryOptions, error) {
	p := utils.NormalizePagination(&utils.PaginationParams{
		Page:      f.Page,
		Limit:     f.Limit,
		SortBy:    strings.TrimSpace(f.SortBy),
		SortOrder: f.SortOrder,
	})
	field, ok := sortable[p.SortBy]
	if !ok {
		return nil, nil, NewValidationError("Invalid sort field: " + p.SortBy)
	}
	return p, p.QueryOptions(field), nil
}

func statusFilterValue(status string) string {
	status = strings.TrimSpace(status)
	if status == "all" {
		return ""
	}
	return status
}
