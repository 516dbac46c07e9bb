package services

import (
	"context"
	"strings"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"
	"serendibgo/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HotelService interface {
	ListHotels(ctx context.Context, filters *CatalogFilters) (*HotelListResult, error)
	GetStatistics(ctx context.Context) (*HotelStats, error)
	CreateHotel(ctx context.Context, req *validators.CreateHotelRequest, staffID primitive.ObjectID) (*models.Hotel, error)
	UpdateHotel(ctx context.Context, id string, req *validators.UpdateHotelRequest, staffID primitive.ObjectID) (*models.Hotel, error)
	DeleteHotel(ctx context.Context, id string, staffID primitive.ObjectID) error
	BulkAction(ctx context.Context, req *validators.BulkActionRequest, staffID primitive.ObjectID) (*BulkResult, error)
}

type HotelListResult struct {
	Hotels     []*models.Hotel  `json:"hotels"`
	Pagination utils.Pagination `json:"pagination"`
}

type HotelStats struct {
	Total         int64 `json:"total"`
	Draft         int64 `json:"draft"`
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	Suspended     int64 `json:"suspended"`
	TotalBookings int64 `json:"totalBookings"`
}

var hotelSortFields = map[string]string{
	"createdAt":  "createdAt",
	"name":       "name",
	"rating":     "ratings.overall",
	"starRating": "starRating",
	"status":     "status",
}

type hotelService struct {
	hotels        interfaces.HotelRepository
	hotelBookings interfaces.HotelBookingRepository
	logger        *logger.Logger
	now           func() time.Time
}

func NewHotelService(hotels interfaces.HotelRepository, hotelBookings interfaces.HotelBookingRepository, logger *logger.Logger) HotelService {
	return &hotelService{hotels: hotels, hotelBookings: hotelBookings, logger: logger, now: time.Now}
}

func (s *hotelService) ListHotels(ctx context.Context, f *CatalogFilters) (*HotelListResult, error) {
	p, opts, err := catalogPaging(f, hotelSortFields)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if status := statusFilterValue(f.Status); status != "" {
		filter["status"] = status
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		filter["location.city"] = containsPattern(loc)
	}
	if r := ratingFilter(f.Rating); r != nil {
		filter["ratings.overall"] = r
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := containsPattern(search)
		filter["$or"] = []bson.M{
			{"name": pattern}, {"description": pattern},
			{"location.city": pattern}, {"location.address": pattern},
		}
	}

	hotels, err := s.hotels.Find(ctx, filter, opts)
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching hotels", err)
	}
	total, err := s.hotels.Count(ctx, filter)
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching hotels", err)
	}
	return &HotelListResult{Hotels: hotels, Pagination: utils.NewPagination(p.Page, p.Limit, total)}, nil
}

func (s *hotelService) GetStatistics(ctx context.Context) (*HotelStats, error) {
	stats := &HotelStats{}
	for _, c := range []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, bson.M{}},
		{&stats.Draft, bson.M{"status": models.HotelStatusDraft}},
		{&stats.Pending, bson.M{"status": models.HotelStatusPending}},
		{&stats.Approved, bson.M{"status": models.HotelStatusApproved}},
		{&stats.Rejected, bson.M{"status": models.HotelStatusRejected}},
		{&stats.Suspended, bson.M{"status": models.HotelStatusSuspended}},
	} {
		n, err := s.hotels.Count(ctx, c.filter)
		if err != nil {
			return nil, NewInfrastructureError("Server error fetching hotel statistics", err)
		}
		*c.dst = n
	}

	n, err := s.hotelBookings.Count(ctx, bson.M{})
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching hotel statistics", err)
	}
	stats.TotalBookings = n
	return stats, nil
}

func (s *hotelService) CreateHotel(ctx context.Context, req *validators.CreateHotelRequest, staffID primitive.ObjectID) (*models.Hotel, error) {
	owner, err := parseObjectID(req.Owner, "owner")
	if err != nil {
		return nil, err
	}
	hotel := &models.Hotel{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Location: models.HotelLocation{
			Address:  req.Location.Address,
			City:     req.Location.City,
			District: req.Location.District,
			Province: req.Location.Province,
		},
		Owner:      owner,
		StarRating: req.StarRating,
		Amenities:  req.Amenities,
		Status:     models.HotelStatusPending,
		CreatedBy:  &staffID,
	}
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, NewInfrastructureError("Server error creating hotel", err)
	}
	s.logger.LogStaffActivity(staffID, "", "hotel_created", map[string]interface{}{"hotel_id": hotel.ID.Hex()})
	return hotel, nil
}

func (s *hotelService) loadHotel(ctx context.Context, id string) (*models.Hotel, error) {
	oid, err := parseObjectID(id, "hotel")
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.GetByID(ctx, oid)
	if err != nil {
		return nil, lookupError(err, "Hotel not found")
	}
	return hotel, nil
}

func (s *hotelService) UpdateHotel(ctx context.Context, id string, req *validators.UpdateHotelRequest, staffID primitive.ObjectID) (*models.Hotel, error) {
	hotel, err := s.loadHotel(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = models.HotelLocation{
			Address:  req.Location.Address,
			City:     req.Location.City,
			District: req.Location.District,
			Province: req.Location.Province,
		}
	}
	if req.StarRating != nil {
		updates["starRating"] = *req.StarRating
	}
	if req.Amenities != nil {
		updates["amenities"] = req.Amenities
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if models.HotelStatus(*req.Status) == models.HotelStatusApproved {
			updates["approvalDate"] = s.now()
		}
	}
	if len(updates) == 0 {
		return hotel, nil
	}

	if err := s.hotels.Update(ctx, hotel.ID, updates); err != nil {
		return nil, lookupError(err, "Hotel not found")
	}
	s.logger.LogStaffActivity(staffID, "", "hotel_updated", map[string]interface{}{"hotel_id": hotel.ID.Hex()})
	return s.loadHotel(ctx, id)
}

func (s *hotelService) DeleteHotel(ctx context.Context, id string, staffID primitive.ObjectID) error {
	hotel, err := s.loadHotel(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.hotelBookings.Count(ctx, bson.M{"hotel": hotel.ID, "bookingStatus": bson.M{"$in": activeBookingStatuses}})
	if err != nil {
		return NewInfrastructureError("Server error deleting hotel", err)
	}
	if active > 0 {
		return NewValidationError("Cannot delete hotel with active bookings")
	}
	if err := s.hotels.Delete(ctx, hotel.ID); err != nil {
		return lookupError(err, "Hotel not found")
	}
	s.logger.LogStaffActivity(staffID, "", "hotel_deleted", map[string]interface{}{"hotel_id": hotel.ID.Hex()})
	return nil
}

var hotelBulkStatus = map[string]models.HotelStatus{
	"activate":   models.HotelStatusApproved,
	"approve":    models.HotelStatusApproved,
	"deactivate": models.HotelStatusSuspended,
	"reject":     models.HotelStatusRejected,
}

func (s *hotelService) BulkAction(ctx context.Context, req *validators.BulkActionRequest, staffID primitive.ObjectID) (*BulkResult, error) {
	if len(req.IDs) == 0 {
		return nil, NewValidationError("Hotel IDs are required")
	}
	status, isStatus := hotelBulkStatus[req.Action]
	if !isStatus && req.Action != "delete" {
		return nil, NewValidationError("Invalid action: " + req.Action)
	}

	result := runBulk(ctx, req.IDs, func(ctx context.Context, id string) (string, error) {
		if !isStatus {
			if err := s.DeleteHotel(ctx, id, staffID); err != nil {
				return "", err
			}
			return "Hotel deleted", nil
		}
		oid, err := parseObjectID(id, "hotel")
		if err != nil {
			return "", err
		}
		updates := bson.M{"status": status}
		switch status {
		case models.HotelStatusApproved:
			updates["approvalDate"] = s.now()
		case models.HotelStatusRejected:
			updates["rejectionReason"] = req.Reason
		}
		if err := s.hotels.Update(ctx, oid, updates); err != nil {
			return "", lookupError(err, "Hotel not found")
		}
		return "Hotel status set to " + string(status), nil
	})

	s.logger.LogStaffActivity(staffID, "", "hotel_bulk_action", map[string]interface{}{
		"action":     req.Action,
		"successful": result.Summary.Successful,
		"failed":     result.Summary.Failed,
	})
	return result, nil
}
