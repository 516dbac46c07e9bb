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

type GuideService interface {
	ListGuides(ctx context.Context, filters *CatalogFilters) (*GuideListResult, error)
	GetStatistics(ctx context.Context) (*GuideStats, error)
	DeleteGuide(ctx context.Context, id string, staffID primitive.ObjectID) error
	BulkAction(ctx context.Context, req *validators.BulkActionRequest, staffID primitive.ObjectID) (*BulkResult, error)
}

type GuideListResult struct {
	Guides     []*models.User   `json:"guides"`
	Pagination utils.Pagination `json:"pagination"`
}

type GuideStats struct {
	Total         int64 `json:"total"`
	Active        int64 `json:"active"`
	Pending       int64 `json:"pending"`
	Inactive      int64 `json:"inactive"`
	TotalBookings int64 `json:"totalBookings"`
}

var guideSortFields = map[string]string{
	"createdAt":  "createdAt",
	"firstName":  "firstName",
	"lastName":   "lastName",
	"rating":     "profile.rating",
	"experience": "profile.experience",
	"price":      "profile.pricePerDay",
}

type guideService struct {
	users    interfaces.UserRepository
	bookings interfaces.BookingRepository
	logger   *logger.Logger
	now      func() time.Time
}

func NewGuideService(users interfaces.UserRepository, bookings interfaces.BookingRepository, logger *logger.Logger) GuideService {
	return &guideService{users: users, bookings: bookings, logger: logger, now: time.Now}
}

func (s *guideService) ListGuides(ctx context.Context, f *CatalogFilters) (*GuideListResult, error) {
	p, opts, err := catalogPaging(f, guideSortFields)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"role": models.UserRoleGuide}
	switch statusFilterValue(f.Status) {
	case "":
	case "active":
		filter["isActive"] = true
		filter["isVerified"] = true
	case "pending":
		filter["isVerified"] = false
	case "inactive":
		filter["isActive"] = false
	default:
		return nil, NewValidationError("Invalid status: " + f.Status)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		filter["profile.location"] = containsPattern(loc)
	}
	if r := ratingFilter(f.Rating); r != nil {
		filter["profile.rating"] = r
	}
	if e := experienceFilter(f.Experience); e != nil {
		filter["profile.experience"] = e
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := containsPattern(search)
		filter["$or"] = []bson.M{{"firstName": pattern}, {"lastName": pattern}, {"email": pattern}}
	}

	guides, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching guides", err)
	}
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching guides", err)
	}
	return &GuideListResult{Guides: guides, Pagination: utils.NewPagination(p.Page, p.Limit, total)}, nil
}

func (s *guideService) GetStatistics(ctx context.Context) (*GuideStats, error) {
	stats := &GuideStats{}
	for _, c := range []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, bson.M{"role": models.UserRoleGuide}},
		{&stats.Active, bson.M{"role": models.UserRoleGuide, "isActive": true, "isVerified": true}},
		{&stats.Pending, bson.M{"role": models.UserRoleGuide, "isVerified": false}},
		{&stats.Inactive, bson.M{"role": models.UserRoleGuide, "isActive": false}},
	} {
		n, err := s.users.Count(ctx, c.filter)
		if err != nil {
			return nil, NewInfrastructureError("Server error fetching guide statistics", err)
		}
		*c.dst = n
	}

	n, err := s.bookings.Count(ctx, bson.M{"guide": bson.M{"$ne": nil}, "tour": nil})
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching guide statistics", err)
	}
	stats.TotalBookings = n
	return stats, nil
}

func (s *guideService) loadGuide(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseObjectID(id, "guide")
	if err != nil {
		return nil, err
	}
	guide, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return nil, lookupError(err, "Guide not found")
	}
	if guide.Role != models.UserRoleGuide {
		return nil, NewNotFoundError("Guide not found")
	}
	return guide, nil
}

func (s *guideService) DeleteGuide(ctx context.Context, id string, staffID primitive.ObjectID) error {
	guide, err := s.loadGuide(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.bookings.Count(ctx, bson.M{"guide": guide.ID, "status": bson.M{"$in": activeBookingStatuses}})
	if err != nil {
		return NewInfrastructureError("Server error deleting guide", err)
	}
	if active > 0 {
		return NewValidationError("Cannot delete guide with active bookings")
	}

	if err := s.users.Delete(ctx, guide.ID); err != nil {
		return lookupError(err, "Guide not found")
	}
	s.logger.LogStaffActivity(staffID, "", "guide_deleted", map[string]interface{}{"guide_id": guide.ID.Hex()})
	return nil
}

func (s *guideService) BulkAction(ctx context.Context, req *validators.BulkActionRequest, staffID primitive.ObjectID) (*BulkResult, error) {
	if len(req.IDs) == 0 {
		return nil, NewValidationError("Guide IDs are required")
	}

	var apply func(ctx context.Context, guide *models.User) (string, error)
	update := func(updates bson.M, msg string) func(context.Context, *models.User) (string, error) {
		return func(ctx context.Context, guide *models.User) (string, error) {
			if err := s.users.Update(ctx, guide.ID, updates); err != nil {
				return "", lookupError(err, "Guide not found")
			}
			return msg, nil
		}
	}

	switch req.Action {
	case "activate":
		apply = update(bson.M{"isActive": true, "isVerified": true}, "Guide activated")
	case "deactivate":
		apply = update(bson.M{"isActive": false}, "Guide deactivated")
	case "approve":
		apply = update(bson.M{"isVerified": true, "isActive": true, "verifiedAt": s.now(), "verifiedBy": staffID}, "Guide approved")
	case "reject":
		apply = update(bson.M{"isVerified": false, "isActive": false, "rejectedAt": s.now(), "rejectedBy": staffID, "rejectionReason": req.Reason}, "Guide rejected")
	case "delete":
		apply = func(ctx context.Context, guide *models.User) (string, error) {
			if err := s.DeleteGuide(ctx, guide.ID.Hex(), staffID); err != nil {
				return "", err
			}
			return "Guide deleted", nil
		}
	default:
		return nil, NewValidationError("Invalid action: " + req.Action)
	}

	result := runBulk(ctx, req.IDs, func(ctx context.Context, id string) (string, error) {
		guide, err := s.loadGuide(ctx, id)
		if err != nil {
			return "", err
		}
		return apply(ctx, guide)
	})

	s.logger.LogStaffActivity(staffID, "", "guide_bulk_action", map[string]interface{}{
		"action":     req.Action,
		"successful": result.Summary.Successful,
		"failed":     result.Summary.Failed,
	})
	return result, nil
}
