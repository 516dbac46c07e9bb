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

type VehicleService interface {
	ListVehicles(ctx context.Context, filters *CatalogFilters) (*VehicleListResult, error)
	GetStatistics(ctx context.Context) (*VehicleStats, error)
	UpdateStatus(ctx context.Context, id string, req *validators.VehicleStatusRequest, staffID primitive.ObjectID) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string, staffID primitive.ObjectID) error
	BulkAction(ctx context.Context, req *validators.BulkActionRequest, staffID primitive.ObjectID) (*BulkResult, error)
}

type VehicleListResult struct {
	Vehicles   []*models.Vehicle `json:"vehicles"`
	Pagination utils.Pagination  `json:"pagination"`
}

type VehicleStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
	Inactive    int64 `json:"inactive"`
	Maintenance int64 `json:"maintenance"`
}

var vehicleSortFields = map[string]string{
	"createdAt": "createdAt",
	"name":      "name",
	"year":      "year",
	"dailyRate": "pricing.dailyRate",
	"status":    "status",
}

type vehicleService struct {
	vehicles        interfaces.VehicleRepository
	vehicleBookings interfaces.VehicleBookingRepository
	logger          *logger.Logger
	now             func() time.Time
}

func NewVehicleService(vehicles interfaces.VehicleRepository, vehicleBookings interfaces.VehicleBookingRepository, logger *logger.Logger) VehicleService {
	return &vehicleService{vehicles: vehicles, vehicleBookings: vehicleBookings, logger: logger, now: time.Now}
}

func (s *vehicleService) ListVehicles(ctx context.Context, f *CatalogFilters) (*VehicleListResult, error) {
	p, opts, err := catalogPaging(f, vehicleSortFields)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if status := statusFilterValue(f.Status); status != "" {
		filter["status"] = status
	}
	if t := strings.TrimSpace(f.VehicleType); t != "" && t != "all" {
		filter["vehicleType"] = t
	}
	if fuel := strings.TrimSpace(f.FuelType); fuel != "" && fuel != "all" {
		filter["fuelType"] = fuel
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		filter["location.city"] = containsPattern(loc)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := containsPattern(search)
		filter["$or"] = []bson.M{{"make": pattern}, {"model": pattern}, {"licensePlate": pattern}}
	}

	vehicles, err := s.vehicles.Find(ctx, filter, opts)
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching vehicles", err)
	}
	total, err := s.vehicles.Count(ctx, filter)
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching vehicles", err)
	}
	return &VehicleListResult{Vehicles: vehicles, Pagination: utils.NewPagination(p.Page, p.Limit, total)}, nil
}

func (s *vehicleService) GetStatistics(ctx context.Context) (*VehicleStats, error) {
	stats := &VehicleStats{}
	for _, c := range []struct {
		dst    *int64
		filter bson.M
	}{
		{&stats.Total, bson.M{}},
		{&stats.Pending, bson.M{"status": models.VehicleStatusPending}},
		{&stats.Approved, bson.M{"status": models.VehicleStatusApproved}},
		{&stats.Rejected, bson.M{"status": models.VehicleStatusRejected}},
		{&stats.Inactive, bson.M{"status": models.VehicleStatusInactive}},
		{&stats.Maintenance, bson.M{"status": models.VehicleStatusMaintenance}},
	} {
		n, err := s.vehicles.Count(ctx, c.filter)
		if err != nil {
			return nil, NewInfrastructureError("Server error fetching vehicle statistics", err)
		}
		*c.dst = n
	}
	return stats, nil
}

func (s *vehicleService) loadVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	oid, err := parseObjectID(id, "vehicle")
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicles.GetByID(ctx, oid)
	if err != nil {
		return nil, lookupError(err, "Vehicle not found")
	}
	return vehicle, nil
}

// statusChange returns the $set and $unset documents for a status action.
func (s *vehicleService) statusChange(action, reason string, staffID primitive.ObjectID) (set, unset bson.M, err error) {
	now := s.now()
	switch action {
	case "approve":
		return bson.M{"status": models.VehicleStatusApproved, "approvedBy": staffID, "approvedAt": now}, nil, nil
	case "reject":
		return bson.M{"status": models.VehicleStatusRejected, "rejectionReason": reason}, nil, nil
	case "suspend":
		return bson.M{
			"status":           models.VehicleStatusInactive,
			"suspensionReason": reason,
			"suspendedAt":      now,
			"suspendedBy":      staffID,
		}, nil, nil
	case "activate":
		return bson.M{"status": models.VehicleStatusApproved},
			bson.M{"suspensionReason": "", "suspendedAt": "", "suspendedBy": ""}, nil
	case "maintenance":
		return bson.M{"status": models.VehicleStatusMaintenance, "maintenanceReason": reason}, nil, nil
	default:
		return nil, nil, NewValidationError("Invalid action: " + action)
	}
}

func (s *vehicleService) UpdateStatus(ctx context.Context, id string, req *validators.VehicleStatusRequest, staffID primitive.ObjectID) (*models.Vehicle, error) {
	set, unset, err := s.statusChange(req.Action, req.Reason, staffID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.loadVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.vehicles.Update(ctx, vehicle.ID, set, unset); err != nil {
		return nil, lookupError(err, "Vehicle not found")
	}

	s.logger.LogStaffActivity(staffID, "", "vehicle_status_updated", map[string]interface{}{
		"vehicle_id": vehicle.ID.Hex(),
		"action":     req.Action,
	})
	return s.loadVehicle(ctx, id)
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id string, staffID primitive.ObjectID) error {
	vehicle, err := s.loadVehicle(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.vehicleBookings.Count(ctx, bson.M{"vehicle": vehicle.ID, "bookingStatus": bson.M{"$in": activeBookingStatuses}})
	if err != nil {
		return NewInfrastructureError("Server error deleting vehicle", err)
	}
	if active > 0 {
		return NewValidationError("Cannot delete vehicle with active bookings")
	}
	if err := s.vehicles.Delete(ctx, vehicle.ID); err != nil {
		return lookupError(err, "Vehicle not found")
	}
	s.logger.LogStaffActivity(staffID, "", "vehicle_deleted", map[string]interface{}{"vehicle_id": vehicle.ID.Hex()})
	return nil
}

var vehicleBulkStatus = map[string]models.VehicleStatus{
	"activate":    models.VehicleStatusApproved,
	"approve":     models.VehicleStatusApproved,
	"deactivate":  models.VehicleStatusInactive,
	"maintenance": models.VehicleStatusMaintenance,
	"reject":      models.VehicleStatusRejected,
}

func (s *vehicleService) BulkAction(ctx context.Context, req *validators.BulkActionRequest, staffID primitive.ObjectID) (*BulkResult, error) {
	if len(req.IDs) == 0 {
		return nil, NewValidationError("Vehicle IDs are required")
	}
	status, isStatus := vehicleBulkStatus[req.Action]
	if !isStatus && req.Action != "delete" {
		return nil, NewValidationError("Invalid action: " + req.Action)
	}

	result := runBulk(ctx, req.IDs, func(ctx context.Context, id string) (string, error) {
		if !isStatus {
			if err := s.DeleteVehicle(ctx, id, staffID); err != nil {
				return "", err
			}
			return "Vehicle deleted", nil
		}
		oid, err := parseObjectID(id, "vehicle")
		if err != nil {
			return "", err
		}
		set := bson.M{"status": status}
		switch status {
		case models.VehicleStatusApproved:
			set["approvedBy"] = staffID
			set["approvedAt"] = s.now()
		case models.VehicleStatusRejected:
			set["rejectionReason"] = req.Reason
		}
		if err := s.vehicles.Update(ctx, oid, set, nil); err != nil {
			return "", lookupError(err, "Vehicle not found")
		}
		return "Vehicle status set to " + string(status), nil
	})

	s.logger.LogStaffActivity(staffID, "", "vehicle_bulk_action", map[string]interface{}{
		"action":     req.Action,
		"successful": result.Summary.Successful,
		"failed":     result.Summary.Failed,
	})
	return result, nil
}
