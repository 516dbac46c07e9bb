package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"
	"serendibgo/pkg/logger"
	"serendibgo/pkg/sms"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApprovalService interface {
	ListPending(ctx context.Context, filters *PendingFilters) (*PendingApprovalsResult, error)
	GetApprovalDetails(ctx context.Context, id string) (*ApprovalDetails, error)
	Approve(ctx context.Context, id string, req *validators.ApproveRequest, staffID primitive.ObjectID) (*models.User, error)
	Reject(ctx context.Context, id string, req *validators.RejectRequest, staffID primitive.ObjectID) (*models.User, error)
	BulkApprove(ctx context.Context, req *validators.BulkApproveRequest, staffID primitive.ObjectID) (*BulkApprovalResult, error)
	GetStatistics(ctx context.Context, period string) (*ApprovalStats, error)
}

type PendingFilters struct {
	Page   int
	Limit  int
	Role   string
	Search string
}

type PendingCounts struct {
	Guide      int64 `json:"guide"`
	HotelOwner int64 `json:"hotel_owner"`
	Driver     int64 `json:"driver"`
	Total      int64 `json:"total"`
}

type PendingApprovalsResult struct {
	Users      []*models.User   `json:"users"`
	Counts     PendingCounts    `json:"counts"`
	Pagination utils.Pagination `json:"pagination"`
}

type ApprovalDetails struct {
	User   *models.User   `json:"user"`
	Driver *models.Driver `json:"driver,omitempty"`
}

type BulkApprovalItem struct {
	UserID  string `json:"userId"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BulkApprovalResult struct {
	Results []BulkApprovalItem `json:"results"`
	Summary BulkSummary        `json:"summary"`
}

// Message is the summary line reported to the client.
func (r *BulkApprovalResult) Message() string {
	return fmt.Sprintf("Bulk approval completed: %d approved, %d failed", r.Summary.Successful, r.Summary.Failed)
}

type RoleApprovalStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type ApprovalStats struct {
	Period string                       `json:"period"`
	ByRole map[string]RoleApprovalStats `json:"byRole"`
	Totals RoleApprovalStats            `json:"totals"`
}

const (
	msgUserApproved    = "User approved successfully"
	msgUserNotFound    = "User not found"
	msgAlreadyVerified = "User is already verified"
)

type approvalService struct {
	users   interfaces.UserRepository
	drivers interfaces.DriverRepository
	tx      interfaces.TransactionManager
	sms     sms.SMSProvider
	logger  *logger.Logger
	now     func() time.Time
}

// NewApprovalService builds the approval service. notifier may be nil, in
// which case no SMS is sent.
func NewApprovalService(
	users interfaces.UserRepository,
	drivers interfaces.DriverRepository,
	tx interfaces.TransactionManager,
	notifier sms.SMSProvider,
	logger *logger.Logger,
) ApprovalService {
	return &approvalService{
		users:   users,
		drivers: drivers,
		tx:      tx,
		sms:     notifier,
		logger:  logger,
		now:     time.Now,
	}
}

func providerRoleFilter(role string) (interface{}, error) {
	if role == "" || role == "all" {
		return bson.M{"$in": models.ServiceProviderRoles}, nil
	}
	if !models.IsServiceProvider(models.UserRole(role)) {
		return nil, NewValidationError("Invalid role: " + role)
	}
	return role, nil
}

func (s *approvalService) ListPending(ctx context.Context, filters *PendingFilters) (*PendingApprovalsResult, error) {
	p := utils.NormalizePagination(&utils.PaginationParams{Page: filters.Page, Limit: filters.Limit})
	roleFilter, err := providerRoleFilter(strings.TrimSpace(filters.Role))
	if err != nil {
		return nil, err
	}

	filter := bson.M{"isVerified": false, "role": roleFilter}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := containsPattern(search)
		filter["$or"] = []bson.M{{"firstName": pattern}, {"lastName": pattern}, {"email": pattern}}
	}

	users, err := s.users.Find(ctx, filter, p.QueryOptions("createdAt"))
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching pending approvals", err)
	}
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, NewInfrastructureError("Server error fetching pending approvals", err)
	}

	var counts PendingCounts
	for _, c := range []struct {
		dst  *int64
		role models.UserRole
	}{
		{&counts.Guide, models.UserRoleGuide},
		{&counts.HotelOwner, models.UserRoleHotelOwner},
		{&counts.Driver, models.UserRoleDriver},
	} {
		n, err := s.users.Count(ctx, bson.M{"isVerified": false, "role": c.role})
		if err != nil {
			return nil, NewInfrastructureError("Server error fetching pending approvals", err)
		}
		*c.dst = n
		counts.Total += n
	}

	return &PendingApprovalsResult{
		Users:      users,
		Counts:     counts,
		Pagination: utils.NewPagination(p.Page, p.Limit, total),
	}, nil
}

func (s *approvalService) loadUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseObjectID(id, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		return nil, lookupError(err, msgUserNotFound)
	}
	return user, nil
}

func (s *approvalService) GetApprovalDetails(ctx context.Context, id string) (*ApprovalDetails, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.IsServiceProvider(user.Role) {
		return nil, NewValidationError("User is not a service provider")
	}

	details := &ApprovalDetails{User: user}
	if user.Role == models.UserRoleDriver {
		driver, err := s.drivers.GetByUserID(ctx, user.ID)
		switch {
		case err == nil:
			details.Driver = driver
		case !errors.Is(err, interfaces.ErrNotFound):
			return nil, NewInfrastructureError("Server error fetching approval details", err)
		}
	}
	return details, nil
}

func (s *approvalService) Approve(ctx context.Context, id string, req *validators.ApproveRequest, staffID primitive.ObjectID) (*models.User, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, NewConflictError(msgAlreadyVerified)
	}
	if err := s.approveUser(ctx, user, req.Notes, req.Conditions, staffID); err != nil {
		return nil, err
	}
	return s.loadUser(ctx, id)
}

// approveUser verifies user and, for drivers, activates the driver record in
// the same transaction. The SMS goes out only after the commit.
func (s *approvalService) approveUser(ctx context.Context, user *models.User, notes string, conditions []string, staffID primitive.ObjectID) error {
	now := s.now()
	if conditions == nil {
		conditions = []string{}
	}
	updates := bson.M{
		"isVerified":             true,
		"verifiedAt":             now,
		"verifiedBy":             staffID,
		"verificationNotes":      notes,
		"verificationConditions": conditions,
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.users.Update(txCtx, user.ID, updates); err != nil {
			return err
		}
		if user.Role != models.UserRoleDriver {
			return nil
		}
		return s.drivers.Activate(txCtx, user.ID, models.DriverStatusChange{
			Status:    models.DriverStatusActive,
			Timestamp: now,
			UpdatedBy: &staffID,
			Notes:     "Approved by staff",
		})
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return NewNotFoundError(msgUserNotFound)
		}
		s.logger.WithError(err).WithField("user_id", user.ID.Hex()).Error("Failed to approve user")
		return NewInfrastructureError("Server error approving user", err)
	}

	s.logger.LogStaffActivity(staffID, "", "provider_approved", map[string]interface{}{
		"user_id": user.ID.Hex(),
		"role":    string(user.Role),
	})
	s.notify(ctx, user, fmt.Sprintf("Hi %s, your SerendibGo %s account has been approved.", user.FirstName, roleLabel(user.Role)))
	return nil
}

func (s *approvalService) Reject(ctx context.Context, id string, req *validators.RejectRequest, staffID primitive.ObjectID) (*models.User, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, NewValidationError("Rejection reason is required")
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, NewConflictError("Cannot reject a verified user")
	}

	updates := bson.M{
		"rejectedAt":      s.now(),
		"rejectedBy":      staffID,
		"rejectionReason": reason,
		"rejectionNotes":  req.Notes,
		"isActive":        false,
	}
	if err := s.users.Update(ctx, user.ID, updates); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewNotFoundError(msgUserNotFound)
		}
		return nil, NewInfrastructureError("Server error rejecting user", err)
	}

	s.logger.LogStaffActivity(staffID, "", "provider_rejected", map[string]interface{}{
		"user_id": user.ID.Hex(),
		"reason":  reason,
	})
	s.notify(ctx, user, fmt.Sprintf("Hi %s, your SerendibGo %s application was not approved. Reason: %s", user.FirstName, roleLabel(user.Role), reason))
	return s.loadUser(ctx, id)
}

func (s *approvalService) BulkApprove(ctx context.Context, req *validators.BulkApproveRequest, staffID primitive.ObjectID) (*BulkApprovalResult, error) {
	if len(req.UserIDs) == 0 {
		return nil, NewValidationError("User IDs are required")
	}

	bulk := runBulk(ctx, req.UserIDs, func(ctx context.Context, id string) (string, error) {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return "", NewValidationError("Invalid user ID")
		}
		user, err := s.users.GetByID(ctx, oid)
		if err != nil {
			return "", lookupError(err, msgUserNotFound)
		}
		if user.IsVerified {
			return "", NewConflictError("User already verified")
		}
		if err := s.approveUser(ctx, user, req.Notes, req.Conditions, staffID); err != nil {
			return "", err
		}
		return msgUserApproved, nil
	})

	result := &BulkApprovalResult{Results: make([]BulkApprovalItem, 0, len(bulk.Results)), Summary: bulk.Summary}
	for _, r := range bulk.Results {
		result.Results = append(result.Results, BulkApprovalItem{UserID: r.ID, Success: r.Success, Message: r.Message})
	}
	return result, nil
}

func (s *approvalService) GetStatistics(ctx context.Context, period string) (*ApprovalStats, error) {
	since := s.now().AddDate(0, 0, -utils.PeriodDays(period))
	stats := &ApprovalStats{Period: normalizedPeriod(period), ByRole: make(map[string]RoleApprovalStats, len(models.ServiceProviderRoles))}

	for _, role := range models.ServiceProviderRoles {
		var rs RoleApprovalStats
		for _, c := range []struct {
			dst    *int64
			filter bson.M
		}{
			{&rs.Pending, bson.M{"role": role, "isVerified": false, "rejectedAt": bson.M{"$exists": false}}},
			{&rs.Approved, bson.M{"role": role, "isVerified": true, "verifiedAt": bson.M{"$gte": since}}},
			{&rs.Rejected, bson.M{"role": role, "rejectedAt": bson.M{"$gte": since}}},
		} {
			n, err := s.users.Count(ctx, c.filter)
			if err != nil {
				return nil, NewInfrastructureError("Server error fetching approval statistics", err)
			}
			*c.dst = n
		}
		stats.ByRole[string(role)] = rs
		stats.Totals.Pending += rs.Pending
		stats.Totals.Approved += rs.Approved
		stats.Totals.Rejected += rs.Rejected
	}
	return stats, nil
}

// notify sends a best-effort SMS. Failures are logged only.
func (s *approvalService) notify(ctx context.Context, user *models.User, message string) {
	if s.sms == nil || user.Phone == "" {
		return
	}
	if _, err := s.sms.SendSMS(ctx, &sms.SMSRequest{To: user.Phone, Message: message, Type: "transactional"}); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to send approval notification")
	}
}

func roleLabel(role models.UserRole) string {
	switch role {
	case models.UserRoleHotelOwner:
		return "hotel owner"
	default:
		return string(role)
	}
}
