package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/permissions"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"
	"serendibgo/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, request *validators.LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, principal *models.Principal) error
	Me(ctx context.Context, principal *models.Principal) (*StaffProfile, error)
	UpdateProfile(ctx context.Context, principal *models.Principal, request *validators.UpdateProfileRequest) (*models.User, error)

	// ResolvePrincipal verifies a session token and loads the staff member it
	// belongs to.
	ResolvePrincipal(ctx context.Context, token string) (*models.Principal, error)
}

// TokenRevoker tracks logged-out tokens by jti.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Staff     *StaffProfile `json:"staff"`
}

type ModuleAccess struct {
	Module  permissions.Module   `json:"module"`
	Name    string               `json:"name"`
	Actions []permissions.Action `json:"actions"`
}

type StaffProfile struct {
	User        *models.User   `json:"user"`
	Department  string         `json:"department"`
	Permissions []string       `json:"permissions"`
	Modules     []ModuleAccess `json:"modules"`
}

// Messages returned by ResolvePrincipal, shared with the auth middleware.
const (
	MsgTokenRevoked     = "Token has been revoked."
	MsgUserNotFound     = "Invalid token. User not found."
	MsgUserDeactivated  = "User account is deactivated."
	MsgPasswordChanged  = "User recently changed password. Please log in again."
	msgInvalidCreds     = "Invalid credentials"
	msgMissingCreds     = "Please provide email and password"
	msgAccountInactive  = "Account is deactivated"
	msgAuthServiceError = "Server error during authentication"
)

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type authService struct {
	users    interfaces.UserRepository
	revoker  TokenRevoker
	resolver permissions.Resolver
	cfg      AuthConfig
	logger   *logger.Logger
	now      func() time.Time
}

func NewAuthService(
	users interfaces.UserRepository,
	revoker TokenRevoker,
	resolver permissions.Resolver,
	cfg AuthConfig,
	logger *logger.Logger,
) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = utils.DefaultTokenTTL
	}
	return &authService{
		users:    users,
		revoker:  revoker,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, request *validators.LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(request.Email)
	if email == "" || request.Password == "" {
		return nil, NewValidationError(msgMissingCreds)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.logger.LogSecurityEvent("login_failed", "medium", map[string]interface{}{"email": email, "reason": "unknown_user"})
			return nil, NewAuthenticationError(msgInvalidCreds)
		}
		return nil, NewInfrastructureError(msgAuthServiceError, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		s.logger.LogSecurityEvent("login_failed", "medium", map[string]interface{}{"user_id": user.ID.Hex(), "reason": "bad_password"})
		return nil, NewAuthenticationError(msgInvalidCreds)
	}
	if !permissions.IsStaffRole(string(user.Role)) {
		s.logger.LogSecurityEvent("login_denied", "medium", map[string]interface{}{"user_id": user.ID.Hex(), "role": string(user.Role)})
		return nil, NewAuthorizationError(utils.ErrStaffRequired)
	}
	if !user.IsActive {
		return nil, NewAuthenticationError(msgAccountInactive)
	}

	now := s.now()
	token, claims, err := utils.GenerateStaffToken(user.ID.Hex(), s.cfg.JWTSecret, s.cfg.TokenTTL, now)
	if err != nil {
		return nil, NewInfrastructureError(msgAuthServiceError, err)
	}
	if err := s.users.Update(ctx, user.ID, bson.M{"lastLogin": now}); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to record last login")
	}
	user.LastLogin = &now

	s.logger.LogStaffActivity(user.ID, string(user.Role), "login", nil)
	return &LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Staff:     s.profile(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, principal *models.Principal) error {
	if principal.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, principal.TokenID, principal.ExpiresAt.Sub(s.now())); err != nil {
		return NewInfrastructureError("Server error during logout", err)
	}
	s.logger.LogStaffActivity(principal.ID, principal.Role, "logout", nil)
	return nil
}

func (s *authService) Me(ctx context.Context, principal *models.Principal) (*StaffProfile, error) {
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, lookupError(err, "Staff member not found")
	}
	return s.profile(user), nil
}

func (s *authService) profile(user *models.User) *StaffProfile {
	p := models.NewPrincipal(user)
	modules := s.resolver.UserModules(p.Role)
	access := make([]ModuleAccess, 0, len(modules))
	for _, m := range modules {
		access = append(access, ModuleAccess{
			Module:  m,
			Name:    permissions.Modules[m].Name,
			Actions: s.resolver.UserActions(p.Role, m),
		})
	}
	return &StaffProfile{
		User:        user,
		Department:  p.Department,
		Permissions: p.Permissions,
		Modules:     access,
	}
}

func (s *authService) UpdateProfile(ctx context.Context, principal *models.Principal, request *validators.UpdateProfileRequest) (*models.User, error) {
	updates := bson.M{}
	if request.FirstName != nil {
		updates["firstName"] = strings.TrimSpace(*request.FirstName)
	}
	if request.LastName != nil {
		updates["lastName"] = strings.TrimSpace(*request.LastName)
	}
	if request.Phone != nil {
		updates["phone"] = strings.TrimSpace(*request.Phone)
	}
	if request.Preferences != nil {
		updates["preferences"] = request.Preferences
	}
	if len(updates) > 0 {
		if err := s.users.Update(ctx, principal.ID, updates); err != nil {
			return nil, lookupError(err, "Staff member not found")
		}
	}

	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, lookupError(err, "Staff member not found")
	}
	return user, nil
}

func (s *authService) ResolvePrincipal(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, NewAuthenticationError(utils.ErrNoToken)
	}
	claims, err := utils.ValidateStaffToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, NewAuthenticationError(utils.ErrInvalidToken)
	}

	if claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, NewInfrastructureError(msgAuthServiceError, err)
		}
		if revoked {
			return nil, NewAuthenticationError(MsgTokenRevoked)
		}
	}

	userID, err := parseObjectID(claims.UserID, "user")
	if err != nil {
		return nil, NewAuthenticationError(utils.ErrInvalidToken)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewAuthenticationError(MsgUserNotFound)
		}
		return nil, NewInfrastructureError(msgAuthServiceError, err)
	}
	if !user.IsActive {
		return nil, NewAuthenticationError(MsgUserDeactivated)
	}
	if !permissions.IsStaffRole(string(user.Role)) {
		return nil, NewAuthorizationError(utils.ErrStaffRequired)
	}
	if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return nil, NewAuthenticationError(MsgPasswordChanged)
	}

	principal := models.NewPrincipal(user)
	principal.TokenID = claims.ID
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal, nil
}
