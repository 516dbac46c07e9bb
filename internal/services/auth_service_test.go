package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/permissions"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type authFixture struct {
	users   *mockUserRepo
	revoker *mockRevoker
	svc     *authService
}

func newAuthFixture() *authFixture {
	f := &authFixture{users: &mockUserRepo{}, revoker: &mockRevoker{}}
	f.svc = NewAuthService(f.users, f.revoker, permissions.NewTableResolver(nil),
		AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour}, testLogger).(*authService)
	return f
}

func staffUser(t *testing.T, role models.UserRole, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:        primitive.NewObjectID(),
		Email:     "ops@serendibgo.lk",
		FirstName: "Kumari",
		Role:      role,
		Password:  string(hash),
		IsActive:  true,
	}
}

func TestLogin(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.Login(context.Background(), &validators.LoginRequest{Email: " "})
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("GetByEmail", mock.Anything, "ghost@x.lk").Return(nil, interfaces.ErrNotFound)
		_, err := f.svc.Login(context.Background(), &validators.LoginRequest{Email: "ghost@x.lk", Password: "pw"})
		assert.Equal(t, KindAuthentication, KindOf(err))
		assert.Equal(t, "Invalid credentials", err.Error())
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		user := staffUser(t, models.UserRoleStaff, "right")
		f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		_, err := f.svc.Login(context.Background(), &validators.LoginRequest{Email: user.Email, Password: "wrong"})
		assert.Equal(t, "Invalid credentials", err.Error())
	})

	t.Run("non staff role is forbidden", func(t *testing.T) {
		f := newAuthFixture()
		user := staffUser(t, models.UserRoleGuide, "pw")
		f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		_, err := f.svc.Login(context.Background(), &validators.LoginRequest{Email: user.Email, Password: "pw"})
		assert.Equal(t, KindAuthorization, KindOf(err))
		assert.Equal(t, utils.ErrStaffRequired, err.Error())
	})

	t.Run("issues token and profile", func(t *testing.T) {
		f := newAuthFixture()
		user := staffUser(t, models.UserRoleManager, "pw")
		f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		f.users.On("Update", mock.Anything, user.ID, mock.Anything).Return(errors.New("ignored"))

		result, err := f.svc.Login(context.Background(), &validators.LoginRequest{Email: user.Email, Password: "pw"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, models.DefaultDepartment, result.Staff.Department)
		require.NotEmpty(t, result.Staff.Modules)
		assert.Equal(t, permissions.ModuleUsers, result.Staff.Modules[0].Module)
		assert.Equal(t, "User Management", result.Staff.Modules[0].Name)

		claims, err := utils.ValidateStaffToken(result.Token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), claims.UserID)
		assert.NotEmpty(t, claims.ID)
	})
}

func TestResolvePrincipal(t *testing.T) {
	now := time.Now()
	user := staffUser(t, models.UserRoleStaff, "pw")
	token, claims, err := utils.GenerateStaffToken(user.ID.Hex(), testSecret, time.Hour, now)
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.ResolvePrincipal(context.Background(), "")
		assert.Equal(t, utils.ErrNoToken, err.Error())
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newAuthFixture()
		forged, _, err := utils.GenerateStaffToken(user.ID.Hex(), "other-secret", time.Hour, now)
		require.NoError(t, err)
		_, err = f.svc.ResolvePrincipal(context.Background(), forged)
		assert.Equal(t, utils.ErrInvalidToken, err.Error())
	})

	t.Run("revoked", func(t *testing.T) {
		f := newAuthFixture()
		f.revoker.On("IsRevoked", mock.Anything, claims.ID).Return(true, nil)
		_, err := f.svc.ResolvePrincipal(context.Background(), token)
		assert.Equal(t, MsgTokenRevoked, err.Error())
	})

	cases := []struct {
		name    string
		mutate  func(u *models.User)
		lookup  error
		wantMsg string
		kind    ErrorKind
	}{
		{"user gone", nil, interfaces.ErrNotFound, MsgUserNotFound, KindAuthentication},
		{"deactivated", func(u *models.User) { u.IsActive = false }, nil, MsgUserDeactivated, KindAuthentication},
		{"not staff", func(u *models.User) { u.Role = models.UserRoleTourist }, nil, utils.ErrStaffRequired, KindAuthorization},
		{"password changed", func(u *models.User) {
			changed := now.Add(time.Minute)
			u.PasswordChangedAt = &changed
		}, nil, MsgPasswordChanged, KindAuthentication},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			f.revoker.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil)
			u := *user
			if tc.mutate != nil {
				tc.mutate(&u)
			}
			if tc.lookup != nil {
				f.users.On("GetByID", mock.Anything, user.ID).Return(nil, tc.lookup)
			} else {
				f.users.On("GetByID", mock.Anything, user.ID).Return(&u, nil)
			}

			_, err := f.svc.ResolvePrincipal(context.Background(), token)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}

	t.Run("valid", func(t *testing.T) {
		f := newAuthFixture()
		f.revoker.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil)
		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		principal, err := f.svc.ResolvePrincipal(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.ID)
		assert.Equal(t, "staff", principal.Role)
		assert.Equal(t, claims.ID, principal.TokenID)
		assert.WithinDuration(t, now.Add(time.Hour), principal.ExpiresAt, time.Second)
	})
}

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	f := newAuthFixture()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f.svc.now = fixedClock(now)
	principal := &models.Principal{ID: primitive.NewObjectID(), Role: "staff", TokenID: "jti-1", ExpiresAt: now.Add(90 * time.Minute)}
	f.revoker.On("Revoke", mock.Anything, "jti-1", 90*time.Minute).Return(nil)

	require.NoError(t, f.svc.Logout(context.Background(), principal))
	f.revoker.AssertExpectations(t)

	f.revoker.On("Revoke", mock.Anything, "jti-2", mock.Anything).Return(errors.New("redis down"))
	err := f.svc.Logout(context.Background(), &models.Principal{TokenID: "jti-2", ExpiresAt: now})
	assert.Equal(t, KindInfrastructure, KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture()
	user := staffUser(t, models.UserRoleStaff, "pw")
	principal := models.NewPrincipal(user)
	first := "  Kumari "
	f.users.On("Update", mock.Anything, user.ID, mock.MatchedBy(func(u bson.M) bool {
		return len(u) == 1 && u["firstName"] == "Kumari"
	})).Return(nil)
	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	got, err := f.svc.UpdateProfile(context.Background(), principal, &validators.UpdateProfileRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, user, got)
	f.users.AssertExpectations(t)
}
