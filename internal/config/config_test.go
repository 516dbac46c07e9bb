package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PaginationPerCategory, cfg.Bookings.PaginationMode)
	assert.True(t, cfg.Bookings.IncludeLegacy)
	assert.Equal(t, 7*24*time.Hour, cfg.Security.JWTAccessTokenTTL)
	assert.Equal(t, "none", cfg.SMS.Provider)
	assert.False(t, cfg.Payment.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOKINGS_PAGINATION_MODE", "merged")
	t.Setenv("BOOKINGS_INCLUDE_LEGACY", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://staff.serendibgo.lk, https://admin.serendibgo.lk")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PaginationMerged, cfg.Bookings.PaginationMode)
	assert.False(t, cfg.Bookings.IncludeLegacy)
	assert.Equal(t, []string{"https://staff.serendibgo.lk", "https://admin.serendibgo.lk"}, cfg.Security.CORSAllowedOrigins)
	assert.True(t, cfg.Payment.Enabled())
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("unknown pagination mode", func(t *testing.T) {
		t.Setenv("BOOKINGS_PAGINATION_MODE", "sideways")
		_, err := Load()
		assert.ErrorContains(t, err, "BOOKINGS_PAGINATION_MODE")
	})
}
