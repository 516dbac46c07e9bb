package utils

import "time"

const (
	AppName    = "SerendibGo Staff"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 10
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	TokenCookieName   = "token"
	DefaultTokenTTL   = 7 * 24 * time.Hour
	PasswordMinLength = 8

	// Bookings
	BookingReferencePrefix = "BK"
	ExportRowLimit         = 1000
	ReportURLExpiry        = 24 * time.Hour

	// Cache key prefixes
	RevokedTokenPrefix = "revoked_token:"

	// Context keys
	ContextPrincipal = "principal"
	ContextUserID    = "user_id"
	ContextRequestID = "request_id"
)

// Error messages
const (
	ErrInternalServer   = "Internal server error"
	ErrValidationFailed = "Validation failed"
	ErrUnauthorized     = "Not authorized"
	ErrForbidden        = "Access forbidden"
	ErrNoToken          = "Access denied. No token provided."
	ErrInvalidToken     = "Invalid token."
	ErrStaffRequired    = "Access denied. Staff access required."
)
