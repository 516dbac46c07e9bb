package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"serendibgo/internal/models"
	"serendibgo/internal/permissions"
	"serendibgo/internal/utils"
	"serendibgo/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PrincipalResolver turns a session token into the staff member it belongs to.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*models.Principal, error)
}

type AuthMiddleware struct {
	resolver    PrincipalResolver
	permissions permissions.Resolver
	logger      *logger.Logger
}

func NewAuthMiddleware(resolver PrincipalResolver, perms permissions.Resolver, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, permissions: perms, logger: logger}
}

// StaffAuth authenticates the request and stores the principal on the context.
func (m *AuthMiddleware) StaffAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.resolver.ResolvePrincipal(c.Request.Context(), extractToken(c))
		if err != nil {
			m.deny(c, err)
			return
		}

		c.Set(utils.ContextPrincipal, principal)
		c.Set(utils.ContextUserID, principal.ID)
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, principal.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequirePermission allows the request when the principal's role or explicit
// grants cover module:action.
func (m *AuthMiddleware) RequirePermission(module permissions.Module, action permissions.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			m.reject(c, http.StatusUnauthorized, utils.ErrUnauthorized)
			return
		}
		if !m.permissions.HasPermission(principal.Role, module, action, principal.Permissions) {
			m.reject(c, http.StatusForbidden, "Insufficient permissions. Required: "+permissions.Grant(module, action))
			return
		}
		c.Next()
	}
}

// RequireRole allows the request only for the listed roles.
func (m *AuthMiddleware) RequireRole(roles ...permissions.Role) gin.HandlerFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			m.reject(c, http.StatusUnauthorized, utils.ErrUnauthorized)
			return
		}
		for _, r := range names {
			if principal.Role == r {
				c.Next()
				return
			}
		}
		m.reject(c, http.StatusForbidden, "Access denied. Required role: "+strings.Join(names, " or "))
	}
}

// GetPrincipal returns the authenticated staff member, if any.
func GetPrincipal(c *gin.Context) (*models.Principal, bool) {
	v, exists := c.Get(utils.ContextPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := v.(*models.Principal)
	return p, ok && p != nil
}

// extractToken prefers the Authorization header and falls back to the cookie.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(utils.TokenCookieName); err == nil {
		return cookie
	}
	return ""
}

func (m *AuthMiddleware) deny(c *gin.Context, err error) {
	var se utils.StatusError
	if !errors.As(err, &se) {
		m.logger.WithContext(c.Request.Context()).WithError(err).Error("Staff authentication failed")
		utils.AbortWithError(c, http.StatusInternalServerError, utils.ErrInternalServer)
		return
	}
	if se.StatusCode() >= http.StatusInternalServerError {
		m.logger.WithContext(c.Request.Context()).WithError(err).Error("Staff authentication failed")
		utils.AbortWithError(c, se.StatusCode(), se.PublicMessage())
		return
	}
	m.reject(c, se.StatusCode(), se.PublicMessage())
}

func (m *AuthMiddleware) reject(c *gin.Context, status int, message string) {
	severity := "medium"
	if status == http.StatusForbidden {
		severity = "high"
	}
	details := map[string]interface{}{
		"status":     status,
		"reason":     message,
		"method":     c.Request.Method,
		"path":       c.FullPath(),
		"ip_address": c.ClientIP(),
	}
	if p, ok := GetPrincipal(c); ok {
		details["staff_id"] = p.ID.Hex()
		details["role"] = p.Role
	}
	m.logger.LogSecurityEvent("access_denied", severity, details)
	utils.AbortWithError(c, status, message)
}
