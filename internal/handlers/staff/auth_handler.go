package staff

import (
	"net/http"
	"time"

	"serendibgo/internal/services"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls the session cookie set on login.
type CookieConfig struct {
	Secure bool
	Domain string
}

type AuthHandler struct {
	authService services.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService services.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login verifies credentials and returns the token, also as an httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookieName, result.Token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
	utils.SuccessResponse(c, "Login successful", result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), principal); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookieName, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	utils.SuccessResponse(c, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	profile, err := h.authService.Me(c.Request.Context(), principal)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "", profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	principal, ok := currentStaff(c)
	if !ok {
		return
	}
	var req validators.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), principal, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, "Profile updated successfully", user)
}
