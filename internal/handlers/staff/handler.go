// Package staff holds the HTTP handlers of the staff back-office API.
package staff

import (
	"net/http"
	"strconv"
	"strings"

	"serendibgo/internal/middleware"
	"serendibgo/internal/models"
	"serendibgo/internal/utils"
	"serendibgo/internal/validators"

	"github.com/gin-gonic/gin"
)

// currentStaff returns the authenticated principal, writing a 401 when the
// route was mounted without StaffAuth.
func currentStaff(c *gin.Context) (*models.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, utils.ErrUnauthorized)
		return nil, false
	}
	return principal, true
}

// bindJSON decodes and validates the request body into req. It writes the
// 400 response itself and reports whether the handler may continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return false
	}
	if errs := validators.ValidateStruct(req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, req)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return def
	}
	return v
}
