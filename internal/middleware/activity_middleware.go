package middleware

import (
	"net/http"
	"time"

	"serendibgo/internal/models"
	"serendibgo/internal/repositories/interfaces"
	"serendibgo/internal/utils"
	"serendibgo/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ActivityLogger audits state-changing staff requests. Reads are not recorded
// and a failed audit write never changes the response.
func ActivityLogger(activities interfaces.StaffActivityRepository, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
			return
		}
		principal, ok := GetPrincipal(c)
		if !ok {
			return
		}

		activity := &models.StaffActivity{
			StaffID:    principal.ID,
			Role:       principal.Role,
			Action:     c.Request.Method + " " + c.FullPath(),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			ResourceID: c.Param("id"),
			StatusCode: c.Writer.Status(),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			RequestID:  c.GetString(utils.ContextRequestID),
			CreatedAt:  time.Now(),
		}
		if err := activities.Create(c.Request.Context(), activity); err != nil {
			log.WithContext(c.Request.Context()).WithError(err).Warn("Failed to record staff activity")
		}
	}
}
