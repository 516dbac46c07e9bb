package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingReference returns a reference such as BK250301-1A2B3C4D.
func GenerateBookingReference(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + now.Format("060102") + "-" + suffix
}
