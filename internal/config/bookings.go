package config

import "time"

const (
	// PaginationPerCategory pages each booking category on its own and
	// concatenates the pages.
	PaginationPerCategory = "per_category"
	// PaginationMerged pages over the merged, sorted union.
	PaginationMerged = "merged"
)

type BookingsConfig struct {
	PaginationMode string
	IncludeLegacy  bool
	ExportLimit    int
	ReportURLTTL   time.Duration
}

func loadBookingsConfig() *BookingsConfig {
	return &BookingsConfig{
		PaginationMode: getEnv("BOOKINGS_PAGINATION_MODE", PaginationPerCategory),
		IncludeLegacy:  getEnvAsBool("BOOKINGS_INCLUDE_LEGACY", true),
		ExportLimit:    getEnvAsInt("BOOKINGS_EXPORT_LIMIT", 1000),
		ReportURLTTL:   getEnvAsDuration("BOOKINGS_REPORT_URL_TTL", 24*time.Hour),
	}
}
