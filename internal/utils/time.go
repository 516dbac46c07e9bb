package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999999999, t.Location())
}

// ParseDate accepts YYYY-MM-DD or RFC3339. dateOnly reports which form matched.
func ParseDate(value string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(DateLayout, value); err == nil {
		return t, true, nil
	}
	if t, err = time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q", value)
}

// PeriodDays maps a 7d/30d/90d period to days. Unknown periods default to 30.
func PeriodDays(period string) int {
	switch period {
	case "7d":
		return 7
	case "90d":
		return 90
	default:
		return 30
	}
}
