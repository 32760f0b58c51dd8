package schema

import (
	"math"
	"strings"
	"time"
)

// DateKeyFormat is the calendar-date key used to group observations into
// site-days.
const DateKeyFormat = "2006-01-02"

// DayTypeFor buckets a timestamp into the hourly-factor day type.
func DayTypeFor(t time.Time) DayType {
	switch t.Weekday() {
	case time.Saturday:
		return SaturdayType
	case time.Sunday:
		return SundayType
	default:
		return WeekdayType
	}
}

// DayNameFor returns the lowercase day-of-week name used in the
// normalization profile ("monday" .. "sunday").
func DayNameFor(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// DateKey returns the calendar-date grouping key for a timestamp.
func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// Round2 rounds to two decimal places. Applied exactly once, when the
// site-year aggregate is assembled; intermediate factor math stays exact.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
