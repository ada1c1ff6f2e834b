package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the YYYY-MM-DD layout used for calendar dates
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Global logger: this may run before the app logger is configured
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatDate renders t as YYYY-MM-DD in t's location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Clock returns the current time; services take one so tests can pin "today"
type Clock func() time.Time

// SystemClock is the wall clock
func SystemClock() time.Time {
	return time.Now()
}
