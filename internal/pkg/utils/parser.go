package utils

import (
	"time"

	"agendaclin-service/internal/pkg/constvars"
	"agendaclin-service/internal/pkg/exceptions"
)

// ParseCalendarDate parses an ISO calendar date (2006-01-02) in the given
// location so downstream comparisons against wall-clock time stay in the
// clinic's timezone.
func ParseCalendarDate(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(constvars.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, exceptions.ErrInvalidDate(err)
	}
	return parsed, nil
}

// ParseClock parses an HH:MM wall-clock value into minutes since midnight.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse(constvars.ClockLayout, value)
	if err != nil {
		return 0, exceptions.ErrCannotParseClock(err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatClock renders minutes since midnight back into HH:MM.
func FormatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format(constvars.ClockLayout)
}
