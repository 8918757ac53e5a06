package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/skilltrack/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified
// timezone. "Today" is always determined by the user's configured timezone,
// never by UTC slicing of a timestamp.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// LocalDateString formats a time as a YYYY-MM-DD date in its own location.
func LocalDateString(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DateOfMillis returns the calendar date (YYYY-MM-DD) of an epoch-millisecond
// timestamp in the given location.
func DateOfMillis(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format(constants.DateFormat)
}

// MillisToTime converts an epoch-millisecond timestamp to a time.Time.
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// FormatClock renders a second count as HH:MM:SS for the live timer display.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHours renders an hours value the way entries and goals display it,
// trimming to two decimals.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2fh", hours)
}
