package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeOfDay is a wall-clock time with no date attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Format renders the time as zero-padded HH:MM.
func (t TimeOfDay) Format() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Compare returns a negative value when t is before other, zero when equal,
// positive when after.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	return t.Minutes() - other.Minutes()
}

// timeOfDayPattern accepts HH:MM with an optionally unpadded hour and
// nothing else before or after.
var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseTimeOfDay parses HH:MM text into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayPattern.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// DayKey formats a date as the canonical YYYY-MM-DD key. Only the local
// calendar date matters; any time-of-day on the input is ignored.
func DayKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// ParseDayKey parses a YYYY-MM-DD key back into a local midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, time.Local)
}

// Normalize strips the time-of-day, returning local midnight of the same
// calendar day.
func Normalize(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// FirstWeekday returns the weekday of the first day of the given month.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday()
}

// FormatDayDisplay renders a date for headers, e.g. "January 15, 2025".
func FormatDayDisplay(date time.Time) string {
	return date.Format("January 2, 2006")
}
