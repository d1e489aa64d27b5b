package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date format used for entry dates and week
// boundaries throughout the store.
const DateLayout = "2006-01-02"

// DateOf returns the UTC calendar date of t as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, ErrValidation)
	}
	return t, nil
}

// WeekStartOf returns the Monday of the UTC week containing t, as YYYY-MM-DD.
func WeekStartOf(t time.Time) string {
	t = t.UTC()
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DateLayout)
}

// WeekEndOf returns the Sunday six days after the given Monday.
func WeekEndOf(weekStart string) (string, error) {
	t, err := ParseDate(weekStart)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 6).Format(DateLayout), nil
}

// HoursFromSeconds converts a duration sum in seconds to decimal hours
// rounded to two places, the precision stored on timesheets.
func HoursFromSeconds(seconds int) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}
