package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartOf_AllWeekdays(t *testing.T) {
	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		assert.Equal(t, "2026-08-24", WeekStartOf(day), "day %s", day.Weekday())
	}

	// The next Monday starts a new week.
	assert.Equal(t, "2026-08-31", WeekStartOf(monday.AddDate(0, 0, 7)))
}

func TestWeekStartOf_IgnoresTimeOfDay(t *testing.T) {
	lateSunday := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-08-24", WeekStartOf(lateSunday))
}

func TestWeekEndOf(t *testing.T) {
	end, err := WeekEndOf("2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", end)

	_, err = WeekEndOf("not-a-date")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDate("24/08/2026")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHoursFromSeconds(t *testing.T) {
	assert.Equal(t, 0.0, HoursFromSeconds(0))
	assert.Equal(t, 1.0, HoursFromSeconds(3600))
	assert.Equal(t, 1.5, HoursFromSeconds(5400))
	// Rounded to two decimal places.
	assert.Equal(t, 0.01, HoursFromSeconds(30))
	assert.Equal(t, 0.5, HoursFromSeconds(1800))
	assert.Equal(t, 8.25, HoursFromSeconds(29700))
}

func TestSessionStale(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	s := &TimerSession{LastHeartbeat: now.Add(-4 * time.Minute)}

	assert.False(t, s.Stale(now, 5*time.Minute))
	assert.True(t, s.Stale(now, 3*time.Minute))
	// Exactly at the threshold is not yet stale.
	assert.False(t, s.Stale(now, 4*time.Minute))
}
