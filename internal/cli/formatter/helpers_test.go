package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", TruncID("12345678-9abc-def0-1234-56789abcdef0"))
	assert.Equal(t, "short", TruncID("short"))
	assert.Equal(t, "", TruncID(""))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatSeconds(0))
	assert.Equal(t, "0:00:30", FormatSeconds(30))
	assert.Equal(t, "0:05:00", FormatSeconds(300))
	assert.Equal(t, "1:30:05", FormatSeconds(5405))
	assert.Equal(t, "27:46:40", FormatSeconds(100000))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0.00h", FormatHours(0))
	assert.Equal(t, "1.50h", FormatHours(1.5))
	assert.Equal(t, "8.25h", FormatHours(8.25))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second)))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour)))

	old := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 15, 2026", HumanTimestamp(old))
}
