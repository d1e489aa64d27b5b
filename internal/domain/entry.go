package domain

import "time"

// TimeEntry is an immutable record of worked time. There is no update path;
// entries are created once and may only be deleted.
type TimeEntry struct {
	ID        string
	UserID    string
	ProjectID string
	TaskID    string
	StartTime time.Time
	EndTime   time.Time
	Duration  int // whole seconds, = EndTime - StartTime, never negative
	EntryType EntryType
	Date      string // YYYY-MM-DD
	Notes     string
	CreatedAt time.Time
}
