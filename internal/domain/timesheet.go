package domain

import "time"

// Timesheet is a weekly aggregate of a user's time entries. While in draft
// status TotalHours is a live view recomputed from current entries; once
// submitted it becomes a frozen snapshot.
type Timesheet struct {
	ID           string
	UserID       string
	WeekStart    string // Monday, YYYY-MM-DD
	WeekEnd      string // Sunday, YYYY-MM-DD
	TotalHours   float64
	Status       TimesheetStatus
	SubmittedAt  *time.Time
	ReviewedAt   *time.Time
	ReviewedBy   *string
	AdminComment *string
	CreatedAt    time.Time
}

// Frozen reports whether TotalHours is a snapshot that must not be
// recomputed from live entries.
func (t *Timesheet) Frozen() bool {
	return t.Status != TimesheetDraft
}
