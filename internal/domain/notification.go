package domain

import "time"

// Notification is a persisted message produced by the approval workflow.
// RelatedTimesheetID is a weak reference: it is nulled if the timesheet is
// later deleted.
type Notification struct {
	ID                 string
	UserID             string
	Type               NotificationType
	Title              string
	Message            string
	Read               bool
	RelatedTimesheetID *string
	CreatedAt          time.Time
}
