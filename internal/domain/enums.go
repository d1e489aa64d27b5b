package domain

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type EntryType string

const (
	EntryTimer  EntryType = "timer"
	EntryManual EntryType = "manual"
)

type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetDenied    TimesheetStatus = "denied"
)

// timesheetTransitions is the allowed next-states table for the approval
// workflow. Approved is terminal; denied→draft is the only reverse edge.
var timesheetTransitions = map[TimesheetStatus][]TimesheetStatus{
	TimesheetDraft:     {TimesheetSubmitted},
	TimesheetSubmitted: {TimesheetApproved, TimesheetDenied},
	TimesheetDenied:    {TimesheetDraft},
	TimesheetApproved:  {},
}

// CanTransition reports whether the approval workflow permits moving a
// timesheet from one status to another.
func (s TimesheetStatus) CanTransition(to TimesheetStatus) bool {
	for _, next := range timesheetTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionDeny    ReviewDecision = "deny"
)

type NotificationType string

const (
	NotifTimesheetSubmitted NotificationType = "timesheet_submitted"
	NotifTimesheetApproved  NotificationType = "timesheet_approved"
	NotifTimesheetDenied    NotificationType = "timesheet_denied"
)

// ProjectActive is the project/task status that permits logging time
// against them. Status is otherwise free-form.
const ProjectActive = "active"
