package service

import (
	"context"
	"time"

	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

// TimerService owns the invariant "at most one active session per user".
type TimerService interface {
	// Start begins a timer for the user. ErrConflict if a timer is already
	// running, ErrValidation if the project/task pair is unusable.
	Start(ctx context.Context, userID, projectID, taskID string) (*domain.TimerSession, error)
	// Heartbeat advances the active session's liveness timestamp.
	// ErrNotFound if the user has no active session.
	Heartbeat(ctx context.Context, userID string) (*domain.TimerSession, error)
	// Stop terminates the active session and materializes exactly one
	// timer-type entry. ErrNotFound if no session is active.
	Stop(ctx context.Context, userID, notes string) (*domain.TimeEntry, error)
	// GetActive returns the active session, or nil when none is running.
	GetActive(ctx context.Context, userID string) (*domain.TimerSession, error)
}

type EntryService interface {
	// RecordManual creates a manual entry. Duration is derived from the
	// interval; overlapping manual entries are permitted.
	RecordManual(ctx context.Context, userID, projectID, taskID string, start, end time.Time, notes string) (*domain.TimeEntry, error)
	// Delete removes an entry (owner or admin only) and refreshes any draft
	// timesheet whose week contains the entry's date.
	Delete(ctx context.Context, entryID, requesterID string) error
	// List returns entries visible to the requester; non-admins only see
	// their own regardless of the filter.
	List(ctx context.Context, requesterID string, f repository.EntryFilter) ([]*domain.TimeEntry, error)
}

type TimesheetService interface {
	// EnsureDraft creates or refreshes the draft timesheet for the week
	// containing weekStart (normalized to its Monday). Frozen timesheets
	// are returned untouched.
	EnsureDraft(ctx context.Context, userID, weekStart string) (*domain.Timesheet, error)
	// Recompute re-sums a timesheet's totals; no-op unless status is draft.
	Recompute(ctx context.Context, timesheetID string) (*domain.Timesheet, error)
	// Submit moves a draft to submitted and notifies admins.
	Submit(ctx context.Context, timesheetID, requesterID string) (*domain.Timesheet, error)
	// Review approves or denies a submitted timesheet and notifies its
	// owner. A comment is required when denying.
	Review(ctx context.Context, timesheetID, reviewerID string, decision domain.ReviewDecision, comment string) (*domain.Timesheet, error)
	// Reopen returns a denied timesheet to draft, clearing review fields.
	Reopen(ctx context.Context, timesheetID, requesterID string) (*domain.Timesheet, error)
	List(ctx context.Context, requesterID string, f repository.TimesheetFilter) ([]*domain.Timesheet, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// Dispatcher delivers notification records produced by the approval
// workflow. Enqueue has at-least-once semantics; failures propagate.
type Dispatcher interface {
	Enqueue(ctx context.Context, n *domain.Notification) error
}

// ReportGroup is one bucket of a grouped time report.
type ReportGroup struct {
	ID           string
	Label        string
	TotalSeconds int
	TotalHours   float64
	EntryCount   int
}

// ReportSummary totals a report across all groups.
type ReportSummary struct {
	TotalSeconds int
	TotalHours   float64
	TotalEntries int
}

// TimeReport is the structured output of a grouped report; rendering
// (CSV/PDF) belongs to external collaborators.
type TimeReport struct {
	Groups  []ReportGroup
	Summary ReportSummary
}

// ReportRequest selects and groups entries for a report.
type ReportRequest struct {
	StartDate string
	EndDate   string
	GroupBy   string // user, project, task, date
	UserID    string
	ProjectID string
}

// DashboardStats carries role-dependent headline numbers.
type DashboardStats struct {
	Role domain.UserRole

	// Admin view
	TotalEmployees    int
	ActiveEmployees   int
	PendingTimesheets int
	TotalProjects     int
	ActiveTimers      int

	// Employee view
	TodayHours   float64
	WeekHours    float64
	TotalEntries int
}

type ReportService interface {
	TimeReport(ctx context.Context, requesterID string, req ReportRequest) (*TimeReport, error)
	Stats(ctx context.Context, requesterID string) (*DashboardStats, error)
}

type ProjectService interface {
	Create(ctx context.Context, requesterID string, p *domain.Project) error
	Update(ctx context.Context, requesterID string, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	CreateTask(ctx context.Context, requesterID string, t *domain.Task) error
	UpdateTask(ctx context.Context, requesterID string, t *domain.Task) error
	ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
}

type UserService interface {
	Provision(ctx context.Context, requesterID string, u *domain.User) error
	Update(ctx context.Context, requesterID string, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, requesterID string) ([]*domain.User, error)
}
