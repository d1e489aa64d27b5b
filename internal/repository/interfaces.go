package repository

import (
	"context"
	"time"

	"github.com/omnigratum/timeclock/internal/domain"
)

// EntryFilter narrows time-entry listings. Zero-valued fields are ignored.
// StartDate and EndDate are inclusive YYYY-MM-DD bounds on the entry date.
type EntryFilter struct {
	UserID    string
	ProjectID string
	StartDate string
	EndDate   string
}

// TimesheetFilter narrows timesheet listings. Zero-valued fields are ignored.
type TimesheetFilter struct {
	UserID string
	Status domain.TimesheetStatus
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error)
	CountByRole(ctx context.Context, role domain.UserRole, activeOnly bool) (int, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.TimerSession) error
	GetByID(ctx context.Context, id string) (*domain.TimerSession, error)
	// GetActive returns the user's active session, or ErrNotFound.
	GetActive(ctx context.Context, userID string) (*domain.TimerSession, error)
	UpdateHeartbeat(ctx context.Context, id string, at time.Time) error
	// Deactivate flips is_active from true to false. It reports whether this
	// call performed the transition; false means another caller already did.
	Deactivate(ctx context.Context, id string) (bool, error)
	// DeactivateIfStale is Deactivate additionally guarded on last_heartbeat
	// being strictly before cutoff, so a heartbeat committed after the caller
	// last observed the session makes the transition a no-op.
	DeactivateIfStale(ctx context.Context, id string, cutoff time.Time) (bool, error)
	// ListStale returns active sessions whose last heartbeat is strictly
	// before the given cutoff.
	ListStale(ctx context.Context, cutoff time.Time) ([]*domain.TimerSession, error)
	CountActive(ctx context.Context) (int, error)
}

type EntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	List(ctx context.Context, f EntryFilter) ([]*domain.TimeEntry, error)
	// SumDurations totals entry durations in seconds for a user across an
	// inclusive date range.
	SumDurations(ctx context.Context, userID, startDate, endDate string) (int, error)
	Delete(ctx context.Context, id string) error
}

type TimesheetRepo interface {
	Create(ctx context.Context, t *domain.Timesheet) error
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	// GetByUserWeek returns the timesheet for (user, week_start), or ErrNotFound.
	GetByUserWeek(ctx context.Context, userID, weekStart string) (*domain.Timesheet, error)
	List(ctx context.Context, f TimesheetFilter) ([]*domain.Timesheet, error)
	CountByStatus(ctx context.Context, status domain.TimesheetStatus) (int, error)
	Update(ctx context.Context, t *domain.Timesheet) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead marks a single notification read; ErrNotFound if the
	// notification does not exist or belongs to another user.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
