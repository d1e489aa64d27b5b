package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

// entryFromSession materializes a terminated session into a timer-type
// entry. This is the single construction path shared by Stop and the
// reaper; end times earlier than the session start are clamped so clock
// skew yields a zero-duration entry instead of an error.
func entryFromSession(s *domain.TimerSession, end time.Time, notes string, now time.Time) *domain.TimeEntry {
	if end.Before(s.StartTime) {
		end = s.StartTime
	}
	return &domain.TimeEntry{
		ID:        uuid.New().String(),
		UserID:    s.UserID,
		ProjectID: s.ProjectID,
		TaskID:    s.TaskID,
		StartTime: s.StartTime,
		EndTime:   end,
		Duration:  int(end.Sub(s.StartTime).Seconds()),
		EntryType: domain.EntryTimer,
		Date:      s.Date,
		Notes:     notes,
		CreatedAt: now,
	}
}

// checkAssignment verifies that the task belongs to the project and that
// both are still accepting time.
func checkAssignment(ctx context.Context, projects repository.ProjectRepo, tasks repository.TaskRepo, projectID, taskID string) error {
	project, err := projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.ProjectID != project.ID {
		return fmt.Errorf("task %s does not belong to project %s: %w", taskID, projectID, domain.ErrValidation)
	}
	if project.Status != domain.ProjectActive {
		return fmt.Errorf("project %s is not active: %w", projectID, domain.ErrValidation)
	}
	if task.Status != domain.ProjectActive {
		return fmt.Errorf("task %s is not active: %w", taskID, domain.ErrValidation)
	}
	return nil
}

// requireAdmin loads the requester and fails with ErrUnauthorized unless
// they hold the admin role.
func requireAdmin(ctx context.Context, users repository.UserRepo, requesterID string) (*domain.User, error) {
	u, err := users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, fmt.Errorf("user %s: admin role required: %w", requesterID, domain.ErrUnauthorized)
	}
	return u, nil
}

// refreshDraftForDate recomputes the draft timesheet covering the given
// date, if one exists. Frozen timesheets are left untouched; absence of a
// timesheet is not an error (it will be built on the next EnsureDraft).
func refreshDraftForDate(ctx context.Context, sheets repository.TimesheetRepo, entries repository.EntryRepo, userID, date string) error {
	t, err := domain.ParseDate(date)
	if err != nil {
		return err
	}
	weekStart := domain.WeekStartOf(t)
	sheet, err := sheets.GetByUserWeek(ctx, userID, weekStart)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if sheet.Frozen() {
		return nil
	}
	total, err := entries.SumDurations(ctx, userID, sheet.WeekStart, sheet.WeekEnd)
	if err != nil {
		return err
	}
	sheet.TotalHours = domain.HoursFromSeconds(total)
	return sheets.Update(ctx, sheet)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
