package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

// DispatcherFactory builds a Dispatcher scoped to the given transaction so
// workflow notifications commit together with the status transition.
type DispatcherFactory func(tx db.DBTX) Dispatcher

type timesheetService struct {
	sheets     repository.TimesheetRepo
	users      repository.UserRepo
	uow        db.UnitOfWork
	clk        clock.Clock
	dispatcher DispatcherFactory
	obs        UseCaseObserver
}

// NewTimesheetService creates the aggregator and approval workflow. If
// dispatcher is nil, notifications are persisted to the store within the
// same transaction as the transition that emits them.
func NewTimesheetService(sheets repository.TimesheetRepo, users repository.UserRepo, uow db.UnitOfWork,
	clk clock.Clock, dispatcher DispatcherFactory, observers ...UseCaseObserver) TimesheetService {
	if dispatcher == nil {
		dispatcher = func(tx db.DBTX) Dispatcher {
			return NewStoreDispatcher(repository.NewSQLiteNotificationRepo(tx), clk)
		}
	}
	return &timesheetService{
		sheets:     sheets,
		users:      users,
		uow:        uow,
		clk:        clk,
		dispatcher: dispatcher,
		obs:        useCaseObserverOrNoop(observers),
	}
}

func (s *timesheetService) EnsureDraft(ctx context.Context, userID, weekStart string) (*domain.Timesheet, error) {
	day, err := domain.ParseDate(weekStart)
	if err != nil {
		return nil, err
	}
	// Normalize any in-week date to its Monday so (user, week_start)
	// stays unique no matter which day the caller passed.
	monday := domain.WeekStartOf(day)
	weekEnd, err := domain.WeekEndOf(monday)
	if err != nil {
		return nil, err
	}

	sheet, err := s.ensureDraftOnce(ctx, userID, monday, weekEnd)
	if errors.Is(err, domain.ErrConflict) {
		// Two first calls for the same (user, week) raced on the insert;
		// the loser picks up the winner's row.
		sheet, err = s.ensureDraftOnce(ctx, userID, monday, weekEnd)
	}
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *timesheetService) ensureDraftOnce(ctx context.Context, userID, monday, weekEnd string) (*domain.Timesheet, error) {
	var sheet *domain.Timesheet
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)

		existing, err := txSheets.GetByUserWeek(ctx, userID, monday)
		if err != nil && !isNotFound(err) {
			return err
		}

		if existing != nil && existing.Frozen() {
			// Submitted/approved/denied timesheets are frozen snapshots.
			sheet = existing
			return nil
		}

		total, err := txEntries.SumDurations(ctx, userID, monday, weekEnd)
		if err != nil {
			return err
		}
		hours := domain.HoursFromSeconds(total)

		if existing == nil {
			sheet = &domain.Timesheet{
				ID:         uuid.New().String(),
				UserID:     userID,
				WeekStart:  monday,
				WeekEnd:    weekEnd,
				TotalHours: hours,
				Status:     domain.TimesheetDraft,
				CreatedAt:  s.clk.Now(),
			}
			return txSheets.Create(ctx, sheet)
		}

		existing.TotalHours = hours
		sheet = existing
		return txSheets.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *timesheetService) Recompute(ctx context.Context, timesheetID string) (*domain.Timesheet, error) {
	var sheet *domain.Timesheet
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)

		existing, err := txSheets.GetByID(ctx, timesheetID)
		if err != nil {
			return err
		}
		sheet = existing
		if existing.Frozen() {
			return nil
		}

		total, err := txEntries.SumDurations(ctx, existing.UserID, existing.WeekStart, existing.WeekEnd)
		if err != nil {
			return err
		}
		existing.TotalHours = domain.HoursFromSeconds(total)
		return txSheets.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *timesheetService) Submit(ctx context.Context, timesheetID, requesterID string) (*domain.Timesheet, error) {
	now := s.clk.Now()
	owner, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	var sheet *domain.Timesheet
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)
		txUsers := repository.NewSQLiteUserRepo(tx)

		existing, err := txSheets.GetByID(ctx, timesheetID)
		if err != nil {
			return err
		}
		if existing.UserID != owner.ID {
			return fmt.Errorf("timesheet %s belongs to another user: %w", timesheetID, domain.ErrUnauthorized)
		}
		if !existing.Status.CanTransition(domain.TimesheetSubmitted) {
			return fmt.Errorf("timesheet %s is %s, not draft: %w", timesheetID, existing.Status, domain.ErrConflict)
		}

		// Final recompute before the snapshot freezes.
		total, err := txEntries.SumDurations(ctx, existing.UserID, existing.WeekStart, existing.WeekEnd)
		if err != nil {
			return err
		}
		existing.TotalHours = domain.HoursFromSeconds(total)
		existing.Status = domain.TimesheetSubmitted
		existing.SubmittedAt = &now
		if err := txSheets.Update(ctx, existing); err != nil {
			return err
		}

		admins, err := txUsers.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		dispatch := s.dispatcher(tx)
		for _, admin := range admins {
			n := &domain.Notification{
				UserID:             admin.ID,
				Type:               domain.NotifTimesheetSubmitted,
				Title:              "New Timesheet Submission",
				Message:            fmt.Sprintf("%s submitted a timesheet for %s", owner.Name, existing.WeekStart),
				RelatedTimesheetID: &existing.ID,
			}
			if err := dispatch.Enqueue(ctx, n); err != nil {
				return err
			}
		}

		sheet = existing
		return nil
	})
	observe(ctx, s.obs, "timesheet_submit", now, err, map[string]any{"timesheet_id": timesheetID})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *timesheetService) Review(ctx context.Context, timesheetID, reviewerID string, decision domain.ReviewDecision, comment string) (*domain.Timesheet, error) {
	now := s.clk.Now()

	var target domain.TimesheetStatus
	switch decision {
	case domain.DecisionApprove:
		target = domain.TimesheetApproved
	case domain.DecisionDeny:
		target = domain.TimesheetDenied
	default:
		return nil, fmt.Errorf("decision %q: %w", decision, domain.ErrValidation)
	}
	if target == domain.TimesheetDenied && strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("comment required when denying: %w", domain.ErrValidation)
	}

	reviewer, err := requireAdmin(ctx, s.users, reviewerID)
	if err != nil {
		return nil, err
	}

	var sheet *domain.Timesheet
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLiteTimesheetRepo(tx)

		existing, err := txSheets.GetByID(ctx, timesheetID)
		if err != nil {
			return err
		}
		if !existing.Status.CanTransition(target) {
			return fmt.Errorf("timesheet %s is %s, not submitted: %w", timesheetID, existing.Status, domain.ErrConflict)
		}

		existing.Status = target
		existing.ReviewedAt = &now
		existing.ReviewedBy = &reviewer.ID
		if strings.TrimSpace(comment) != "" {
			c := comment
			existing.AdminComment = &c
		} else {
			existing.AdminComment = nil
		}
		if err := txSheets.Update(ctx, existing); err != nil {
			return err
		}

		n := &domain.Notification{
			UserID:             existing.UserID,
			RelatedTimesheetID: &existing.ID,
		}
		if target == domain.TimesheetApproved {
			n.Type = domain.NotifTimesheetApproved
			n.Title = "Timesheet Approved"
			n.Message = fmt.Sprintf("Your timesheet for %s has been approved", existing.WeekStart)
		} else {
			n.Type = domain.NotifTimesheetDenied
			n.Title = "Timesheet Denied"
			n.Message = fmt.Sprintf("Your timesheet for %s has been denied: %s", existing.WeekStart, comment)
		}
		if err := s.dispatcher(tx).Enqueue(ctx, n); err != nil {
			return err
		}

		sheet = existing
		return nil
	})
	observe(ctx, s.obs, "timesheet_review", now, err, map[string]any{
		"timesheet_id": timesheetID, "decision": string(decision),
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *timesheetService) Reopen(ctx context.Context, timesheetID, requesterID string) (*domain.Timesheet, error) {
	owner, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	var sheet *domain.Timesheet
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)

		existing, err := txSheets.GetByID(ctx, timesheetID)
		if err != nil {
			return err
		}
		if existing.UserID != owner.ID {
			return fmt.Errorf("timesheet %s belongs to another user: %w", timesheetID, domain.ErrUnauthorized)
		}
		if !existing.Status.CanTransition(domain.TimesheetDraft) {
			return fmt.Errorf("timesheet %s is %s, not denied: %w", timesheetID, existing.Status, domain.ErrConflict)
		}

		existing.Status = domain.TimesheetDraft
		existing.SubmittedAt = nil
		existing.ReviewedAt = nil
		existing.ReviewedBy = nil
		existing.AdminComment = nil

		// Back in draft, the total becomes a live view again.
		total, err := txEntries.SumDurations(ctx, existing.UserID, existing.WeekStart, existing.WeekEnd)
		if err != nil {
			return err
		}
		existing.TotalHours = domain.HoursFromSeconds(total)

		sheet = existing
		return txSheets.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *timesheetService) List(ctx context.Context, requesterID string, f repository.TimesheetFilter) ([]*domain.Timesheet, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() {
		f.UserID = requester.ID
	}
	return s.sheets.List(ctx, f)
}
