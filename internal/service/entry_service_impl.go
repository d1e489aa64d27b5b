package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

type entryService struct {
	entries repository.EntryRepo
	users   repository.UserRepo
	uow     db.UnitOfWork
	clk     clock.Clock
	obs     UseCaseObserver
}

func NewEntryService(entries repository.EntryRepo, users repository.UserRepo, uow db.UnitOfWork, clk clock.Clock, observers ...UseCaseObserver) EntryService {
	return &entryService{
		entries: entries,
		users:   users,
		uow:     uow,
		clk:     clk,
		obs:     useCaseObserverOrNoop(observers),
	}
}

func (s *entryService) RecordManual(ctx context.Context, userID, projectID, taskID string, start, end time.Time, notes string) (*domain.TimeEntry, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end time %s before start time %s: %w",
			end.Format(time.RFC3339), start.Format(time.RFC3339), domain.ErrValidation)
	}

	now := s.clk.Now()
	entry := &domain.TimeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		TaskID:    taskID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Duration:  int(end.Sub(start).Seconds()),
		EntryType: domain.EntryManual,
		Date:      domain.DateOf(start),
		Notes:     notes,
		CreatedAt: now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)

		if err := checkAssignment(ctx, txProjects, txTasks, projectID, taskID); err != nil {
			return err
		}
		if err := txEntries.Create(ctx, entry); err != nil {
			return err
		}

		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		return refreshDraftForDate(ctx, txSheets, txEntries, userID, entry.Date)
	})
	observe(ctx, s.obs, "entry_record_manual", now, err, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) Delete(ctx context.Context, entryID, requesterID string) error {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		entry, err := txEntries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.UserID != requester.ID && !requester.IsAdmin() {
			return fmt.Errorf("time entry %s belongs to another user: %w", entryID, domain.ErrUnauthorized)
		}
		if err := txEntries.Delete(ctx, entryID); err != nil {
			return err
		}

		// Deletion must ripple into the owning week's draft; frozen
		// timesheets keep their snapshot.
		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		return refreshDraftForDate(ctx, txSheets, txEntries, entry.UserID, entry.Date)
	})
}

func (s *entryService) List(ctx context.Context, requesterID string, f repository.EntryFilter) ([]*domain.TimeEntry, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() {
		f.UserID = requester.ID
	}
	return s.entries.List(ctx, f)
}
