package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

type timerService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	clk      clock.Clock
	obs      UseCaseObserver
}

// NewTimerService creates the timer session manager. All mutating
// operations for a user are serialized through the unit of work; the
// store's partial unique index keeps concurrent starts exclusive even
// across service instances sharing one database.
func NewTimerService(sessions repository.SessionRepo, uow db.UnitOfWork, clk clock.Clock, observers ...UseCaseObserver) TimerService {
	return &timerService{
		sessions: sessions,
		uow:      uow,
		clk:      clk,
		obs:      useCaseObserverOrNoop(observers),
	}
}

func (s *timerService) Start(ctx context.Context, userID, projectID, taskID string) (*domain.TimerSession, error) {
	now := s.clk.Now()
	session := &domain.TimerSession{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProjectID:     projectID,
		TaskID:        taskID,
		StartTime:     now,
		LastHeartbeat: now,
		IsActive:      true,
		Date:          domain.DateOf(now),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if err := checkAssignment(ctx, txProjects, txTasks, projectID, taskID); err != nil {
			return err
		}

		if _, err := txSessions.GetActive(ctx, userID); err == nil {
			return fmt.Errorf("user %s already has a running timer: %w", userID, domain.ErrConflict)
		} else if !isNotFound(err) {
			return err
		}

		// The check above and this insert are one transaction; a racing
		// start on another connection loses on the unique index instead.
		return txSessions.Create(ctx, session)
	})
	observe(ctx, s.obs, "timer_start", now, err, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *timerService) Heartbeat(ctx context.Context, userID string) (*domain.TimerSession, error) {
	now := s.clk.Now()
	var session *domain.TimerSession

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		active, err := txSessions.GetActive(ctx, userID)
		if err != nil {
			return err
		}
		if err := txSessions.UpdateHeartbeat(ctx, active.ID, now); err != nil {
			return err
		}
		active.LastHeartbeat = now
		session = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *timerService) Stop(ctx context.Context, userID, notes string) (*domain.TimeEntry, error) {
	now := s.clk.Now()
	var entry *domain.TimeEntry

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)

		active, err := txSessions.GetActive(ctx, userID)
		if err != nil {
			return err
		}
		won, err := txSessions.Deactivate(ctx, active.ID)
		if err != nil {
			return err
		}
		if !won {
			return fmt.Errorf("timer session %s: %w", active.ID, domain.ErrNotFound)
		}

		entry = entryFromSession(active, now, notes, now)
		if err := txEntries.Create(ctx, entry); err != nil {
			return err
		}

		// Keep any draft timesheet covering this date a live view.
		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		return refreshDraftForDate(ctx, txSheets, txEntries, userID, entry.Date)
	})
	observe(ctx, s.obs, "timer_stop", now, err, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetActive is a pure read: it returns nil without error when no timer is
// running for the user.
func (s *timerService) GetActive(ctx context.Context, userID string) (*domain.TimerSession, error) {
	session, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}
