package service

import (
	"context"
	"time"

	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/repository"
)

// Reaper force-closes sessions whose heartbeat has gone stale, producing
// the same time entry a user-initiated stop would, except that the entry
// ends at the last confirmed heartbeat rather than the sweep time.
type Reaper struct {
	sessions  repository.SessionRepo
	uow       db.UnitOfWork
	clk       clock.Clock
	interval  time.Duration
	threshold time.Duration
	obs       UseCaseObserver
}

// NewReaper creates a reaper sweeping every interval for sessions idle
// longer than threshold.
func NewReaper(sessions repository.SessionRepo, uow db.UnitOfWork, clk clock.Clock,
	interval, threshold time.Duration, observers ...UseCaseObserver) *Reaper {
	return &Reaper{
		sessions:  sessions,
		uow:       uow,
		clk:       clk,
		interval:  interval,
		threshold: threshold,
		obs:       useCaseObserverOrNoop(observers),
	}
}

// Run sweeps on a fixed interval until ctx is canceled. Sweep errors are
// reported to the observer and do not stop the loop.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			started := r.clk.Now()
			reaped, err := r.Sweep(ctx)
			observe(ctx, r.obs, "reaper_sweep", started, err, map[string]any{"reaped": reaped})
		}
	}
}

// Sweep terminates every stale active session and returns how many it
// closed. Sweep is idempotent: a session already stopped by the user (or a
// concurrent sweep) is skipped without error, because only the caller that
// wins the is_active true→false transition creates the time entry. The
// transition is re-guarded on last_heartbeat inside the transaction, so a
// heartbeat that lands after the stale listing revives the session and the
// sweep leaves it alone.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	cutoff := r.clk.Now().Add(-r.threshold)
	stale, err := r.sessions.ListStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, session := range stale {
		won := false
		err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txSessions := repository.NewSQLiteSessionRepo(tx)
			txEntries := repository.NewSQLiteEntryRepo(tx)

			var err error
			won, err = txSessions.DeactivateIfStale(ctx, session.ID, cutoff)
			if err != nil || !won {
				// Losing the race means someone else terminated or
				// revived the session; that is success, not a fault.
				return err
			}

			// Re-read for the heartbeat current at deactivation; the
			// listing snapshot may be behind.
			current, err := txSessions.GetByID(ctx, session.ID)
			if err != nil {
				return err
			}

			now := r.clk.Now()
			entry := entryFromSession(current, current.LastHeartbeat, "", now)
			if err := txEntries.Create(ctx, entry); err != nil {
				return err
			}

			txSheets := repository.NewSQLiteTimesheetRepo(tx)
			return refreshDraftForDate(ctx, txSheets, txEntries, session.UserID, entry.Date)
		})
		if err != nil {
			return reaped, err
		}
		if won {
			reaped++
		}
	}
	return reaped, nil
}
