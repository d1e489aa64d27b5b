package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
)

const sessionColumns = `id, user_id, project_id, task_id, start_time, last_heartbeat, is_active, date`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

// Create inserts a new active session. The timer_sessions_one_active index
// rejects the insert with ErrConflict when the user already has an active
// session, which makes concurrent starts race safely: exactly one wins.
func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.TimerSession) error {
	query := `INSERT INTO timer_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.ProjectID,
		s.TaskID,
		s.StartTime.Format(time.RFC3339),
		s.LastHeartbeat.Format(time.RFC3339),
		boolToInt(s.IsActive),
		s.Date,
	)
	if err != nil {
		return storeErr("inserting timer session", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.TimerSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM timer_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) GetActive(ctx context.Context, userID string) (*domain.TimerSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM timer_sessions WHERE user_id = ? AND is_active = 1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLiteSessionRepo) UpdateHeartbeat(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE timer_sessions SET last_heartbeat = ? WHERE id = ? AND is_active = 1`
	res, err := r.db.ExecContext(ctx, query, at.Format(time.RFC3339), id)
	if err != nil {
		return storeErr("updating heartbeat", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("active timer session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Deactivate performs the guarded true→false transition on is_active. Only
// one caller can observe a row change; later callers get false, which the
// stop/reap paths treat as "someone else already terminated this session".
func (r *SQLiteSessionRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	query := `UPDATE timer_sessions SET is_active = 0 WHERE id = ? AND is_active = 1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, storeErr("deactivating timer session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("deactivating timer session", err)
	}
	return n > 0, nil
}

// DeactivateIfStale performs the same guarded transition as Deactivate but
// only when the stored last_heartbeat is still before cutoff. A session
// revived by a heartbeat in the meantime is left running.
func (r *SQLiteSessionRepo) DeactivateIfStale(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	query := `UPDATE timer_sessions SET is_active = 0 WHERE id = ? AND is_active = 1 AND last_heartbeat < ?`
	res, err := r.db.ExecContext(ctx, query, id, cutoff.Format(time.RFC3339))
	if err != nil {
		return false, storeErr("deactivating stale timer session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("deactivating stale timer session", err)
	}
	return n > 0, nil
}

func (r *SQLiteSessionRepo) ListStale(ctx context.Context, cutoff time.Time) ([]*domain.TimerSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM timer_sessions
		WHERE is_active = 1 AND last_heartbeat < ?
		ORDER BY last_heartbeat`
	rows, err := r.db.QueryContext(ctx, query, cutoff.Format(time.RFC3339))
	if err != nil {
		return nil, storeErr("listing stale sessions", err)
	}
	defer rows.Close()

	var sessions []*domain.TimerSession
	for rows.Next() {
		s, err := r.scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating stale sessions", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM timer_sessions WHERE is_active = 1`).Scan(&n); err != nil {
		return 0, storeErr("counting active sessions", err)
	}
	return n, nil
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.TimerSession, error) {
	var s domain.TimerSession
	var startStr, heartbeatStr string
	var active int

	err := row.Scan(&s.ID, &s.UserID, &s.ProjectID, &s.TaskID, &startStr, &heartbeatStr, &active, &s.Date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timer session: %w", domain.ErrNotFound)
		}
		return nil, storeErr("scanning timer session", err)
	}
	return r.populateSession(&s, startStr, heartbeatStr, active)
}

func (r *SQLiteSessionRepo) scanSessionRow(rows *sql.Rows) (*domain.TimerSession, error) {
	var s domain.TimerSession
	var startStr, heartbeatStr string
	var active int

	if err := rows.Scan(&s.ID, &s.UserID, &s.ProjectID, &s.TaskID, &startStr, &heartbeatStr, &active, &s.Date); err != nil {
		return nil, storeErr("scanning timer session row", err)
	}
	return r.populateSession(&s, startStr, heartbeatStr, active)
}

func (r *SQLiteSessionRepo) populateSession(s *domain.TimerSession, startStr, heartbeatStr string, active int) (*domain.TimerSession, error) {
	var err error
	s.StartTime, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.LastHeartbeat, err = time.Parse(time.RFC3339, heartbeatStr)
	if err != nil {
		return nil, fmt.Errorf("parsing last_heartbeat: %w", err)
	}
	s.IsActive = intToBool(active)
	return s, nil
}
