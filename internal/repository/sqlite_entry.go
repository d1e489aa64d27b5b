package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
)

const entryColumns = `id, user_id, project_id, task_id, start_time, end_time, duration, entry_type, date, notes, created_at`

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(db db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: db}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.ProjectID,
		e.TaskID,
		e.StartTime.Format(time.RFC3339),
		e.EndTime.Format(time.RFC3339),
		e.Duration,
		string(e.EntryType),
		e.Date,
		e.Notes,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("inserting time entry", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var e domain.TimeEntry
	var startStr, endStr, entryType, createdAtStr string
	err := row.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.TaskID, &startStr, &endStr,
		&e.Duration, &entryType, &e.Date, &e.Notes, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", domain.ErrNotFound)
		}
		return nil, storeErr("scanning time entry", err)
	}
	return r.populateEntry(&e, startStr, endStr, entryType, createdAtStr)
}

func (r *SQLiteEntryRepo) List(ctx context.Context, f EntryFilter) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE 1=1`
	var args []any
	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.StartDate != "" {
		query += ` AND date >= ?`
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += ` AND date <= ?`
		args = append(args, f.EndDate)
	}
	query += ` ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("listing time entries", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var startStr, endStr, entryType, createdAtStr string
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.TaskID, &startStr, &endStr,
			&e.Duration, &entryType, &e.Date, &e.Notes, &createdAtStr); err != nil {
			return nil, storeErr("scanning time entry row", err)
		}
		entry, err := r.populateEntry(&e, startStr, endStr, entryType, createdAtStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating time entries", err)
	}
	return entries, nil
}

func (r *SQLiteEntryRepo) SumDurations(ctx context.Context, userID, startDate, endDate string) (int, error) {
	query := `SELECT COALESCE(SUM(duration), 0) FROM time_entries
		WHERE user_id = ? AND date >= ? AND date <= ?`
	var total int
	if err := r.db.QueryRowContext(ctx, query, userID, startDate, endDate).Scan(&total); err != nil {
		return 0, storeErr("summing entry durations", err)
	}
	return total, nil
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting time entry", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("time entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteEntryRepo) populateEntry(e *domain.TimeEntry, startStr, endStr, entryType, createdAtStr string) (*domain.TimeEntry, error) {
	var err error
	e.StartTime, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	e.EndTime, err = time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.EntryType = domain.EntryType(entryType)
	return e, nil
}
