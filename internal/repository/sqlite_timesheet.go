package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
)

const timesheetColumns = `id, user_id, week_start, week_end, total_hours, status,
		submitted_at, reviewed_at, reviewed_by, admin_comment, created_at`

// SQLiteTimesheetRepo implements TimesheetRepo using a SQLite database.
type SQLiteTimesheetRepo struct {
	db db.DBTX
}

// NewSQLiteTimesheetRepo creates a new SQLiteTimesheetRepo.
func NewSQLiteTimesheetRepo(db db.DBTX) *SQLiteTimesheetRepo {
	return &SQLiteTimesheetRepo{db: db}
}

func (r *SQLiteTimesheetRepo) Create(ctx context.Context, t *domain.Timesheet) error {
	query := `INSERT INTO timesheets (` + timesheetColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.WeekStart,
		t.WeekEnd,
		t.TotalHours,
		string(t.Status),
		nullableTimeToString(t.SubmittedAt, time.RFC3339),
		nullableTimeToString(t.ReviewedAt, time.RFC3339),
		nullableString(t.ReviewedBy),
		nullableString(t.AdminComment),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("inserting timesheet", err)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = ?`
	return r.scanTimesheet(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTimesheetRepo) GetByUserWeek(ctx context.Context, userID, weekStart string) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE user_id = ? AND week_start = ?`
	return r.scanTimesheet(r.db.QueryRowContext(ctx, query, userID, weekStart))
}

func (r *SQLiteTimesheetRepo) List(ctx context.Context, f TimesheetFilter) ([]*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE 1=1`
	var args []any
	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	query += ` ORDER BY week_start DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("listing timesheets", err)
	}
	defer rows.Close()

	var sheets []*domain.Timesheet
	for rows.Next() {
		t, err := r.scanTimesheetRow(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating timesheets", err)
	}
	return sheets, nil
}

func (r *SQLiteTimesheetRepo) CountByStatus(ctx context.Context, status domain.TimesheetStatus) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM timesheets WHERE status = ?`
	if err := r.db.QueryRowContext(ctx, query, string(status)).Scan(&n); err != nil {
		return 0, storeErr("counting timesheets", err)
	}
	return n, nil
}

func (r *SQLiteTimesheetRepo) Update(ctx context.Context, t *domain.Timesheet) error {
	query := `UPDATE timesheets SET total_hours = ?, status = ?, submitted_at = ?,
		reviewed_at = ?, reviewed_by = ?, admin_comment = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.TotalHours,
		string(t.Status),
		nullableTimeToString(t.SubmittedAt, time.RFC3339),
		nullableTimeToString(t.ReviewedAt, time.RFC3339),
		nullableString(t.ReviewedBy),
		nullableString(t.AdminComment),
		t.ID,
	)
	if err != nil {
		return storeErr("updating timesheet", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("timesheet %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting timesheet", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("timesheet %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) scanTimesheet(row *sql.Row) (*domain.Timesheet, error) {
	var t domain.Timesheet
	var status, createdAtStr string
	var submittedAt, reviewedAt, reviewedBy, comment sql.NullString

	err := row.Scan(&t.ID, &t.UserID, &t.WeekStart, &t.WeekEnd, &t.TotalHours, &status,
		&submittedAt, &reviewedAt, &reviewedBy, &comment, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timesheet: %w", domain.ErrNotFound)
		}
		return nil, storeErr("scanning timesheet", err)
	}
	return r.populateTimesheet(&t, status, createdAtStr, submittedAt, reviewedAt, reviewedBy, comment)
}

func (r *SQLiteTimesheetRepo) scanTimesheetRow(rows *sql.Rows) (*domain.Timesheet, error) {
	var t domain.Timesheet
	var status, createdAtStr string
	var submittedAt, reviewedAt, reviewedBy, comment sql.NullString

	if err := rows.Scan(&t.ID, &t.UserID, &t.WeekStart, &t.WeekEnd, &t.TotalHours, &status,
		&submittedAt, &reviewedAt, &reviewedBy, &comment, &createdAtStr); err != nil {
		return nil, storeErr("scanning timesheet row", err)
	}
	return r.populateTimesheet(&t, status, createdAtStr, submittedAt, reviewedAt, reviewedBy, comment)
}

func (r *SQLiteTimesheetRepo) populateTimesheet(t *domain.Timesheet, status, createdAtStr string,
	submittedAt, reviewedAt, reviewedBy, comment sql.NullString) (*domain.Timesheet, error) {

	t.Status = domain.TimesheetStatus(status)
	t.SubmittedAt = parseNullableTime(submittedAt, time.RFC3339)
	t.ReviewedAt = parseNullableTime(reviewedAt, time.RFC3339)
	t.ReviewedBy = stringOrNil(reviewedBy)
	t.AdminComment = stringOrNil(comment)

	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return t, nil
}
