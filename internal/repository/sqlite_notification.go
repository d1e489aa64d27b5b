package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
)

const notificationColumns = `id, user_id, type, title, message, read, related_timesheet_id, created_at`

// SQLiteNotificationRepo implements NotificationRepo using a SQLite database.
type SQLiteNotificationRepo struct {
	db db.DBTX
}

// NewSQLiteNotificationRepo creates a new SQLiteNotificationRepo.
func NewSQLiteNotificationRepo(db db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: db}
}

func (r *SQLiteNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		string(n.Type),
		n.Title,
		n.Message,
		boolToInt(n.Read),
		nullableString(n.RelatedTimesheetID),
		n.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("inserting notification", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, storeErr("listing notifications", err)
	}
	defer rows.Close()

	var notifs []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ, createdAtStr string
		var read int
		var related sql.NullString

		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &read, &related, &createdAtStr); err != nil {
			return nil, storeErr("scanning notification row", err)
		}
		n.Type = domain.NotificationType(typ)
		n.Read = intToBool(read)
		n.RelatedTimesheetID = stringOrNil(related)
		n.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		notifs = append(notifs, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating notifications", err)
	}
	return notifs, nil
}

func (r *SQLiteNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, storeErr("counting unread notifications", err)
	}
	return n, nil
}

func (r *SQLiteNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return storeErr("marking notification read", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return storeErr("marking all notifications read", err)
	}
	return nil
}
