package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
)

const userColumns = `id, email, name, role, status, default_project, default_task, created_at`

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(db db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.Name,
		string(u.Role),
		string(u.Status),
		nullableString(u.DefaultProject),
		nullableString(u.DefaultTask),
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return storeErr("inserting user", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("listing users", err)
	}
	defer rows.Close()
	return r.scanUsers(rows)
}

func (r *SQLiteUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, storeErr("listing users by role", err)
	}
	defer rows.Close()
	return r.scanUsers(rows)
}

func (r *SQLiteUserRepo) CountByRole(ctx context.Context, role domain.UserRole, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE role = ?`
	args := []any{string(role)}
	if activeOnly {
		query += ` AND status = ?`
		args = append(args, string(domain.UserActive))
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, storeErr("counting users", err)
	}
	return n, nil
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = ?, name = ?, role = ?, status = ?,
		default_project = ?, default_task = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Email,
		u.Name,
		string(u.Role),
		string(u.Status),
		nullableString(u.DefaultProject),
		nullableString(u.DefaultTask),
		u.ID,
	)
	if err != nil {
		return storeErr("updating user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteUserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return storeErr("deleting user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteUserRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role, status, createdAtStr string
	var defProject, defTask sql.NullString

	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &status, &defProject, &defTask, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, storeErr("scanning user", err)
	}

	u.Role = domain.UserRole(role)
	u.Status = domain.UserStatus(status)
	u.DefaultProject = stringOrNil(defProject)
	u.DefaultTask = stringOrNil(defTask)
	u.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &u, nil
}

func (r *SQLiteUserRepo) scanUsers(rows *sql.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		var u domain.User
		var role, status, createdAtStr string
		var defProject, defTask sql.NullString

		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &role, &status, &defProject, &defTask, &createdAtStr); err != nil {
			return nil, storeErr("scanning user row", err)
		}

		u.Role = domain.UserRole(role)
		u.Status = domain.UserStatus(status)
		u.DefaultProject = stringOrNil(defProject)
		u.DefaultTask = stringOrNil(defTask)
		var err error
		u.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating users", err)
	}
	return users, nil
}
