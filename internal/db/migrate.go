package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Statements are
// idempotent (CREATE ... IF NOT EXISTS) and re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		email           TEXT NOT NULL UNIQUE,
		name            TEXT NOT NULL,
		role            TEXT NOT NULL CHECK(role IN ('admin','employee')),
		status          TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active','inactive')),
		default_project TEXT,
		default_task    TEXT,
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_by  TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		status      TEXT NOT NULL DEFAULT 'active',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS timer_sessions (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		project_id     TEXT NOT NULL REFERENCES projects(id),
		task_id        TEXT NOT NULL REFERENCES tasks(id),
		start_time     TEXT NOT NULL,
		last_heartbeat TEXT NOT NULL,
		is_active      INTEGER NOT NULL DEFAULT 1,
		date           TEXT NOT NULL
	)`,

	// The authoritative "one active timer per user" constraint. Concurrent
	// starts race on this index; exactly one insert wins.
	`CREATE UNIQUE INDEX IF NOT EXISTS timer_sessions_one_active
		ON timer_sessions(user_id) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE RESTRICT,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE RESTRICT,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		duration   INTEGER NOT NULL CHECK(duration >= 0),
		entry_type TEXT NOT NULL CHECK(entry_type IN ('timer','manual')),
		date       TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS time_entries_user_date ON time_entries(user_id, date)`,
	`CREATE INDEX IF NOT EXISTS time_entries_date ON time_entries(date)`,

	`CREATE TABLE IF NOT EXISTS timesheets (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		week_start    TEXT NOT NULL,
		week_end      TEXT NOT NULL,
		total_hours   REAL NOT NULL DEFAULT 0,
		status        TEXT NOT NULL DEFAULT 'draft'
		              CHECK(status IN ('draft','submitted','approved','denied')),
		submitted_at  TEXT,
		reviewed_at   TEXT,
		reviewed_by   TEXT,
		admin_comment TEXT,
		created_at    TEXT NOT NULL,
		UNIQUE(user_id, week_start)
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type                 TEXT NOT NULL
		                     CHECK(type IN ('timesheet_submitted','timesheet_approved','timesheet_denied')),
		title                TEXT NOT NULL,
		message              TEXT NOT NULL,
		read                 INTEGER NOT NULL DEFAULT 0,
		related_timesheet_id TEXT REFERENCES timesheets(id) ON DELETE SET NULL,
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS notifications_user_read ON notifications(user_id, read)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
