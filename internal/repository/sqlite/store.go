// Package sqlite implements the repositories on an embedded SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/database"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const currentVersion = 1

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339Nano
)

// Open opens the database at path and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	db, err := database.NewSQLiteDB(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// NewMemory opens a migrated in-memory database for tests.
func NewMemory() (*sql.DB, error) {
	return Open(":memory:")
}

// Migrate applies the schema versions newer than PRAGMA user_version.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if _, err := db.Exec(schemaV1); err != nil {
			return fmt.Errorf("apply schema v1: %w", err)
		}
	}

	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS employees (
	id          TEXT PRIMARY KEY,
	full_name   TEXT NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attendances (
	id              TEXT PRIMARY KEY,
	employee_id     TEXT NOT NULL REFERENCES employees(id),
	date            TEXT NOT NULL,
	clock_in        INTEGER,
	clock_out       INTEGER,
	break_duration  INTEGER,
	worked_hours    TEXT NOT NULL DEFAULT '0',
	overtime_hours  TEXT NOT NULL DEFAULT '0',
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL,
	UNIQUE(employee_id, date)
);

CREATE INDEX IF NOT EXISTS idx_attendances_date ON attendances(date);

CREATE TABLE IF NOT EXISTS leave_requests (
	id                TEXT PRIMARY KEY,
	employee_id       TEXT NOT NULL REFERENCES employees(id),
	leave_type        TEXT NOT NULL,
	start_date        TEXT NOT NULL,
	end_date          TEXT NOT NULL,
	days_requested    INTEGER NOT NULL,
	reason            TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'pending',
	manager_comments  TEXT,
	reviewed_at       TEXT,
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL,
	CHECK (start_date <= end_date)
);

CREATE INDEX IF NOT EXISTS idx_leave_requests_employee ON leave_requests(employee_id);
CREATE INDEX IF NOT EXISTS idx_leave_requests_status   ON leave_requests(status);
`

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func durationValue(d *time.Duration) interface{} {
	if d == nil {
		return nil
	}
	return int64(*d)
}

func durationPtr(v sql.NullInt64) *time.Duration {
	if !v.Valid {
		return nil
	}
	d := time.Duration(v.Int64)
	return &d
}
