// Package sqlite provides a database/sql backed store implementing every
// repository interface of the application layer. It is selected with
// GYMADMIN_STORE=sqlite and defaults to an in-memory database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/gym-admin/internal/persistence"
	_ "modernc.org/sqlite"
)

// DefaultDSN keeps the whole database in process memory. A shared cache is
// required so every pooled connection sees the same schema.
const DefaultDSN = "file:gymadmin?mode=memory&cache=shared"

// Store wraps the database handle shared by the repository types.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn. An empty dsn selects the
// in-memory default.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the schema. Statements are idempotent so Migrate can run on
// every startup.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// withTransaction runs fn inside a transaction, rolling back on error or panic.
func (s *Store) withTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// mapSQLError converts driver errors to the persistence sentinels the
// application layer matches on.
func mapSQLError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", persistence.ErrNotFound, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "NOT NULL constraint failed") {
		return fmt.Errorf("%w: %v", persistence.ErrConstraintViolation, err)
	}
	return err
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS membership_types (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		price          REAL NOT NULL,
		duration_days  INTEGER NOT NULL,
		features       TEXT NOT NULL DEFAULT '[]',
		max_attendance INTEGER,
		is_popular     INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS client_memberships (
		id                 TEXT PRIMARY KEY,
		client_id          TEXT NOT NULL,
		membership_type_id TEXT NOT NULL,
		membership_name    TEXT NOT NULL,
		start_date         TEXT NOT NULL,
		end_date           TEXT NOT NULL,
		status             TEXT NOT NULL,
		attendance_count   INTEGER NOT NULL DEFAULT 0,
		max_attendance     INTEGER,
		freeze_history     TEXT NOT NULL DEFAULT '[]',
		prolong_history    TEXT NOT NULL DEFAULT '[]',
		notes              TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id                   TEXT PRIMARY KEY,
		client_membership_id TEXT NOT NULL REFERENCES client_memberships(id),
		date                 TEXT NOT NULL,
		check_in_time        TEXT NOT NULL,
		check_out_time       TEXT,
		facility             TEXT NOT NULL,
		notes                TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_membership
		ON attendance_records(client_membership_id)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		client     TEXT NOT NULL,
		trainer    TEXT,
		court      TEXT NOT NULL,
		status     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS staff_members (
		id             TEXT PRIMARY KEY,
		kind           TEXT NOT NULL,
		name           TEXT NOT NULL,
		specialization TEXT NOT NULL DEFAULT '',
		availability   TEXT NOT NULL DEFAULT '[]',
		status         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courts (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		type     TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		status   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		email        TEXT NOT NULL UNIQUE,
		category     TEXT NOT NULL,
		role         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		last_active  TEXT NOT NULL DEFAULT '',
		subscription TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		permissions TEXT NOT NULL DEFAULT '[]',
		users_count INTEGER NOT NULL DEFAULT 0,
		protected   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS permissions (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		module      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS data_protection_items (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL,
		last_audit  TEXT,
		due_date    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS system_status_items (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		last_checked TEXT NOT NULL DEFAULT '',
		uptime       TEXT NOT NULL DEFAULT '',
		details      TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS action_logs (
		id         TEXT PRIMARY KEY,
		actor_id    TEXT NOT NULL,
		actor_name  TEXT NOT NULL,
		actor_email TEXT NOT NULL DEFAULT '',
		actor_role  TEXT NOT NULL,
		action     TEXT NOT NULL,
		timestamp  TEXT NOT NULL,
		ip_address TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL,
		details    TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS news_items (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		body         TEXT NOT NULL,
		body_html    TEXT NOT NULL DEFAULT '',
		publish_date TEXT,
		published    INTEGER NOT NULL DEFAULT 0,
		language     TEXT NOT NULL,
		slug         TEXT NOT NULL,
		author       TEXT NOT NULL DEFAULT '',
		categories   TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS tournaments (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL,
		description          TEXT NOT NULL DEFAULT '',
		start_date           TEXT NOT NULL,
		end_date             TEXT NOT NULL,
		status               TEXT NOT NULL,
		location             TEXT NOT NULL DEFAULT '',
		registration_url     TEXT NOT NULL DEFAULT '',
		language             TEXT NOT NULL DEFAULT '',
		max_participants     INTEGER,
		current_participants INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS media_items (
		id            TEXT PRIMARY KEY,
		type          TEXT NOT NULL,
		url           TEXT NOT NULL,
		title         TEXT NOT NULL,
		description   TEXT,
		thumbnail     TEXT,
		date_uploaded TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		message       TEXT NOT NULL,
		audience      TEXT NOT NULL,
		custom_groups TEXT NOT NULL DEFAULT '[]',
		scheduled_for TEXT,
		sent_at       TEXT NOT NULL,
		language      TEXT NOT NULL DEFAULT ''
	)`,
}
