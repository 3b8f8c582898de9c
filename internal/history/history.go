// Package history keeps an audit trail of applied stamp modifications in a
// SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Database schema version
const SchemaVersion = 1

// Stamp is one recorded modification.
type Stamp struct {
	ID        int64
	File      string
	Namespace string
	Variable  string
	OldValue  string
	NewValue  string
	AppliedAt int64
}

// DB wraps the SQLite connection holding the stamp history.
type DB struct {
	Conn *sql.DB
}

// NewDB initializes a new SQLite database connection, creates tables if
// they don't exist, and returns a DB struct with the connection.
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db := &DB{Conn: conn}
	if err := db.setup(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	return db, nil
}

// NewReadonlyDB opens the history database in read-only mode with the given
// busy timeout.
func NewReadonlyDB(dbPath string, timeoutMs int) (*DB, error) {
	connStr := fmt.Sprintf("file:%s?mode=ro&_timeout=%d", dbPath, timeoutMs)
	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database in read-only mode: %w", err)
	}

	db := &DB{Conn: conn}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database in read-only mode: %w", err)
	}

	return db, nil
}

// setup creates tables if they don't exist and records the schema version.
func (db *DB) setup() error {
	tx, err := db.Conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createStampsTable := `
	CREATE TABLE IF NOT EXISTS stamps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file TEXT NOT NULL,
		namespace TEXT NOT NULL,
		variable TEXT NOT NULL,
		old_value TEXT NOT NULL,
		new_value TEXT NOT NULL,
		applied_at INTEGER NOT NULL
	);
	`
	if _, err := tx.Exec(createStampsTable); err != nil {
		return fmt.Errorf("failed to create stamps table: %w", err)
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RecordStamps inserts one row per stamp in a single transaction. A zero
// AppliedAt is filled with the current time.
func (db *DB) RecordStamps(stamps []Stamp) error {
	tx, err := db.Conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertStampSQL := `
		INSERT INTO stamps (file, namespace, variable, old_value, new_value, applied_at)
		VALUES (?, ?, ?, ?, ?, ?);
	`
	for _, s := range stamps {
		appliedAt := s.AppliedAt
		if appliedAt == 0 {
			appliedAt = time.Now().Unix()
		}
		if _, err := tx.Exec(insertStampSQL, s.File, s.Namespace, s.Variable, s.OldValue, s.NewValue, appliedAt); err != nil {
			return fmt.Errorf("failed to record stamp for %s: %w", s.Variable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListStamps returns recorded stamps, newest first. A non-positive limit
// returns everything.
func (db *DB) ListStamps(limit int) ([]Stamp, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, file, namespace, variable, old_value, new_value, applied_at
		FROM stamps
		ORDER BY id DESC
		LIMIT ?;
	`
	rows, err := db.Conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stamps: %w", err)
	}
	defer rows.Close()

	var stamps []Stamp
	for rows.Next() {
		var s Stamp
		if err := rows.Scan(&s.ID, &s.File, &s.Namespace, &s.Variable, &s.OldValue, &s.NewValue, &s.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stamp: %w", err)
		}
		stamps = append(stamps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stamps: %w", err)
	}

	return stamps, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.Conn.Close()
}
