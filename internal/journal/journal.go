// Package journal provides a SQLite-backed journal of checker invocations.
//
// The journal is observability, not state: nothing reads it to make
// decisions, and deleting it loses nothing but history. It records one row
// per trace or exploration request — including requests answered entirely
// from the cache, which are flagged rather than omitted so cache
// effectiveness can be read straight from the table.
//
// The database is configured with WAL mode for concurrent read access and
// a single writer connection.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - pre-versioning
// 1 - initial schema
const currentSchemaVersion = 1

// Entry is one journal row.
type Entry struct {
	ID         string
	Checker    string
	SpecPath   string
	ConfigPath string
	CacheKey   string
	ExitCode   int
	Duration   time.Duration
	CacheHit   bool
}

// Journal records checker invocations durably.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path, applying pragmas and
// the schema. Idempotent.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent recording.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record inserts one entry. A nil Journal is a no-op so callers can thread
// an optional journal without nil checks. The entry ID is assigned here.
func (j *Journal) Record(e Entry) error {
	if j == nil {
		return nil
	}
	e.ID = uuid.Must(uuid.NewV7()).String()
	_, err := j.db.Exec(`
		INSERT INTO invocations
			(id, checker, spec_path, config_path, cache_key, exit_code, duration_ms, cache_hit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Checker, e.SpecPath, e.ConfigPath, e.CacheKey,
		e.ExitCode, e.Duration.Milliseconds(), e.CacheHit,
	)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first. Ordering uses the UUIDv7
// id, which is time-ordered by construction.
func (j *Journal) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, checker, spec_path, config_path, cache_key, exit_code, duration_ms, cache_hit
		FROM invocations
		ORDER BY id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			durationMS int64
		)
		if err := rows.Scan(
			&e.ID, &e.Checker, &e.SpecPath, &e.ConfigPath, &e.CacheKey,
			&e.ExitCode, &durationMS, &e.CacheHit,
		); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply journal schema: %w", err)
	}
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
