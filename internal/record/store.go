package record

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the SQLite file holding the normalized budget records.
// The engine treats it as read-only; only the ingestion batch (and test
// fixtures) write to it.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens an existing record store for reading.
//
// The database is configured with:
//   - query_only mode (the engine never writes)
//   - 5-second busy timeout for lock contention
//
// A missing or unreadable file is a DataSourceUnavailable condition and is
// reported as an UnavailableError.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &UnavailableError{Path: path, Err: err}
	}

	// Single reader connection; the load is one sequential scan.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, &UnavailableError{Path: path, Err: fmt.Errorf("execute %q: %w", pragma, err)}
		}
	}

	return &Store{db: db, path: path}, nil
}

// Create creates a record store with the schema applied, for the ingestion
// batch and for test fixtures. Idempotent: the schema uses IF NOT EXISTS.
func Create(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB. Used by the ingestion batch and fixtures;
// engine code goes through Load.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
