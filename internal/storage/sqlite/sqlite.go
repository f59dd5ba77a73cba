// Package sqlite provides a SQLite-backed storage.Provider.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/mealmax/internal/storage"
)

// Ensure DB implements storage.Provider
var _ storage.Provider = (*DB)(nil)

// DB is a SQLite database that hands out one connection at a time.
type DB struct {
	db *sql.DB
}

// New opens the SQLite database at dbPath.
// It creates the parent directories and ensures the meals table exists.
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers anyway; a single connection also keeps
	// ":memory:" databases alive across operations.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{db: db}, nil
}

// Acquire returns a connection for one store operation.
func (d *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	return d.db.Conn(ctx)
}

// Dialect returns the SQLite dialect.
func (d *DB) Dialect() storage.Dialect {
	return Dialect{}
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Dialect implements storage.Dialect for SQLite.
type Dialect struct{}

// Name returns "sqlite".
func (Dialect) Name() string { return "sqlite" }

// Rebind returns query unchanged; SQLite understands '?' placeholders.
func (Dialect) Rebind(query string) string { return query }

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func (Dialect) IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
