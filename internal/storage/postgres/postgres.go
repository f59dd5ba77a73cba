// Package postgres provides a PostgreSQL-backed storage.Provider using pgx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/mmynk/mealmax/internal/storage"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

// Ensure DB implements storage.Provider
var _ storage.Provider = (*DB)(nil)

// Options tunes the connection handle. Zero values keep database/sql defaults.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB is a PostgreSQL database reached through the pgx driver.
type DB struct {
	db *sql.DB
}

// New connects to the database at dsn, verifies the connection and ensures
// the meals table exists.
func New(ctx context.Context, dsn string, opts Options) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{db: db}, nil
}

// Acquire returns a connection for one store operation.
func (d *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	return d.db.Conn(ctx)
}

// Dialect returns the PostgreSQL dialect.
func (d *DB) Dialect() storage.Dialect {
	return Dialect{}
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Dialect implements storage.Dialect for PostgreSQL.
type Dialect struct{}

// Name returns "postgres".
func (Dialect) Name() string { return "postgres" }

// Rebind turns each '?' into the next positional parameter ($1, $2, ...).
// It does not parse SQL: a '?' inside a quoted literal or identifier is
// rewritten too, so queries must not contain one.
func (Dialect) Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func (Dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
