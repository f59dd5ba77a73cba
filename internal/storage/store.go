// Package storage provides abstractions for persistent meal storage.
package storage

import (
	"context"
	"database/sql"

	"github.com/mmynk/mealmax/internal/models"
)

// MealStore defines the meal persistence operations.
// This abstraction keeps callers (an HTTP layer, a battle engine) independent
// of the database engine behind the store.
type MealStore interface {
	// Create validates and persists a new meal with zeroed battle statistics.
	// Returns ErrValidation for bad attributes and ErrDuplicate when the name is taken.
	Create(ctx context.Context, name, cuisine string, price float64, difficulty models.Difficulty) (*models.Meal, error)

	// Delete soft-deletes a meal.
	// Returns ErrNotFound if the meal never existed and ErrAlreadyDeleted if it is already gone.
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a live meal by ID.
	// Returns ErrNotFound or ErrDeleted when there is no live meal with that ID.
	GetByID(ctx context.Context, id int64) (*models.Meal, error)

	// GetByName retrieves a live meal by name.
	// Returns ErrNotFound or ErrDeleted when there is no live meal with that name.
	GetByName(ctx context.Context, name string) (*models.Meal, error)

	// UpdateStats records a battle outcome for a live meal.
	UpdateStats(ctx context.Context, id int64, outcome models.Outcome) error

	// Leaderboard ranks every live meal that has fought at least one battle.
	Leaderboard(ctx context.Context, sortBy models.SortBy) ([]models.LeaderboardEntry, error)
}

// Provider hands out database connections scoped to a single store operation.
// Callers must Close the returned connection; the store does so on every exit path.
type Provider interface {
	Acquire(ctx context.Context) (*sql.Conn, error)
	Dialect() Dialect
}

// Dialect carries the engine-specific parts of talking to a database.
type Dialect interface {
	// Name identifies the engine (e.g., "sqlite", "postgres").
	Name() string

	// Rebind rewrites '?' placeholders into the engine's parameter syntax.
	Rebind(query string) string

	// IsUniqueViolation reports whether err is the driver's unique-constraint error.
	IsUniqueViolation(err error) bool
}
