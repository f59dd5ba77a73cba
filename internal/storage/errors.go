package storage

import (
	"errors"
	"fmt"

	"github.com/mmynk/mealmax/internal/models"
)

// Meal store errors. Every error returned by a MealStore wraps exactly one of these.
var (
	// ErrValidation is returned for bad input, before the database is contacted
	// (except for UpdateStats, which looks the meal up first).
	ErrValidation = models.ErrValidation

	// ErrDuplicate is returned when a meal name is already taken.
	ErrDuplicate = errors.New("meal already exists")

	// ErrNotFound is returned when no meal has the given key.
	ErrNotFound = errors.New("meal not found")

	// ErrDeleted is returned when the meal exists but has been soft-deleted.
	ErrDeleted = errors.New("meal has been deleted")

	// ErrAlreadyDeleted is returned by Delete for a meal that is already deleted.
	// It wraps ErrDeleted.
	ErrAlreadyDeleted = fmt.Errorf("%w already", ErrDeleted)

	// ErrStore wraps any other database fault. The driver error stays in the chain.
	ErrStore = errors.New("store error")
)

// StoreError wraps a database fault so it matches ErrStore while keeping the
// driver error reachable through errors.As.
func StoreError(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrStore, action, err)
}

// Kind returns a short, stable label for the error's category, or "ok" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyDeleted):
		return "already_deleted"
	case errors.Is(err, ErrDeleted):
		return "deleted"
	default:
		return "store"
	}
}
