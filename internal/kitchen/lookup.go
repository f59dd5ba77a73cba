package kitchen

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mmynk/mealmax/internal/models"
)

// lookup is the outcome of checking whether a meal row exists and is live.
type lookup int

const (
	lookupNotFound lookup = iota
	lookupFound
	lookupDeleted
)

// lookupDeletedFlag reads only the deleted flag of the meal with the given ID.
func (k *Kitchen) lookupDeletedFlag(ctx context.Context, conn *sql.Conn, id int64) (lookup, error) {
	var deleted bool
	err := conn.QueryRowContext(ctx, k.q.lookupByID, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return lookupNotFound, nil
	}
	if err != nil {
		return lookupNotFound, err
	}
	if deleted {
		return lookupDeleted, nil
	}
	return lookupFound, nil
}

// fetchMeal loads a full meal row with one of the select queries.
// The meal is nil unless the result is lookupFound.
func fetchMeal(ctx context.Context, conn *sql.Conn, query string, key any) (*models.Meal, lookup, error) {
	meal := &models.Meal{}
	err := conn.QueryRowContext(ctx, query, key).Scan(
		&meal.ID,
		&meal.Name,
		&meal.Cuisine,
		&meal.Price,
		&meal.Difficulty,
		&meal.Deleted,
		&meal.Battles,
		&meal.Wins,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lookupNotFound, nil
	}
	if err != nil {
		return nil, lookupNotFound, err
	}
	if meal.Deleted {
		return nil, lookupDeleted, nil
	}
	return meal, lookupFound, nil
}
