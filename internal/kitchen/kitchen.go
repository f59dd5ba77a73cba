// Package kitchen implements the meal store: validation, CRUD with soft
// deletion, battle statistics and the leaderboard.
//
// Every operation acquires one connection from the storage.Provider and
// releases it before returning, whatever the outcome.
package kitchen

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/mealmax/internal/calculator"
	"github.com/mmynk/mealmax/internal/metrics"
	"github.com/mmynk/mealmax/internal/models"
	"github.com/mmynk/mealmax/internal/storage"
	"github.com/mmynk/mealmax/pkg/logging"
)

// Ensure Kitchen implements storage.MealStore
var _ storage.MealStore = (*Kitchen)(nil)

// Kitchen is the meal store.
type Kitchen struct {
	provider storage.Provider
	dialect  storage.Dialect
	q        queries
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// Option configures a Kitchen.
type Option func(*Kitchen)

// WithMetrics records every operation on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(k *Kitchen) {
		k.metrics = r
	}
}

// New creates a meal store on top of provider.
// A nil logger discards all records.
func New(provider storage.Provider, logger *slog.Logger, opts ...Option) *Kitchen {
	if logger == nil {
		logger = logging.Discard()
	}

	dialect := provider.Dialect()
	k := &Kitchen{
		provider: provider,
		dialect:  dialect,
		q:        newQueries(dialect),
		logger:   logger.With(slog.String("component", "meal_store")),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Create validates and persists a new meal. Battles and wins start at zero.
func (k *Kitchen) Create(ctx context.Context, name, cuisine string, price float64, difficulty models.Difficulty) (meal *models.Meal, err error) {
	log, done := k.begin("create")
	defer func() { done(err) }()

	meal = &models.Meal{
		Name:       name,
		Cuisine:    cuisine,
		Price:      price,
		Difficulty: difficulty,
	}
	if err := meal.Validate(); err != nil {
		log.Error("Invalid meal", "meal", name, "error", err)
		return nil, err
	}

	conn, err := k.acquire(ctx, log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.QueryRowContext(ctx, k.q.insert, name, cuisine, price, string(difficulty)).Scan(&meal.ID)
	if k.dialect.IsUniqueViolation(err) {
		log.Error("Duplicate meal name", "meal", name)
		return nil, fmt.Errorf("%w: meal with name %q", storage.ErrDuplicate, name)
	}
	if err != nil {
		log.Error("Failed to insert meal", "meal", name, "error", err)
		return nil, storage.StoreError("insert meal", err)
	}

	log.Info("Meal created", "meal", name, "meal_id", meal.ID)
	return meal, nil
}

// Delete soft-deletes the meal with the given ID.
func (k *Kitchen) Delete(ctx context.Context, id int64) (err error) {
	log, done := k.begin("delete")
	defer func() { done(err) }()

	conn, err := k.acquire(ctx, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	state, err := k.lookupDeletedFlag(ctx, conn, id)
	if err != nil {
		log.Error("Failed to look up meal", "meal_id", id, "error", err)
		return storage.StoreError("look up meal", err)
	}
	switch state {
	case lookupNotFound:
		log.Info("Meal not found", "meal_id", id)
		return fmt.Errorf("%w: meal with ID %d", storage.ErrNotFound, id)
	case lookupDeleted:
		log.Info("Meal already deleted", "meal_id", id)
		return fmt.Errorf("%w: meal with ID %d", storage.ErrAlreadyDeleted, id)
	}

	n, err := k.exec(ctx, conn, k.q.softDelete, id)
	if err != nil {
		log.Error("Failed to delete meal", "meal_id", id, "error", err)
		return storage.StoreError("delete meal", err)
	}
	if n == 0 {
		// Someone else deleted it between the lookup and the update.
		log.Info("Meal already deleted", "meal_id", id, "concurrent", true)
		return fmt.Errorf("%w: meal with ID %d", storage.ErrAlreadyDeleted, id)
	}

	log.Info("Meal marked as deleted", "meal_id", id)
	return nil
}

// GetByID returns the live meal with the given ID.
func (k *Kitchen) GetByID(ctx context.Context, id int64) (*models.Meal, error) {
	return k.get(ctx, "get_by_id", k.q.selectByID, id,
		slog.Int64("meal_id", id), fmt.Sprintf("meal with ID %d", id))
}

// GetByName returns the live meal with the given name.
func (k *Kitchen) GetByName(ctx context.Context, name string) (*models.Meal, error) {
	return k.get(ctx, "get_by_name", k.q.selectByName, name,
		slog.String("meal", name), fmt.Sprintf("meal with name %q", name))
}

func (k *Kitchen) get(ctx context.Context, op, query string, key any, attr slog.Attr, desc string) (meal *models.Meal, err error) {
	log, done := k.begin(op)
	defer func() { done(err) }()

	conn, err := k.acquire(ctx, log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	meal, state, err := fetchMeal(ctx, conn, query, key)
	if err != nil {
		log.Error("Failed to get meal", attr, "error", err)
		return nil, storage.StoreError("get meal", err)
	}
	switch state {
	case lookupNotFound:
		log.Info("Meal not found", attr)
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, desc)
	case lookupDeleted:
		log.Info("Meal has been deleted", attr)
		return nil, fmt.Errorf("%w: %s", storage.ErrDeleted, desc)
	}

	return meal, nil
}

// UpdateStats records a battle outcome: a win adds a battle and a win, a loss
// adds a battle. The meal is looked up before the outcome is checked, so an
// unknown meal reports ErrNotFound even when the outcome is also invalid.
func (k *Kitchen) UpdateStats(ctx context.Context, id int64, outcome models.Outcome) (err error) {
	log, done := k.begin("update_stats")
	defer func() { done(err) }()

	conn, err := k.acquire(ctx, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	state, err := k.lookupDeletedFlag(ctx, conn, id)
	if err != nil {
		log.Error("Failed to look up meal", "meal_id", id, "error", err)
		return storage.StoreError("look up meal", err)
	}
	switch state {
	case lookupNotFound:
		log.Info("Meal not found", "meal_id", id)
		return fmt.Errorf("%w: meal with ID %d", storage.ErrNotFound, id)
	case lookupDeleted:
		log.Info("Meal has been deleted", "meal_id", id)
		return fmt.Errorf("%w: meal with ID %d", storage.ErrDeleted, id)
	}

	var query string
	switch outcome {
	case models.OutcomeWin:
		query = k.q.recordWin
	case models.OutcomeLoss:
		query = k.q.recordLoss
	default:
		log.Error("Invalid result", "meal_id", id, "result", outcome)
		return fmt.Errorf("%w: invalid result %q: expected 'win' or 'loss'", storage.ErrValidation, outcome)
	}

	n, err := k.exec(ctx, conn, query, id)
	if err != nil {
		log.Error("Failed to update meal stats", "meal_id", id, "error", err)
		return storage.StoreError("update meal stats", err)
	}
	if n == 0 {
		log.Info("Meal has been deleted", "meal_id", id, "concurrent", true)
		return fmt.Errorf("%w: meal with ID %d", storage.ErrDeleted, id)
	}

	log.Info("Meal stats updated", "meal_id", id, "result", outcome)
	return nil
}

// Leaderboard ranks live meals with at least one battle, best first.
// Ties keep insertion order.
func (k *Kitchen) Leaderboard(ctx context.Context, sortBy models.SortBy) (entries []models.LeaderboardEntry, err error) {
	log, done := k.begin("leaderboard")
	defer func() { done(err) }()

	query, ok := k.q.leaderboard[sortBy]
	if !ok {
		log.Error("Invalid sort_by parameter", "sort_by", sortBy)
		return nil, fmt.Errorf("%w: invalid sort_by parameter %q", storage.ErrValidation, sortBy)
	}

	conn, err := k.acquire(ctx, log)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		log.Error("Failed to query leaderboard", "error", err)
		return nil, storage.StoreError("query leaderboard", err)
	}
	defer rows.Close()

	entries = []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Cuisine, &e.Price, &e.Difficulty, &e.Battles, &e.Wins); err != nil {
			log.Error("Failed to scan leaderboard entry", "error", err)
			return nil, storage.StoreError("scan leaderboard entry", err)
		}
		if e.WinPct, err = calculator.WinPct(e.Wins, e.Battles); err != nil {
			log.Error("Invalid battle record", "meal_id", e.ID, "error", err)
			return nil, storage.StoreError("compute win percentage", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Error("Failed to iterate leaderboard", "error", err)
		return nil, storage.StoreError("iterate leaderboard", err)
	}

	log.Info("Leaderboard retrieved", "sort_by", sortBy, "count", len(entries))
	return entries, nil
}

// begin tags a logger for one operation and returns the func that records
// its outcome once it finishes.
func (k *Kitchen) begin(op string) (*slog.Logger, func(error)) {
	start := time.Now()
	log := k.logger.With(slog.String("op", op), slog.String("op_id", uuid.NewString()))
	return log, func(err error) {
		k.metrics.Observe(op, err, time.Since(start))
	}
}

func (k *Kitchen) acquire(ctx context.Context, log *slog.Logger) (*sql.Conn, error) {
	conn, err := k.provider.Acquire(ctx)
	if err != nil {
		log.Error("Failed to acquire connection", "error", err)
		return nil, storage.StoreError("acquire connection", err)
	}
	return conn, nil
}

// exec runs a write and reports how many rows it touched.
func (k *Kitchen) exec(ctx context.Context, conn *sql.Conn, query string, args ...any) (int64, error) {
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
