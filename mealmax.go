// Package mealmax opens the MealMax meal store.
//
// It wires configuration, the database provider, logging and metrics into a
// ready-to-use store:
//
//	cfg, err := mealmax.LoadConfig()
//	...
//	store, err := mealmax.Open(ctx, cfg, mealmax.Options{Registerer: prometheus.DefaultRegisterer})
//	...
//	defer store.Close()
//	meal, err := store.Create(ctx, "Manti", "Turkish", 12.99, mealmax.DifficultyMed)
package mealmax

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/mealmax/internal/config"
	"github.com/mmynk/mealmax/internal/kitchen"
	"github.com/mmynk/mealmax/internal/metrics"
	"github.com/mmynk/mealmax/internal/models"
	"github.com/mmynk/mealmax/internal/storage"
	"github.com/mmynk/mealmax/internal/storage/postgres"
	"github.com/mmynk/mealmax/internal/storage/sqlite"
	"github.com/mmynk/mealmax/pkg/logging"
)

type (
	Meal             = models.Meal
	Difficulty       = models.Difficulty
	Outcome          = models.Outcome
	SortBy           = models.SortBy
	LeaderboardEntry = models.LeaderboardEntry
	Store            = storage.MealStore
	Config           = config.Config
)

const (
	DifficultyLow  = models.DifficultyLow
	DifficultyMed  = models.DifficultyMed
	DifficultyHigh = models.DifficultyHigh

	OutcomeWin  = models.OutcomeWin
	OutcomeLoss = models.OutcomeLoss

	SortByWins   = models.SortByWins
	SortByWinPct = models.SortByWinPct
)

var (
	ErrValidation     = storage.ErrValidation
	ErrDuplicate      = storage.ErrDuplicate
	ErrNotFound       = storage.ErrNotFound
	ErrDeleted        = storage.ErrDeleted
	ErrAlreadyDeleted = storage.ErrAlreadyDeleted
	ErrStore          = storage.ErrStore
)

// LoadConfig reads configuration from MEALMAX_* environment variables.
func LoadConfig() (*Config, error) {
	return config.Load()
}

// Options are the optional collaborators of Open.
type Options struct {
	// Logger receives the store's records. Defaults to a tint logger on
	// stderr at the configured level.
	Logger *slog.Logger

	// Registerer, when set, receives the store's Prometheus collectors.
	Registerer prometheus.Registerer
}

// Kitchen is an open meal store. Close releases its database.
type Kitchen struct {
	*kitchen.Kitchen
	db io.Closer
}

// Close closes the underlying database.
func (k *Kitchen) Close() error {
	return k.db.Close()
}

type provider interface {
	storage.Provider
	io.Closer
}

// Open connects to the configured database and returns a meal store.
// A nil cfg means config defaults.
func Open(ctx context.Context, cfg *Config, opts Options) (*Kitchen, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level))
	}

	db, err := openProvider(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
		return nil, err
	}

	var kopts []kitchen.Option
	if opts.Registerer != nil {
		recorder, err := metrics.New(opts.Registerer)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		kopts = append(kopts, kitchen.WithMetrics(recorder))
	}

	logger.Info("Storage initialized", "driver", cfg.Database.Driver)
	return &Kitchen{
		Kitchen: kitchen.New(db, logger, kopts...),
		db:      db,
	}, nil
}

func openProvider(ctx context.Context, cfg config.DatabaseConfig) (provider, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.URL, postgres.Options{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
