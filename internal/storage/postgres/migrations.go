package postgres

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS meals (
    id BIGSERIAL PRIMARY KEY,
    meal TEXT NOT NULL UNIQUE,
    cuisine TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL CHECK (price > 0),
    difficulty TEXT NOT NULL CHECK (difficulty IN ('LOW', 'MED', 'HIGH')),
    deleted BOOLEAN NOT NULL DEFAULT FALSE,
    battles INTEGER NOT NULL DEFAULT 0 CHECK (battles >= 0),
    wins INTEGER NOT NULL DEFAULT 0 CHECK (wins >= 0 AND wins <= battles)
);

CREATE INDEX IF NOT EXISTS idx_meals_leaderboard ON meals(deleted, battles);
`

func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
