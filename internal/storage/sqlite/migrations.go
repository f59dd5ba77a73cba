package sqlite

import "database/sql"

// schema sets up the meals table. It runs on open to ensure the table exists.
const schema = `
CREATE TABLE IF NOT EXISTS meals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    meal TEXT NOT NULL UNIQUE,
    cuisine TEXT NOT NULL,
    price REAL NOT NULL CHECK (price > 0),
    difficulty TEXT NOT NULL CHECK (difficulty IN ('LOW', 'MED', 'HIGH')),
    deleted BOOLEAN NOT NULL DEFAULT FALSE,
    battles INTEGER NOT NULL DEFAULT 0 CHECK (battles >= 0),
    wins INTEGER NOT NULL DEFAULT 0 CHECK (wins >= 0 AND wins <= battles)
);

CREATE INDEX IF NOT EXISTS idx_meals_leaderboard ON meals(deleted, battles);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
