package kitchen

import (
	"github.com/mmynk/mealmax/internal/models"
	"github.com/mmynk/mealmax/internal/storage"
)

const mealColumns = "id, meal, cuisine, price, difficulty, deleted, battles, wins"

// queries holds every statement the store issues, already rebound for the dialect.
type queries struct {
	insert       string
	lookupByID   string
	selectByID   string
	selectByName string
	softDelete   string
	recordWin    string
	recordLoss   string
	leaderboard  map[models.SortBy]string
}

func newQueries(d storage.Dialect) queries {
	const board = `
		SELECT id, meal, cuisine, price, difficulty, battles, wins
		FROM meals
		WHERE deleted = FALSE AND battles > 0`

	return queries{
		insert: d.Rebind(`
			INSERT INTO meals (meal, cuisine, price, difficulty)
			VALUES (?, ?, ?, ?)
			RETURNING id`),
		lookupByID:   d.Rebind("SELECT deleted FROM meals WHERE id = ?"),
		selectByID:   d.Rebind("SELECT " + mealColumns + " FROM meals WHERE id = ?"),
		selectByName: d.Rebind("SELECT " + mealColumns + " FROM meals WHERE meal = ?"),
		softDelete:   d.Rebind("UPDATE meals SET deleted = TRUE WHERE id = ? AND deleted = FALSE"),
		recordWin:    d.Rebind("UPDATE meals SET battles = battles + 1, wins = wins + 1 WHERE id = ? AND deleted = FALSE"),
		recordLoss:   d.Rebind("UPDATE meals SET battles = battles + 1 WHERE id = ? AND deleted = FALSE"),
		leaderboard: map[models.SortBy]string{
			models.SortByWins:   board + " ORDER BY wins DESC, id ASC",
			models.SortByWinPct: board + " ORDER BY CAST(wins AS DOUBLE PRECISION) / battles DESC, id ASC",
		},
	}
}
