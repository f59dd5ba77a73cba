package calculator

import (
	"fmt"
	"math"
)

// WinPct computes a meal's win percentage rounded to one decimal place.
// Based on: win_pct = round(wins / battles × 100, 1), exact halves rounded to even.
func WinPct(wins, battles int) (float64, error) {
	if battles <= 0 {
		return 0, fmt.Errorf("battles must be positive, got %d", battles)
	}
	if wins < 0 || wins > battles {
		return 0, fmt.Errorf("wins must be between 0 and %d, got %d", battles, wins)
	}

	pct := float64(wins) / float64(battles) * 100
	return math.RoundToEven(pct*10) / 10, nil
}
