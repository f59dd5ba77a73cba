package models

// Outcome is the result of a single battle from one meal's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// SortBy selects the metric a leaderboard is ranked by.
type SortBy string

const (
	SortByWins   SortBy = "wins"
	SortByWinPct SortBy = "win_pct"
)

// Valid reports whether s is a supported leaderboard metric.
func (s SortBy) Valid() bool {
	return s == SortByWins || s == SortByWinPct
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	ID         int64
	Name       string
	Cuisine    string
	Price      float64
	Difficulty Difficulty
	Battles    int
	Wins       int

	// WinPct is wins/battles as a percentage rounded to one decimal (0.8 -> 80.0).
	WinPct float64
}
