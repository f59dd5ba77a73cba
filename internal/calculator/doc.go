// Package calculator holds the battle arithmetic behind the leaderboard.
package calculator
