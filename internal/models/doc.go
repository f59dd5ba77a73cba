// Package models defines the core domain models for MealMax.
//
// # Models
//
//   - Meal: a menu item that competes in battles
//   - LeaderboardEntry: a meal's aggregate battle statistics, ready for ranking display
//   - Difficulty, Outcome, SortBy: the closed value sets the store accepts
//
// Meals are never physically removed. Deletion flips the Deleted flag and the
// record stays in storage, which is why lookups distinguish "never existed"
// from "was removed".
package models
