package model

import "time"

// User carries the progression state alongside the account fields:
// coins only ever go up, longest_streak is a monotonic max of
// current_streak, and last_cleaned_at covers any item in any group.
type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	TotalCoins    int        `json:"total_coins"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastCleanedAt *time.Time `json:"last_cleaned_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
