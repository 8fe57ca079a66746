package model

import "time"

// CleaningLog is an append-only record of one cleaning event. It is never
// updated; the achievement engine and statistics scan these rows.
type CleaningLog struct {
	ID               int64     `json:"id"`
	ItemID           int64     `json:"item_id"`
	UserID           int64     `json:"user_id"`
	GroupID          int64     `json:"group_id"`
	DirtinessAtClean float64   `json:"dirtiness_at_clean"`
	CoinsEarned      int       `json:"coins_earned"`
	Notes            string    `json:"notes"`
	CleanedAt        time.Time `json:"cleaned_at"`
}

// LeaderboardEntry is a per-user coin total within one group.
type LeaderboardEntry struct {
	UserID     int64  `json:"user_id"`
	UserName   string `json:"user_name"`
	TotalCoins int    `json:"total_coins"`
	Cleanings  int    `json:"cleanings"`
}

// ActivityEntry is a cleaning log joined with display names for the
// group recent-activity feed.
type ActivityEntry struct {
	CleaningLog
	ItemName string `json:"item_name"`
	UserName string `json:"user_name"`
}
