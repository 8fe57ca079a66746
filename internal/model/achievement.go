package model

import "time"

// UserAchievement records one earned badge. At most one row exists per
// (user, code) pair, enforced by a uniqueness constraint.
type UserAchievement struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	Code     string    `json:"code"`
	EarnedAt time.Time `json:"earned_at"`
}
