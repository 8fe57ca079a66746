package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/squeakyapp/squeaky/internal/achievement"
	"github.com/squeakyapp/squeaky/internal/model"
)

type AchievementStore struct {
	db *sql.DB
}

func NewAchievementStore(db *sql.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

// Has reports whether the user already holds the achievement.
func (s *AchievementStore) Has(userID int64, code achievement.Code) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_achievements WHERE user_id = ? AND achievement_code = ?`,
		userID, string(code),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("has achievement: %w", err)
	}
	return n > 0, nil
}

// Award inserts the badge if absent. The (user_id, achievement_code)
// uniqueness constraint is the concurrency guard: a losing concurrent
// insert becomes a no-op and Award reports false.
func (s *AchievementStore) Award(userID int64, code achievement.Code, earnedAt time.Time) (bool, error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO user_achievements (user_id, achievement_code, earned_at) VALUES (?, ?, ?)`,
		userID, string(code), earnedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("award achievement: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// ListByUser returns the user's earned badges, oldest first.
func (s *AchievementStore) ListByUser(userID int64) ([]model.UserAchievement, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, achievement_code, earned_at FROM user_achievements WHERE user_id = ? ORDER BY earned_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var awards []model.UserAchievement
	for rows.Next() {
		var a model.UserAchievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Code, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

var _ achievement.AwardStore = (*AchievementStore)(nil)
