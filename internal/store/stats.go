package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/squeakyapp/squeaky/internal/achievement"
	"github.com/squeakyapp/squeaky/internal/model"
)

// ErrUserNotFound is returned by UserStats when the user does not exist.
var ErrUserNotFound = errors.New("user not found")

// StatsStore runs the aggregate queries the achievement engine and the
// group views consume. All counts are recomputed per call.
type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

var _ achievement.StatsSource = (*StatsStore)(nil)

// UserStats assembles a full snapshot of the user's history. Timestamps
// are stored in UTC, so the hour-of-day buckets are UTC hours.
func (s *StatsStore) UserStats(userID int64) (achievement.Stats, error) {
	var stats achievement.Stats

	err := s.db.QueryRow(
		`SELECT total_coins, current_streak FROM users WHERE id = ?`, userID,
	).Scan(&stats.TotalCoins, &stats.CurrentStreak)
	if err == sql.ErrNoRows {
		return stats, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	if err != nil {
		return stats, fmt.Errorf("user progress: %w", err)
	}

	counts := []struct {
		dest  *int
		query string
	}{
		{&stats.TotalCleanings, `SELECT COUNT(*) FROM cleaning_logs WHERE user_id = ?`},
		{&stats.GroupCleanings, `SELECT COUNT(*) FROM cleaning_logs WHERE user_id = ? AND group_id IS NOT NULL`},
		{&stats.DistinctRooms, `SELECT COUNT(DISTINCT ci.parent_id)
			FROM cleaning_logs cl
			JOIN cleaning_items ci ON ci.id = cl.cleaning_item_id
			WHERE cl.user_id = ?`},
		{&stats.PerfectCleans, `SELECT COUNT(*) FROM cleaning_logs WHERE user_id = ? AND dirtiness_at_clean >= 100.0`},
		// The driver stores time.Time as Go's string form ("2006-01-02 15:04:05 ..."),
		// which strftime cannot parse. The hour sits at bytes 12-13.
		{&stats.EarlyCleans, `SELECT COUNT(*) FROM cleaning_logs WHERE user_id = ? AND CAST(substr(cleaned_at, 12, 2) AS INTEGER) < 9`},
		{&stats.NightCleans, `SELECT COUNT(*) FROM cleaning_logs WHERE user_id = ? AND CAST(substr(cleaned_at, 12, 2) AS INTEGER) >= 21`},
		{&stats.GroupMemberships, `SELECT COUNT(*) FROM group_members WHERE user_id = ?`},
		{&stats.OwnedGroups, `SELECT COUNT(*) FROM groups WHERE owner_id = ?`},
	}

	for _, c := range counts {
		if err := s.db.QueryRow(c.query, userID).Scan(c.dest); err != nil {
			return stats, fmt.Errorf("user stats: %w", err)
		}
	}

	return stats, nil
}

// Leaderboard ranks a group's members by coins earned within that group.
func (s *StatsStore) Leaderboard(groupID int64) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, COALESCE(SUM(cl.coins_earned), 0), COUNT(cl.id)
		 FROM group_members gm
		 JOIN users u ON u.id = gm.user_id
		 LEFT JOIN cleaning_logs cl ON cl.user_id = u.id AND cl.group_id = gm.group_id
		 WHERE gm.group_id = ?
		 GROUP BY u.id, u.name
		 ORDER BY SUM(cl.coins_earned) DESC, u.name ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.TotalCoins, &e.Cleanings); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
