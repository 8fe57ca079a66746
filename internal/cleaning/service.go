// Package cleaning implements the mark-as-cleaned transaction: observe
// dirtiness, pay out coins, advance the streak, stamp the item, and log
// the event, all atomically.
package cleaning

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/squeakyapp/squeaky/internal/clock"
	"github.com/squeakyapp/squeaky/internal/dirt"
	"github.com/squeakyapp/squeaky/internal/model"
	"github.com/squeakyapp/squeaky/internal/reward"
	"github.com/squeakyapp/squeaky/internal/streak"
)

var (
	ErrItemNotFound = errors.New("cleaning item not found")
	ErrUserNotFound = errors.New("user not found")
)

type Service struct {
	db     *sql.DB
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(db *sql.DB, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{db: db, clock: clk, logger: logger}
}

// MarkAsCleaned records one cleaning of the item by the user. The reward
// is computed from the streak the user walked in with, before the streak
// advances. Everything commits or nothing does; two concurrent cleanings
// of the same item serialize on the item row.
func (s *Service) MarkAsCleaned(itemID, userID int64, notes string) (*model.CleaningLog, error) {
	now := s.clock.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	item, err := getItemTx(tx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	user, err := getUserTx(tx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	dirtiness := dirt.Dirtiness(*item, now)
	coins := reward.Compute(item.BaseCoinReward, dirtiness, user.CurrentStreak)

	user.TotalCoins += coins
	updated := streak.Advance(*user, now)

	if _, err := tx.Exec(
		`UPDATE users SET total_coins = ?, current_streak = ?, longest_streak = ?, last_cleaned_at = ?, updated_at = ?
		 WHERE id = ?`,
		updated.TotalCoins, updated.CurrentStreak, updated.LongestStreak,
		updated.LastCleanedAt, now, userID,
	); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE cleaning_items SET last_cleaned_at = ?, last_cleaned_by = ?, updated_at = ? WHERE id = ?`,
		now, userID, now, itemID,
	); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO cleaning_logs (cleaning_item_id, user_id, group_id, dirtiness_at_clean, coins_earned, notes, cleaned_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		itemID, userID, item.GroupID, dirtiness, coins, notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert log: %w", err)
	}
	logID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("item cleaned",
		"item_id", itemID, "user_id", userID,
		"dirtiness", dirtiness, "coins", coins, "streak", updated.CurrentStreak)

	return &model.CleaningLog{
		ID:               logID,
		ItemID:           itemID,
		UserID:           userID,
		GroupID:          item.GroupID,
		DirtinessAtClean: dirtiness,
		CoinsEarned:      coins,
		Notes:            notes,
		CleanedAt:        now,
	}, nil
}

func getItemTx(tx *sql.Tx, id int64) (*model.Item, error) {
	var it model.Item
	var parentID, lastBy, freq sql.NullInt64
	var lastAt sql.NullTime

	err := tx.QueryRow(
		`SELECT id, group_id, parent_id, name, description, cleaning_frequency_hours,
		        base_coin_reward, last_cleaned_at, last_cleaned_by, sort_order, created_at, updated_at
		 FROM cleaning_items WHERE id = ?`, id,
	).Scan(
		&it.ID, &it.GroupID, &parentID, &it.Name, &it.Description, &freq,
		&it.BaseCoinReward, &lastAt, &lastBy, &it.SortOrder, &it.CreatedAt, &it.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if parentID.Valid {
		it.ParentID = &parentID.Int64
	}
	if freq.Valid {
		f := int(freq.Int64)
		it.CleaningFrequencyHours = &f
	}
	if lastAt.Valid {
		it.LastCleanedAt = &lastAt.Time
	}
	if lastBy.Valid {
		it.LastCleanedBy = &lastBy.Int64
	}
	return &it, nil
}

func getUserTx(tx *sql.Tx, id int64) (*model.User, error) {
	var u model.User
	var lastCleaned sql.NullTime

	err := tx.QueryRow(
		`SELECT id, name, email, total_coins, current_streak, longest_streak, last_cleaned_at, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(
		&u.ID, &u.Name, &u.Email, &u.TotalCoins, &u.CurrentStreak,
		&u.LongestStreak, &lastCleaned, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if lastCleaned.Valid {
		u.LastCleanedAt = &lastCleaned.Time
	}
	return &u, nil
}
