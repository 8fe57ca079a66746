package store

import (
	"database/sql"
	"fmt"

	"github.com/squeakyapp/squeaky/internal/model"
)

// LogStore reads cleaning history. Rows are inserted only by the cleaning
// transaction and never change afterward.
type LogStore struct {
	db *sql.DB
}

func NewLogStore(db *sql.DB) *LogStore {
	return &LogStore{db: db}
}

const logCols = `id, cleaning_item_id, user_id, group_id, dirtiness_at_clean, coins_earned, notes, cleaned_at`

func scanLog(scanner interface{ Scan(...any) error }) (*model.CleaningLog, error) {
	var l model.CleaningLog
	err := scanner.Scan(
		&l.ID, &l.ItemID, &l.UserID, &l.GroupID,
		&l.DirtinessAtClean, &l.CoinsEarned, &l.Notes, &l.CleanedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LogStore) GetByID(id int64) (*model.CleaningLog, error) {
	row := s.db.QueryRow(`SELECT `+logCols+` FROM cleaning_logs WHERE id = ?`, id)
	l, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	return l, nil
}

func (s *LogStore) ListByItem(itemID int64, limit int) ([]model.CleaningLog, error) {
	return s.list(
		`SELECT `+logCols+` FROM cleaning_logs WHERE cleaning_item_id = ? ORDER BY cleaned_at DESC LIMIT ?`,
		itemID, limit,
	)
}

func (s *LogStore) ListByUser(userID int64, limit int) ([]model.CleaningLog, error) {
	return s.list(
		`SELECT `+logCols+` FROM cleaning_logs WHERE user_id = ? ORDER BY cleaned_at DESC LIMIT ?`,
		userID, limit,
	)
}

func (s *LogStore) list(query string, args ...any) ([]model.CleaningLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []model.CleaningLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// RecentActivity returns a group's latest cleanings with item and user
// names attached, newest first.
func (s *LogStore) RecentActivity(groupID int64, limit int) ([]model.ActivityEntry, error) {
	rows, err := s.db.Query(
		`SELECT cl.id, cl.cleaning_item_id, cl.user_id, cl.group_id, cl.dirtiness_at_clean,
		        cl.coins_earned, cl.notes, cl.cleaned_at, ci.name, u.name
		 FROM cleaning_logs cl
		 JOIN cleaning_items ci ON ci.id = cl.cleaning_item_id
		 JOIN users u ON u.id = cl.user_id
		 WHERE cl.group_id = ?
		 ORDER BY cl.cleaned_at DESC
		 LIMIT ?`,
		groupID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var entries []model.ActivityEntry
	for rows.Next() {
		var e model.ActivityEntry
		err := rows.Scan(
			&e.ID, &e.ItemID, &e.UserID, &e.GroupID, &e.DirtinessAtClean,
			&e.CoinsEarned, &e.Notes, &e.CleanedAt, &e.ItemName, &e.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
