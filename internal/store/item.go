package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/squeakyapp/squeaky/internal/model"
)

// Structural invariant violations on the item tree. Raised before any
// mutation; the caller presents them as a rejected action.
var (
	ErrParentNotFound   = errors.New("parent item not found")
	ErrCrossGroupParent = errors.New("parent item belongs to a different group")
	ErrMoveIntoSelf     = errors.New("cannot move item into itself")
	ErrMoveIntoChild    = errors.New("cannot move item into one of its descendants")
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemCols = `id, group_id, parent_id, name, description, cleaning_frequency_hours, base_coin_reward, last_cleaned_at, last_cleaned_by, sort_order, created_at, updated_at`

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var it model.Item
	var parentID, lastBy sql.NullInt64
	var freq sql.NullInt64
	var lastAt sql.NullTime

	err := scanner.Scan(
		&it.ID, &it.GroupID, &parentID, &it.Name, &it.Description,
		&freq, &it.BaseCoinReward, &lastAt, &lastBy,
		&it.SortOrder, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
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

// Create inserts an item at the end of its sibling list. A non-nil parent
// must exist and belong to the same group.
func (s *ItemStore) Create(groupID int64, parentID *int64, name, description string, frequencyHours *int, baseCoinReward int) (*model.Item, error) {
	if parentID != nil {
		parent, err := s.GetByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		if parent.GroupID != groupID {
			return nil, ErrCrossGroupParent
		}
	}

	order, err := s.nextSortOrder(groupID, parentID)
	if err != nil {
		return nil, err
	}

	var pID sql.NullInt64
	if parentID != nil {
		pID = sql.NullInt64{Int64: *parentID, Valid: true}
	}
	var freq sql.NullInt64
	if frequencyHours != nil {
		freq = sql.NullInt64{Int64: int64(*frequencyHours), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO cleaning_items (group_id, parent_id, name, description, cleaning_frequency_hours, base_coin_reward, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		groupID, pID, name, description, freq, baseCoinReward, order,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ItemStore) GetByID(id int64) (*model.Item, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM cleaning_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (s *ItemStore) ListByGroup(groupID int64) ([]model.Item, error) {
	return s.list(`SELECT `+itemCols+` FROM cleaning_items WHERE group_id = ? ORDER BY sort_order ASC, name ASC`, groupID)
}

// ListRoots returns the group's top-level items.
func (s *ItemStore) ListRoots(groupID int64) ([]model.Item, error) {
	return s.list(`SELECT `+itemCols+` FROM cleaning_items WHERE group_id = ? AND parent_id IS NULL ORDER BY sort_order ASC, name ASC`, groupID)
}

func (s *ItemStore) ListChildren(parentID int64) ([]model.Item, error) {
	return s.list(`SELECT `+itemCols+` FROM cleaning_items WHERE parent_id = ? ORDER BY sort_order ASC, name ASC`, parentID)
}

func (s *ItemStore) list(query string, args ...any) ([]model.Item, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *ItemStore) Update(id int64, name, description string, frequencyHours *int, baseCoinReward int) (*model.Item, error) {
	var freq sql.NullInt64
	if frequencyHours != nil {
		freq = sql.NullInt64{Int64: int64(*frequencyHours), Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE cleaning_items SET name = ?, description = ?, cleaning_frequency_hours = ?, base_coin_reward = ?, updated_at = ?
		 WHERE id = ?`,
		name, description, freq, baseCoinReward, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the item; descendants and logs cascade via foreign keys.
func (s *ItemStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM cleaning_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Move re-parents an item (nil makes it a root) and appends it to the new
// sibling list. The new parent must be in the same group, and may not be
// the item itself or any of its descendants: the ancestor walk bounds out
// at tree depth, so a well-formed tree can never loop.
func (s *ItemStore) Move(id int64, newParentID *int64) (*model.Item, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if newParentID != nil {
		if *newParentID == id {
			return nil, ErrMoveIntoSelf
		}
		parent, err := s.GetByID(*newParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		if parent.GroupID != item.GroupID {
			return nil, ErrCrossGroupParent
		}

		descendant, err := s.isDescendant(id, parent)
		if err != nil {
			return nil, err
		}
		if descendant {
			return nil, ErrMoveIntoChild
		}
	}

	order, err := s.nextSortOrder(item.GroupID, newParentID)
	if err != nil {
		return nil, err
	}

	var pID sql.NullInt64
	if newParentID != nil {
		pID = sql.NullInt64{Int64: *newParentID, Valid: true}
	}
	if _, err := s.db.Exec(
		`UPDATE cleaning_items SET parent_id = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		pID, order, time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("move item: %w", err)
	}
	return s.GetByID(id)
}

// Reorder applies a map of item id to new sort order in one transaction.
func (s *ItemStore) Reorder(orders map[int64]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for id, order := range orders {
		if _, err := tx.Exec(`UPDATE cleaning_items SET sort_order = ? WHERE id = ?`, order, id); err != nil {
			return fmt.Errorf("update sort order: %w", err)
		}
	}
	return tx.Commit()
}

// isDescendant walks up from candidate's parent chain looking for itemID.
func (s *ItemStore) isDescendant(itemID int64, candidate *model.Item) (bool, error) {
	current := candidate
	for current.ParentID != nil {
		if *current.ParentID == itemID {
			return true, nil
		}
		next, err := s.GetByID(*current.ParentID)
		if err != nil {
			return false, err
		}
		if next == nil {
			break
		}
		current = next
	}
	return false, nil
}

func (s *ItemStore) nextSortOrder(groupID int64, parentID *int64) (int, error) {
	var query string
	var args []any
	if parentID == nil {
		query = `SELECT COALESCE(MAX(sort_order), -1) FROM cleaning_items WHERE group_id = ? AND parent_id IS NULL`
		args = []any{groupID}
	} else {
		query = `SELECT COALESCE(MAX(sort_order), -1) FROM cleaning_items WHERE group_id = ? AND parent_id = ?`
		args = []any{groupID, *parentID}
	}

	var maxOrder int
	if err := s.db.QueryRow(query, args...).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("max sort order: %w", err)
	}
	return maxOrder + 1, nil
}
