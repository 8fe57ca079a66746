package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/squeakyapp/squeaky/internal/model"
)

type GroupStore struct {
	db *sql.DB
}

func NewGroupStore(db *sql.DB) *GroupStore {
	return &GroupStore{db: db}
}

const groupCols = `id, uuid, name, description, owner_id, created_at, updated_at`

func scanGroup(scanner interface{ Scan(...any) error }) (*model.Group, error) {
	var g model.Group
	err := scanner.Scan(&g.ID, &g.UUID, &g.Name, &g.Description, &g.OwnerID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a group and enrolls the owner as a member with the owner
// role, in one transaction.
func (s *GroupStore) Create(ownerID int64, name, description string) (*model.Group, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO groups (uuid, name, description, owner_id) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), name, description, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)`,
		id, ownerID, model.RoleOwner, time.Now().UTC(),
	); err != nil {
		return nil, fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *GroupStore) GetByID(id int64) (*model.Group, error) {
	row := s.db.QueryRow(`SELECT `+groupCols+` FROM groups WHERE id = ?`, id)
	g, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

func (s *GroupStore) GetByUUID(u string) (*model.Group, error) {
	row := s.db.QueryRow(`SELECT `+groupCols+` FROM groups WHERE uuid = ?`, u)
	g, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group by uuid: %w", err)
	}
	return g, nil
}

func (s *GroupStore) ListByMember(userID int64) ([]model.Group, error) {
	rows, err := s.db.Query(
		`SELECT g.id, g.uuid, g.name, g.description, g.owner_id, g.created_at, g.updated_at
		 FROM groups g
		 JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.user_id = ? ORDER BY g.name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list groups by member: %w", err)
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func (s *GroupStore) Update(id int64, name, description string) (*model.Group, error) {
	_, err := s.db.Exec(
		`UPDATE groups SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name, description, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the group; members, invites, items, and logs cascade.
func (s *GroupStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// --- Membership methods ---

const memberCols = `id, group_id, user_id, role, joined_at`

func scanMember(scanner interface{ Scan(...any) error }) (*model.GroupMember, error) {
	var m model.GroupMember
	err := scanner.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GroupStore) AddMember(groupID, userID int64, role string) (*model.GroupMember, error) {
	result, err := s.db.Exec(
		`INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)`,
		groupID, userID, role, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+memberCols+` FROM group_members WHERE id = ?`, id)
	return scanMember(row)
}

func (s *GroupStore) GetMember(groupID, userID int64) (*model.GroupMember, error) {
	row := s.db.QueryRow(
		`SELECT `+memberCols+` FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *GroupStore) RemoveMember(groupID, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM group_members WHERE group_id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

func (s *GroupStore) ListMembers(groupID int64) ([]model.GroupMember, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM group_members WHERE group_id = ? ORDER BY joined_at ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.GroupMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// TransferOwnership moves the group to a new owner: the group's owner_id
// changes, the old owner is demoted to admin, and the new owner's
// membership role becomes owner. All three writes share one transaction.
func (s *GroupStore) TransferOwnership(groupID, newOwnerID int64) (*model.Group, error) {
	group, err := s.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.Exec(
		`UPDATE groups SET owner_id = ?, updated_at = ? WHERE id = ?`,
		newOwnerID, now, groupID,
	); err != nil {
		return nil, fmt.Errorf("update owner: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE group_members SET role = ? WHERE group_id = ? AND user_id = ?`,
		model.RoleAdmin, groupID, group.OwnerID,
	); err != nil {
		return nil, fmt.Errorf("demote old owner: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE group_members SET role = ? WHERE group_id = ? AND user_id = ?`,
		model.RoleOwner, groupID, newOwnerID,
	); err != nil {
		return nil, fmt.Errorf("promote new owner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(groupID)
}
