package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/squeakyapp/squeaky/internal/model"
)

type InviteStore struct {
	db *sql.DB
}

func NewInviteStore(db *sql.DB) *InviteStore {
	return &InviteStore{db: db}
}

const inviteCols = `id, uuid, code, group_id, created_by, type, expires_at, used_by, used_at, created_at`

func scanInvite(scanner interface{ Scan(...any) error }) (*model.GroupInvite, error) {
	var inv model.GroupInvite
	var expiresAt, usedAt sql.NullTime
	var usedBy sql.NullInt64

	err := scanner.Scan(
		&inv.ID, &inv.UUID, &inv.Code, &inv.GroupID, &inv.CreatedBy,
		&inv.Type, &expiresAt, &usedBy, &usedAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		inv.ExpiresAt = &expiresAt.Time
	}
	if usedBy.Valid {
		inv.UsedBy = &usedBy.Int64
	}
	if usedAt.Valid {
		inv.UsedAt = &usedAt.Time
	}
	return &inv, nil
}

func (s *InviteStore) Create(groupID, createdBy int64, inviteType model.InviteType, expiresAt *time.Time) (*model.GroupInvite, error) {
	var exp sql.NullTime
	if expiresAt != nil {
		exp = sql.NullTime{Time: expiresAt.UTC(), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO group_invites (uuid, code, group_id, created_by, type, expires_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), newInviteCode(), groupID, createdBy, string(inviteType), exp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert invite: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *InviteStore) GetByID(id int64) (*model.GroupInvite, error) {
	row := s.db.QueryRow(`SELECT `+inviteCols+` FROM group_invites WHERE id = ?`, id)
	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

func (s *InviteStore) GetByCode(code string) (*model.GroupInvite, error) {
	row := s.db.QueryRow(`SELECT `+inviteCols+` FROM group_invites WHERE code = ?`, strings.ToUpper(code))
	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite by code: %w", err)
	}
	return inv, nil
}

func (s *InviteStore) ListByGroup(groupID int64) ([]model.GroupInvite, error) {
	rows, err := s.db.Query(
		`SELECT `+inviteCols+` FROM group_invites WHERE group_id = ? ORDER BY created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()

	var invites []model.GroupInvite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		invites = append(invites, *inv)
	}
	return invites, rows.Err()
}

// MarkUsed stamps the invite with the accepting user and time.
func (s *InviteStore) MarkUsed(id, userID int64, usedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE group_invites SET used_by = ?, used_at = ? WHERE id = ?`,
		userID, usedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("mark invite used: %w", err)
	}
	return nil
}

func (s *InviteStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM group_invites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

// DeleteExpired removes every invite whose expiry has passed. Idempotent;
// returns the number deleted.
func (s *InviteStore) DeleteExpired(now time.Time) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM group_invites WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired invites: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// newInviteCode returns a short shareable code. Derived from a UUID so it
// inherits its collision resistance; the unique index catches the rest.
func newInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:10])
}
