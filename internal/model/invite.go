package model

import "time"

// InviteType is stored as its string code.
type InviteType string

const (
	InvitePermanent   InviteType = "permanent"
	InviteSingleUse   InviteType = "single_use"
	InviteTimeLimited InviteType = "time_limited"
)

// Valid reports whether the string is a known invite type code.
func (t InviteType) Valid() bool {
	switch t {
	case InvitePermanent, InviteSingleUse, InviteTimeLimited:
		return true
	}
	return false
}

type GroupInvite struct {
	ID        int64      `json:"id"`
	UUID      string     `json:"uuid"`
	Code      string     `json:"code"`
	GroupID   int64      `json:"group_id"`
	CreatedBy int64      `json:"created_by"`
	Type      InviteType `json:"type"`
	ExpiresAt *time.Time `json:"expires_at"`
	UsedBy    *int64     `json:"used_by"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsValid reports whether the invite can still be accepted at the given time.
func (i GroupInvite) IsValid(now time.Time) bool {
	if i.UsedAt != nil {
		return false
	}
	if i.ExpiresAt != nil && !i.ExpiresAt.After(now) {
		return false
	}
	return true
}
