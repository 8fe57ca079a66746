package model

import "time"

// Item is a cleanable unit (room, sub-area, fixture) in a group's tree.
// An item with no cleaning frequency is a pure container: it never gets
// dirty and never pays out coins.
type Item struct {
	ID                     int64      `json:"id"`
	GroupID                int64      `json:"group_id"`
	ParentID               *int64     `json:"parent_id"`
	Name                   string     `json:"name"`
	Description            string     `json:"description"`
	CleaningFrequencyHours *int       `json:"cleaning_frequency_hours"`
	BaseCoinReward         int        `json:"base_coin_reward"`
	LastCleanedAt          *time.Time `json:"last_cleaned_at"`
	LastCleanedBy          *int64     `json:"last_cleaned_by"`
	SortOrder              int        `json:"sort_order"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// HasFrequency reports whether the item decays at all.
func (i Item) HasFrequency() bool {
	return i.CleaningFrequencyHours != nil && *i.CleaningFrequencyHours > 0
}
