package dirt

import (
	"math"
	"time"

	"github.com/squeakyapp/squeaky/internal/model"
)

// Status buckets an item's dirtiness for display.
type Status string

const (
	StatusFresh          Status = "fresh"
	StatusOK             Status = "ok"
	StatusNeedsAttention Status = "needs_attention"
	StatusOverdue        Status = "overdue"
)

// Classification thresholds on the 0-100 dirtiness scale.
const (
	overdueThreshold   = 100.0
	attentionThreshold = 80.0
	freshThreshold     = 20.0
)

// ItemWithStatus is the read-only view display layers consume.
type ItemWithStatus struct {
	model.Item
	Dirtiness      float64 `json:"dirtiness"`
	Status         Status  `json:"status"`
	IsOverdue      bool    `json:"is_overdue"`
	NeedsAttention bool    `json:"needs_attention"`
	IsFreshlyClean bool    `json:"is_freshly_clean"`
	CoinsAvailable int     `json:"coins_available"`
}

// Dirtiness computes the item's dirtiness percentage at the given time.
// Container items (no frequency) are always 0. A never-cleaned item with a
// frequency is maximally dirty. Otherwise decay is linear in whole elapsed
// hours, clamped to [0, 100].
func Dirtiness(item model.Item, now time.Time) float64 {
	if !item.HasFrequency() {
		return 0.0
	}
	if item.LastCleanedAt == nil {
		return 100.0
	}

	hours := int(now.Sub(*item.LastCleanedAt).Hours())
	if hours < 0 {
		hours = 0
	}

	d := float64(hours) / float64(*item.CleaningFrequencyHours) * 100
	return math.Min(d, 100.0)
}

// IsOverdue reports whether the dirtiness value has hit the ceiling.
func IsOverdue(dirtiness float64) bool { return dirtiness >= overdueThreshold }

// NeedsAttention reports whether the item is at 80% or more of its cycle.
func NeedsAttention(dirtiness float64) bool { return dirtiness >= attentionThreshold }

// IsFreshlyClean reports whether the item is under 20% of its cycle.
func IsFreshlyClean(dirtiness float64) bool { return dirtiness < freshThreshold }

// StatusOf buckets a dirtiness value.
func StatusOf(dirtiness float64) Status {
	switch {
	case IsOverdue(dirtiness):
		return StatusOverdue
	case NeedsAttention(dirtiness):
		return StatusNeedsAttention
	case IsFreshlyClean(dirtiness):
		return StatusFresh
	default:
		return StatusOK
	}
}

// CoinsAvailable estimates the payout for cleaning the item right now:
// 1.5x base when overdue, 1.2x when it needs attention, 1x otherwise.
// This is the pre-clean preview only; the awarded amount additionally
// factors the cleaner's streak and uses a different bonus model.
func CoinsAvailable(item model.Item, now time.Time) int {
	if !item.HasFrequency() {
		return 0
	}

	d := Dirtiness(item, now)

	multiplier := 1.0
	switch {
	case d >= overdueThreshold:
		multiplier = 1.5
	case d >= attentionThreshold:
		multiplier = 1.2
	}

	return int(math.Round(float64(item.BaseCoinReward) * multiplier))
}

// Describe builds the full status view for an item.
func Describe(item model.Item, now time.Time) ItemWithStatus {
	d := Dirtiness(item, now)
	return ItemWithStatus{
		Item:           item,
		Dirtiness:      d,
		Status:         StatusOf(d),
		IsOverdue:      IsOverdue(d),
		NeedsAttention: NeedsAttention(d),
		IsFreshlyClean: IsFreshlyClean(d),
		CoinsAvailable: CoinsAvailable(item, now),
	}
}
