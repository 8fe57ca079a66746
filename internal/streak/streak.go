package streak

import (
	"time"

	"github.com/squeakyapp/squeaky/internal/model"
)

// All calendar-day comparisons happen in UTC. Timestamps are written to
// the store in UTC, so "today" and "yesterday" mean UTC days everywhere.

// Advance returns the user's progression state after one cleaning at now.
// First ever cleaning starts a streak of 1. A repeat cleaning on the same
// day is a no-op. Cleaning the day after the previous one extends the
// streak; any longer gap resets it to 1. Longest streak is a monotonic max.
func Advance(u model.User, now time.Time) model.User {
	if u.LastCleanedAt != nil && sameDay(*u.LastCleanedAt, now) {
		// Already counted today.
		return u
	}

	switch {
	case u.LastCleanedAt == nil:
		u.CurrentStreak = 1
	case sameDay(*u.LastCleanedAt, now.AddDate(0, 0, -1)):
		u.CurrentStreak++
	default:
		u.CurrentStreak = 1
	}

	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}

	t := now
	u.LastCleanedAt = &t
	return u
}

// StaleCutoff returns the instant before which a last-cleaned timestamp
// means the streak is broken: the start of yesterday. Users last active
// yesterday or today keep their streak through the daily sweep.
func StaleCutoff(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, -1)
}

// IsStale reports whether a streak anchored at lastCleanedAt has lapsed.
func IsStale(lastCleanedAt, now time.Time) bool {
	return lastCleanedAt.Before(StaleCutoff(now))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
