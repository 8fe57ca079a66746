package achievement

import (
	"fmt"
	"log/slog"
	"time"
)

// Stats is the snapshot of a user's history the rules evaluate against.
// It is recomputed from the log and membership tables on every run; no
// incremental counters are maintained.
type Stats struct {
	TotalCleanings   int // lifetime cleaning logs
	GroupCleanings   int // logs carrying a group id
	DistinctRooms    int // distinct non-null parent items among cleaned items
	PerfectCleans    int // logs with dirtiness_at_clean >= 100
	EarlyCleans      int // logs before 09:00 UTC
	NightCleans      int // logs at or after 21:00 UTC
	TotalCoins       int
	CurrentStreak    int
	GroupMemberships int
	OwnedGroups      int
}

// StatsSource loads a user's aggregate statistics.
type StatsSource interface {
	UserStats(userID int64) (Stats, error)
}

// AwardStore persists earned badges. Award must be idempotent: it returns
// false without error when the user already holds the code, so concurrent
// evaluations cannot double-award.
type AwardStore interface {
	Has(userID int64, code Code) (bool, error)
	Award(userID int64, code Code, earnedAt time.Time) (bool, error)
}

// Engine evaluates the catalog against a user's stats and awards any rule
// that newly qualifies. Awards are permanent: a later streak reset never
// revokes a streak badge.
type Engine struct {
	stats  StatsSource
	awards AwardStore
	defs   []Def
	logger *slog.Logger
}

func NewEngine(stats StatsSource, awards AwardStore, logger *slog.Logger) *Engine {
	return &Engine{
		stats:  stats,
		awards: awards,
		defs:   All(),
		logger: logger,
	}
}

// Evaluate checks every rule for the user and returns the codes awarded by
// this call. Re-running with no new qualifying state returns nothing.
func (e *Engine) Evaluate(userID int64, now time.Time) ([]Code, error) {
	stats, err := e.stats.UserStats(userID)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	var awarded []Code
	for _, def := range e.defs {
		held, err := e.awards.Has(userID, def.Code)
		if err != nil {
			return awarded, fmt.Errorf("check %s: %w", def.Code, err)
		}
		if held || !def.Earned(stats) {
			continue
		}

		isNew, err := e.awards.Award(userID, def.Code, now)
		if err != nil {
			return awarded, fmt.Errorf("award %s: %w", def.Code, err)
		}
		if isNew {
			e.logger.Info("achievement awarded", "user_id", userID, "code", def.Code)
			awarded = append(awarded, def.Code)
		}
	}

	return awarded, nil
}

// Catalog returns the full definition list for display.
func (e *Engine) Catalog() []Def {
	return e.defs
}
