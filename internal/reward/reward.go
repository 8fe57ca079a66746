package reward

import "math"

// Bonus percentages stacked additively onto the 1.0 base multiplier.
const (
	streakTierTwo = 0.20 // 14+ day streak
	streakTierOne = 0.10 // 7+ day streak
	speedBonus    = 0.05 // cleaned before 80% dirtiness
	perfectBonus  = 0.25 // cleaned at 100% dirtiness
)

// Compute returns the coins earned for one cleaning event. Streak tiers
// are mutually exclusive (highest wins); the speed and perfect bonuses
// stack on top. Rounding is half away from zero.
func Compute(baseCoinReward int, dirtinessAtClean float64, currentStreak int) int {
	multiplier := 1.0

	switch {
	case currentStreak >= 14:
		multiplier += streakTierTwo
	case currentStreak >= 7:
		multiplier += streakTierOne
	}

	if dirtinessAtClean < 80.0 {
		multiplier += speedBonus
	}

	if dirtinessAtClean >= 100.0 {
		multiplier += perfectBonus
	}

	return int(math.Round(float64(baseCoinReward) * multiplier))
}
