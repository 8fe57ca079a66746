// Package achievement holds the closed badge catalog and the evaluation
// engine that awards badges from a user's accumulated statistics.
package achievement

// Code identifies one achievement. Codes are stable storage strings.
type Code string

const (
	// Beginner
	FirstClean   Code = "first_clean"
	SquadMember  Code = "squad_member"
	SquadCreator Code = "squad_creator"

	// Progress — coins
	CoinCollector100  Code = "coin_collector_100"
	CoinCollector500  Code = "coin_collector_500"
	CoinCollector1000 Code = "coin_collector_1000"
	CoinCollector5000 Code = "coin_collector_5000"

	// Progress — streaks
	StreakMaster7  Code = "streak_master_7"
	StreakMaster14 Code = "streak_master_14"
	StreakMaster30 Code = "streak_master_30"
	StreakMaster90 Code = "streak_master_90"

	// Social
	TeamPlayer      Code = "team_player"
	RoomOwner       Code = "room_owner"
	JackOfAllTrades Code = "jack_of_all_trades"

	// Challenge
	Perfectionist Code = "perfectionist"
	EarlyBird     Code = "early_bird"
	NightOwl      Code = "night_owl"
)

// Category groups achievements for display.
type Category string

const (
	CategoryBeginner  Category = "Beginner"
	CategoryProgress  Category = "Progress"
	CategorySocial    Category = "Social"
	CategoryChallenge Category = "Challenge"
)

// Def is one catalog entry: descriptive metadata plus the rule that
// decides whether a stats snapshot qualifies.
type Def struct {
	Code        Code             `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Category    Category         `json:"category"`
	Earned      func(Stats) bool `json:"-"`
}

// All returns the full catalog. Rules are independent: every qualifying
// tier is awarded, not just the highest.
func All() []Def {
	return []Def{
		{
			Code: FirstClean, Name: "First Clean", Category: CategoryBeginner, Icon: "sparkles",
			Description: "Complete your first cleaning",
			Earned:      func(s Stats) bool { return s.TotalCleanings >= 1 },
		},
		{
			Code: SquadMember, Name: "Squad Member", Category: CategoryBeginner, Icon: "user-group",
			Description: "Join your first cleaning squad",
			Earned:      func(s Stats) bool { return s.GroupMemberships >= 1 },
		},
		{
			Code: SquadCreator, Name: "Squad Creator", Category: CategoryBeginner, Icon: "star",
			Description: "Create your own cleaning squad",
			Earned:      func(s Stats) bool { return s.OwnedGroups >= 1 },
		},

		{
			Code: CoinCollector100, Name: "Coin Collector: Bronze", Category: CategoryProgress, Icon: "currency-dollar",
			Description: "Earn 100 total coins",
			Earned:      func(s Stats) bool { return s.TotalCoins >= 100 },
		},
		{
			Code: CoinCollector500, Name: "Coin Collector: Silver", Category: CategoryProgress, Icon: "currency-dollar",
			Description: "Earn 500 total coins",
			Earned:      func(s Stats) bool { return s.TotalCoins >= 500 },
		},
		{
			Code: CoinCollector1000, Name: "Coin Collector: Gold", Category: CategoryProgress, Icon: "currency-dollar",
			Description: "Earn 1,000 total coins",
			Earned:      func(s Stats) bool { return s.TotalCoins >= 1000 },
		},
		{
			Code: CoinCollector5000, Name: "Coin Collector: Platinum", Category: CategoryProgress, Icon: "currency-dollar",
			Description: "Earn 5,000 total coins",
			Earned:      func(s Stats) bool { return s.TotalCoins >= 5000 },
		},

		{
			Code: StreakMaster7, Name: "Streak Master: Week", Category: CategoryProgress, Icon: "fire",
			Description: "Maintain a 7-day cleaning streak",
			Earned:      func(s Stats) bool { return s.CurrentStreak >= 7 },
		},
		{
			Code: StreakMaster14, Name: "Streak Master: Fortnight", Category: CategoryProgress, Icon: "fire",
			Description: "Maintain a 14-day cleaning streak",
			Earned:      func(s Stats) bool { return s.CurrentStreak >= 14 },
		},
		{
			Code: StreakMaster30, Name: "Streak Master: Month", Category: CategoryProgress, Icon: "fire",
			Description: "Maintain a 30-day cleaning streak",
			Earned:      func(s Stats) bool { return s.CurrentStreak >= 30 },
		},
		{
			Code: StreakMaster90, Name: "Streak Master: Quarter", Category: CategoryProgress, Icon: "fire",
			Description: "Maintain a 90-day cleaning streak",
			Earned:      func(s Stats) bool { return s.CurrentStreak >= 90 },
		},

		{
			Code: TeamPlayer, Name: "Team Player", Category: CategorySocial, Icon: "hand-raised",
			Description: "Complete 10 cleanings in group spaces",
			Earned:      func(s Stats) bool { return s.GroupCleanings >= 10 },
		},
		{
			Code: RoomOwner, Name: "Room Owner", Category: CategorySocial, Icon: "home",
			Description: "Complete 50 cleanings of any room",
			Earned:      func(s Stats) bool { return s.TotalCleanings >= 50 },
		},
		{
			Code: JackOfAllTrades, Name: "Jack of All Trades", Category: CategorySocial, Icon: "wrench-screwdriver",
			Description: "Clean 5 different types of rooms",
			Earned:      func(s Stats) bool { return s.DistinctRooms >= 5 },
		},

		{
			Code: Perfectionist, Name: "Perfectionist", Category: CategoryChallenge, Icon: "check-badge",
			Description: "Clean 10 items at 100% dirtiness",
			Earned:      func(s Stats) bool { return s.PerfectCleans >= 10 },
		},
		{
			Code: EarlyBird, Name: "Early Bird", Category: CategoryChallenge, Icon: "sun",
			Description: "Complete 10 cleanings before 9 AM",
			Earned:      func(s Stats) bool { return s.EarlyCleans >= 10 },
		},
		{
			Code: NightOwl, Name: "Night Owl", Category: CategoryChallenge, Icon: "moon",
			Description: "Complete 10 cleanings after 9 PM",
			Earned:      func(s Stats) bool { return s.NightCleans >= 10 },
		},
	}
}
