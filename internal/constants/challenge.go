package constants

const (
	// ChallengeDays is the fixed length of every challenge.
	ChallengeDays = 30
	FirstDay      = 1

	// Generator tier bounds: days 1-10, 11-20, 21-30.
	DefaultTierFirstEnd  = 10
	DefaultTierSecondEnd = 20
	// Eco tasks progress in blocks of a week.
	DefaultEcoBlockDays = 7

	// Canonical time-slot boundaries (HH:MM, start inclusive, end exclusive).
	// Night wraps past midnight back to MorningStart.
	MorningStart   = "06:00"
	AfternoonStart = "12:00"
	EveningStart   = "17:00"
	NightStart     = "20:00"

	// Tracker rewards
	PerfectDayBonus      = 25
	StreakBonusWeek      = 50 // streak >= 7
	StreakBonusFiveDays  = 20 // streak >= 5
	StreakBonusThreeDays = 10 // streak >= 3
)
