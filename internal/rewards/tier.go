package rewards

import "SavQuest/internal/model"

// tiers is ordered from the highest threshold down; the first match wins.
var tiers = []model.Tier{
	{ID: "platinum", Name: "Platinum", LevelRange: "16+", MinLevel: 16},
	{ID: "gold", Name: "Gold", LevelRange: "11-15", MinLevel: 11},
	{ID: "silver", Name: "Silver", LevelRange: "6-10", MinLevel: 6},
}

// Bronze is the lowest tier. Levels below 1 also classify as Bronze.
var Bronze = model.Tier{ID: "bronze", Name: "Bronze", LevelRange: "1-5", MinLevel: 1}

// TierForLevel classifies a level into its reward tier.
func TierForLevel(level int) model.Tier {
	for _, t := range tiers {
		if level >= t.MinLevel {
			return t
		}
	}
	return Bronze
}

// Tiers lists all tiers in ascending order.
func Tiers() []model.Tier {
	out := []model.Tier{Bronze}
	for i := len(tiers) - 1; i >= 0; i-- {
		out = append(out, tiers[i])
	}
	return out
}
