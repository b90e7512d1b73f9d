package rewards

import (
	"errors"
	"fmt"

	"SavQuest/internal/model"
)

// ErrInvalidLevel is returned when a level is outside the accepted range.
var ErrInvalidLevel = errors.New("invalid level")

const (
	baseCoins      = 50
	coinsPerLevel  = 25
	baseXP         = 100
	xpPerLevel     = 50
	maxTableLevels = 100
)

// CoinsForLevel returns the coins paid out when reaching level.
// Formula: 50 + level*25. Level must be >= 1.
func CoinsForLevel(level int) (int, error) {
	if level < 1 {
		return 0, fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidLevel, level)
	}
	return baseCoins + level*coinsPerLevel, nil
}

// XPRequiredForNextLevel returns the XP needed to go from currentLevel to the next one.
// Formula: 100 + currentLevel*50. Level 0 is accepted.
func XPRequiredForNextLevel(currentLevel int) (int, error) {
	if currentLevel < 0 {
		return 0, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidLevel, currentLevel)
	}
	return baseXP + currentLevel*xpPerLevel, nil
}

// TotalCoinsFromLevels returns the sum of CoinsForLevel(i) for i in 1..currentLevel.
func TotalCoinsFromLevels(currentLevel int) (int, error) {
	if currentLevel < 0 {
		return 0, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidLevel, currentLevel)
	}
	n := currentLevel
	// n*(n+1) is always even.
	return baseCoins*n + coinsPerLevel*n*(n+1)/2, nil
}

// totalCoinsIterative is the loop form of TotalCoinsFromLevels.
func totalCoinsIterative(currentLevel int) int {
	total := 0
	for i := 1; i <= currentLevel; i++ {
		c, _ := CoinsForLevel(i)
		total += c
	}
	return total
}

// LevelTable builds the rewards-page table for levels 1..maxLevel.
func LevelTable(maxLevel int) ([]model.LevelReward, error) {
	if maxLevel < 1 || maxLevel > maxTableLevels {
		return nil, fmt.Errorf("%w: table size %d (must be 1..%d)", ErrInvalidLevel, maxLevel, maxTableLevels)
	}
	rows := make([]model.LevelReward, 0, maxLevel)
	cumulative := 0
	for lvl := 1; lvl <= maxLevel; lvl++ {
		coins, _ := CoinsForLevel(lvl)
		xp, _ := XPRequiredForNextLevel(lvl)
		cumulative += coins
		rows = append(rows, model.LevelReward{
			Level:          lvl,
			Coins:          coins,
			XPToNext:       xp,
			CumulativeCoin: cumulative,
			Tier:           TierForLevel(lvl),
		})
	}
	return rows, nil
}
