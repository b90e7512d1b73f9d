package model

// Tier is a reward tier unlocked by level.
type Tier struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LevelRange string `json:"levelRange"`
	MinLevel   int    `json:"minLevel"`
}

// LevelReward is one row of the level table shown on the rewards page.
type LevelReward struct {
	Level          int
	Coins          int
	XPToNext       int
	CumulativeCoin int
	Tier           Tier
}
