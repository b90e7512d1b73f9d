package model

import "time"

// TraitProgress is the per-trait level bar.
type TraitProgress struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
	MaxXP int `json:"maxXp"`
}

// Badge is an achievement shown on the profile page.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unlocked    bool   `json:"unlocked"`
}

// Redemption records a reward bought with coins.
type Redemption struct {
	ID         string    `json:"id"`
	RewardID   string    `json:"rewardId"`
	Title      string    `json:"title"`
	Cost       int       `json:"cost"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

// Challenge is a daily challenge worth a fixed amount of XP.
type Challenge struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XP          int    `json:"xp"`
	Completed   bool   `json:"completed"`
}

// Progress is the persisted gamification record.
type Progress struct {
	Level           int                      `json:"level"`
	XP              int                      `json:"xp"`
	TotalXP         int                      `json:"totalXp"`
	Coins           int                      `json:"coins"`
	Streak          int                      `json:"streak"`
	LastActivity    time.Time                `json:"lastActivity"`
	Badges          []Badge                  `json:"badges"`
	Traits          map[string]TraitProgress `json:"traits"`
	RedeemedRewards []Redemption             `json:"redeemedRewards"`
	Challenges      []Challenge              `json:"challenges"`
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	c := p
	if p.Badges != nil {
		c.Badges = append(make([]Badge, 0, len(p.Badges)), p.Badges...)
	}
	if p.RedeemedRewards != nil {
		c.RedeemedRewards = append(make([]Redemption, 0, len(p.RedeemedRewards)), p.RedeemedRewards...)
	}
	if p.Challenges != nil {
		c.Challenges = append(make([]Challenge, 0, len(p.Challenges)), p.Challenges...)
	}
	if p.Traits != nil {
		c.Traits = make(map[string]TraitProgress, len(p.Traits))
		for k, v := range p.Traits {
			c.Traits[k] = v
		}
	}
	return c
}
