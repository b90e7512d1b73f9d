package recorder

// StepCompletedEvent records the first forward advance out of an onboarding step.
type StepCompletedEvent struct {
	Step     int
	NextStep int
}

// OnboardingCompletedEvent records the final onboarding answers.
type OnboardingCompletedEvent struct {
	Step          int
	Goals         []string
	LiteracyLevel int
	Trait         string
	Skipped       bool // completed before reaching the last step
}

// LevelUpEvent records one or more levels gained from a single XP award.
type LevelUpEvent struct {
	FromLevel   int
	ToLevel     int
	CoinsEarned int
	Source      string // "challenge", "lesson", "manual", ...
}

// RedemptionEvent records a reward bought with coins.
type RedemptionEvent struct {
	RedemptionID string
	RewardID     string
	Cost         int
	CoinsAfter   int
}

// ChallengeEvent records a completed daily challenge.
type ChallengeEvent struct {
	ChallengeID int
	XP          int
}

// Recorder persists historical events for analysis.
type Recorder interface {
	RecordStepCompleted(evt *StepCompletedEvent) error
	RecordOnboardingCompleted(evt *OnboardingCompletedEvent) error
	RecordLevelUp(evt *LevelUpEvent) error
	RecordRedemption(evt *RedemptionEvent) error
	RecordChallenge(evt *ChallengeEvent) error
	Close() error
}
