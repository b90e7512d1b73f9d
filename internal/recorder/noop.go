package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordStepCompleted(_ *StepCompletedEvent) error             { return nil }
func (n *NoopRecorder) RecordOnboardingCompleted(_ *OnboardingCompletedEvent) error { return nil }
func (n *NoopRecorder) RecordLevelUp(_ *LevelUpEvent) error                         { return nil }
func (n *NoopRecorder) RecordRedemption(_ *RedemptionEvent) error                   { return nil }
func (n *NoopRecorder) RecordChallenge(_ *ChallengeEvent) error                     { return nil }
func (n *NoopRecorder) Close() error                                                { return nil }
