package model

// OnboardingState is the persisted onboarding record.
type OnboardingState struct {
	CurrentStep       int      `json:"currentStep"`
	TotalSteps        int      `json:"totalSteps"`
	FinancialGoals    []string `json:"financialGoals"`
	LiteracyLevel     int      `json:"literacyLevel"`
	SelectedTrait     string   `json:"selectedTrait,omitempty"`
	Completed         bool     `json:"completed"`
	LastCompletedStep int      `json:"lastCompletedStep"`
	// EffectsFired lists the steps whose completion effect was already emitted.
	EffectsFired []int `json:"effectsFired"`
}

// Clone returns a deep copy.
func (s OnboardingState) Clone() OnboardingState {
	c := s
	if s.FinancialGoals != nil {
		c.FinancialGoals = append(make([]string, 0, len(s.FinancialGoals)), s.FinancialGoals...)
	}
	if s.EffectsFired != nil {
		c.EffectsFired = append(make([]int, 0, len(s.EffectsFired)), s.EffectsFired...)
	}
	return c
}

// EffectFired reports whether the completion effect for step was already emitted.
func (s OnboardingState) EffectFired(step int) bool {
	for _, v := range s.EffectsFired {
		if v == step {
			return true
		}
	}
	return false
}
