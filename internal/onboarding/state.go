package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"SavQuest/internal/model"
	"SavQuest/internal/storage"
)

// StorageKey is the client-storage key holding the onboarding record.
const StorageKey = "savquest_onboarding"

const (
	DefaultTotalSteps    = 6
	DefaultLiteracyLevel = 3
	minLiteracy          = 1
	maxLiteracy          = 5
)

// Repository loads and saves the onboarding record.
type Repository interface {
	Load(ctx context.Context) (model.OnboardingState, bool, error)
	Save(ctx context.Context, state model.OnboardingState) error
}

// KVRepository keeps the record as JSON under StorageKey in a storage.Store.
type KVRepository struct {
	Store storage.Store
}

func NewKVRepository(store storage.Store) *KVRepository {
	return &KVRepository{Store: store}
}

// Load returns the stored record. found is false when no record exists yet.
func (r *KVRepository) Load(ctx context.Context) (state model.OnboardingState, found bool, err error) {
	data, err := r.Store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.OnboardingState{}, false, nil
		}
		return model.OnboardingState{}, false, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return model.OnboardingState{}, false, fmt.Errorf("decode onboarding state: %w", err)
	}
	return state, true, nil
}

// Save writes the whole record.
func (r *KVRepository) Save(ctx context.Context, state model.OnboardingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode onboarding state: %w", err)
	}
	return r.Store.Set(ctx, StorageKey, data)
}

// DefaultState is the record for a user who has not started onboarding.
func DefaultState(totalSteps, literacy int) model.OnboardingState {
	return model.OnboardingState{
		CurrentStep:    1,
		TotalSteps:     totalSteps,
		FinancialGoals: []string{},
		LiteracyLevel:  literacy,
		EffectsFired:   []int{},
	}
}

// Normalize fills missing or out-of-range fields of a loaded record with defaults,
// so a record written by an older schema never yields an invalid state.
func Normalize(s model.OnboardingState, totalSteps, literacy int) model.OnboardingState {
	s = s.Clone()
	s.TotalSteps = totalSteps

	if s.CurrentStep < 1 {
		s.CurrentStep = 1
	}
	if s.CurrentStep > totalSteps {
		s.CurrentStep = totalSteps
	}

	goals := make([]string, 0, MaxGoals)
	seen := make(map[string]bool)
	for _, g := range s.FinancialGoals {
		if _, ok := model.FindGoal(g); !ok || seen[g] {
			continue
		}
		if len(goals) == MaxGoals {
			break
		}
		seen[g] = true
		goals = append(goals, g)
	}
	s.FinancialGoals = goals

	if s.LiteracyLevel < minLiteracy || s.LiteracyLevel > maxLiteracy {
		s.LiteracyLevel = literacy
	}
	if _, ok := model.FindTrait(s.SelectedTrait); !ok {
		s.SelectedTrait = ""
	}

	if s.LastCompletedStep < 0 {
		s.LastCompletedStep = 0
	}
	if s.LastCompletedStep > totalSteps {
		s.LastCompletedStep = totalSteps
	}
	// Records without guard fields still prove every step before currentStep was passed.
	s.LastCompletedStep = max(s.LastCompletedStep, s.CurrentStep-1)

	fired := make([]int, 0, len(s.EffectsFired))
	seenStep := make(map[int]bool)
	for _, st := range s.EffectsFired {
		if st < 1 || st > totalSteps || seenStep[st] {
			continue
		}
		seenStep[st] = true
		fired = append(fired, st)
	}
	sort.Ints(fired)
	s.EffectsFired = fired
	return s
}
