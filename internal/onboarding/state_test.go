package onboarding

import (
	"context"
	"testing"

	"SavQuest/internal/model"
	"SavQuest/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestinationForStep(t *testing.T) {
	tests := []struct {
		step int
		want RouteID
	}{
		{1, RouteWelcome},
		{2, RouteGoals},
		{3, RouteAssessment},
		{4, RouteTraits},
		{5, RoutePreview},
		{6, RouteConnect},
		{0, RouteDashboard},
		{7, RouteDashboard},
		{-1, RouteDashboard},
	}
	for _, tt := range tests {
		if got := DestinationForStep(tt.step); got != tt.want {
			t.Errorf("step %d: expected %q, got %q", tt.step, tt.want, got)
		}
	}
}

func TestNormalize_LegacyRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	// An older schema: no totalSteps, no effectsFired, junk values.
	raw := `{"currentStep":9,"financialGoals":["home","home","bogus","debt","emergency","investing"],
		"literacyLevel":0,"selectedTrait":"gambler","completed":false}`
	require.NoError(t, store.Set(ctx, StorageKey, []byte(raw)))

	m := NewManager(ctx, NewKVRepository(store))
	s := m.State()

	assert.Equal(t, 6, s.CurrentStep)
	assert.Equal(t, 6, s.TotalSteps)
	assert.Equal(t, []string{"home", "debt", "emergency"}, s.FinancialGoals)
	assert.Equal(t, DefaultLiteracyLevel, s.LiteracyLevel)
	assert.Empty(t, s.SelectedTrait)
	assert.Equal(t, 5, s.LastCompletedStep)

	m.Retreat()
	tr := m.Advance()
	assert.Equal(t, 6, tr.To)
	assert.Nil(t, tr.Effect)
}

func TestNormalize_RecordWithoutGuardsDoesNotReplayEffects(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	raw := `{"currentStep":4,"totalSteps":6,"financialGoals":["home"],"literacyLevel":2,"selectedTrait":null,"completed":false}`
	require.NoError(t, store.Set(ctx, StorageKey, []byte(raw)))

	m := NewManager(ctx, NewKVRepository(store))
	assert.Equal(t, 3, m.State().LastCompletedStep)

	for i := 0; i < 3; i++ {
		m.Retreat()
	}
	for step := 1; step < 4; step++ {
		tr := m.Advance()
		assert.Equal(t, step, tr.From)
		assert.Nil(t, tr.Effect, "step %d was already passed", step)
	}

	tr := m.Advance()
	require.NotNil(t, tr.Effect)
	assert.Equal(t, 4, tr.Effect.Step)
}

func TestNormalize_ClampsGuards(t *testing.T) {
	in := model.OnboardingState{
		CurrentStep:       0,
		LiteracyLevel:     5,
		SelectedTrait:     "budgeter",
		LastCompletedStep: 42,
		EffectsFired:      []int{3, 0, 3, 1, 8},
	}
	out := Normalize(in, 6, 3)

	assert.Equal(t, 1, out.CurrentStep)
	assert.Equal(t, 5, out.LiteracyLevel)
	assert.Equal(t, "budgeter", out.SelectedTrait)
	assert.Equal(t, 6, out.LastCompletedStep)
	assert.Equal(t, []int{1, 3}, out.EffectsFired)
	// The input is not modified.
	assert.Equal(t, []int{3, 0, 3, 1, 8}, in.EffectsFired)
}

func TestKVRepository_CorruptRecordFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, StorageKey, []byte("{not json")))

	repo := NewKVRepository(store)
	_, _, err := repo.Load(ctx)
	assert.Error(t, err)

	m := NewManager(ctx, repo)
	assert.Equal(t, DefaultState(6, 3).CurrentStep, m.State().CurrentStep)

	// The default record replaces the corrupt one.
	_, found, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
}
