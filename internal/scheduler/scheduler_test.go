package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"SavQuest/internal/onboarding"
	"SavQuest/internal/progress"
	"SavQuest/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSender struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, text)
	return nil
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.msgs...)
}

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, delay time.Duration) (*Scheduler, *fakeSender) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	ob := onboarding.NewManager(ctx, onboarding.NewKVRepository(store), onboarding.WithEffectDelay(delay))
	pm := progress.NewManager(ctx, progress.NewKVRepository(store), progress.WithClock(func() time.Time { return testNow }))
	sender := &fakeSender{}
	s := NewScheduler(ctx, ob, pm, sender, zap.NewNop())
	s.Now = func() time.Time { return testNow }
	t.Cleanup(s.Effects.Close)
	return s, sender
}

func TestHandleCommand_NextSendsCelebrationOnce(t *testing.T) {
	s, sender := newTestScheduler(t, 10*time.Millisecond)

	reply := s.HandleCommand("/next")
	assert.Contains(t, reply, "Step 2/6")

	require.Eventually(t, func() bool { return len(sender.sent()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Contains(t, sender.sent()[0], "Welcome is done")

	s.HandleCommand("/back")
	s.HandleCommand("/next@SavQuestBot")
	assert.Equal(t, 2, s.Onboarding.State().CurrentStep)
	assert.False(t, s.Effects.Pending())
	assert.Len(t, sender.sent(), 1)
}

func TestHandleCommand_BackCancelsPendingEffect(t *testing.T) {
	s, sender := newTestScheduler(t, time.Hour)

	s.HandleCommand("/next")
	assert.True(t, s.Effects.Pending())
	s.HandleCommand("/back")
	assert.False(t, s.Effects.Pending())
	assert.Empty(t, sender.sent())
}

func TestNewScheduler_SubscribesToOnboardingEffects(t *testing.T) {
	s, sender := newTestScheduler(t, 10*time.Millisecond)

	tr := s.Onboarding.Advance()
	require.NotNil(t, tr.Effect)
	require.Eventually(t, func() bool { return len(sender.sent()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Contains(t, sender.sent()[0], "Welcome is done")
}

func TestHandleCommand_Replies(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"", "Available commands"},
		{"/unknown", "Available commands"},
		{"/back", "already at the first step"},
		{"/goals", "Choose up to 3 goals"},
		{"/goals home debt", "Saving for a home, Reducing debt"},
		{"/goals home debt investing other", "at most 3"},
		{"/goals yacht", "unknown goal"},
		{"/literacy", "Usage"},
		{"/literacy 9", "between 1 and 5"},
		{"/literacy 2", "Budget Beginner"},
		{"/trait", "Pick a trait"},
		{"/trait investor", "Investor"},
		{"/trait gambler", "unknown trait"},
		{"/tier", "Bronze tier"},
		{"/challenges", "Track Your Expenses"},
		{"/done x", "Usage"},
		{"/done 42", "unknown challenge"},
		{"/redeem nope", "Unknown reward"},
		{"/redeem coffee_voucher", "need 100 more"},
		{"/levels", "Level rewards"},
		{"/status", "Progress"},
	}
	s, _ := newTestScheduler(t, time.Hour)
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Contains(t, s.HandleCommand(tt.command), tt.want)
		})
	}
}

func TestHandleCommand_CompleteUnlocksBadge(t *testing.T) {
	s, _ := newTestScheduler(t, time.Hour)
	s.HandleCommand("/next")

	reply := s.HandleCommand("/skip")
	assert.Contains(t, reply, "Onboarding complete")
	assert.True(t, s.Onboarding.State().Completed)
	assert.False(t, s.Effects.Pending())

	for _, b := range s.Progress.Snapshot().Badges {
		if b.ID == "onboarding_complete" {
			assert.True(t, b.Unlocked)
		}
	}
}

func TestHandleCommand_ChallengeAndStreak(t *testing.T) {
	s, _ := newTestScheduler(t, time.Hour)

	reply := s.HandleCommand("/done 1")
	assert.Contains(t, reply, "Challenge complete")
	assert.Contains(t, s.HandleCommand("/done 1"), "already completed")

	p := s.Progress.Snapshot()
	assert.Equal(t, 20, p.XP)
	assert.Equal(t, 1, p.Streak)
}

func TestDailyJobs(t *testing.T) {
	s, sender := newTestScheduler(t, time.Hour)
	s.HandleCommand("/done 1")

	s.RunDailyResetNow()
	for _, c := range s.Progress.Snapshot().Challenges {
		assert.False(t, c.Completed)
	}
	require.Len(t, sender.sent(), 1)
	assert.True(t, strings.HasPrefix(sender.sent()[0], "🌅"))

	s.streakCheck()
	assert.Len(t, sender.sent(), 1)

	s.Now = func() time.Time { return testNow.AddDate(0, 0, 3) }
	s.streakCheck()
	assert.Equal(t, 0, s.Progress.Snapshot().Streak)
	assert.Len(t, sender.sent(), 2)
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t, time.Hour)
	assert.Error(t, s.RegisterAll("not a cron", "0 5 0 * * *"))

	s, _ = newTestScheduler(t, time.Hour)
	require.NoError(t, s.RegisterAll("0 0 0 * * *", "0 5 0 * * *"))
	assert.Len(t, s.Cron.Entries(), 2)
	s.Start()
	s.Stop()
}
