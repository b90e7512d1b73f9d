package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"SavQuest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotifier(t *testing.T, h http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("TOKEN", "42", "", zap.NewNop())
	n.APIBase = srv.URL
	return n
}

func TestSend(t *testing.T) {
	var got map[string]string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, n.Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSend_APIError(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	})
	err := n.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSendWithRetry_NoRetriesReportsLastError(t *testing.T) {
	var calls atomic.Int32
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := n.SendWithRetry(context.Background(), "hello", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 retries exhausted")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSendWithRetry_StopsOnCancel(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.SendWithRetry(ctx, "hello", 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatOnboardingStatus(t *testing.T) {
	s := model.OnboardingState{
		CurrentStep:    2,
		TotalSteps:     6,
		FinancialGoals: []string{"home", "debt"},
		LiteracyLevel:  4,
		SelectedTrait:  "saver",
		Completed:      true,
	}
	out := FormatOnboardingStatus(s)
	for _, want := range []string{
		"Step 2/6: Financial goals",
		"Saving for a home, Reducing debt",
		"Literacy: 4 (Finance Enthusiast)",
		"Trait: Saver",
		"complete",
	} {
		assert.Contains(t, out, want)
	}

	out = FormatOnboardingStatus(model.OnboardingState{CurrentStep: 1, TotalSteps: 6, LiteracyLevel: 3})
	assert.Contains(t, out, "Goals: none selected")
	assert.Contains(t, out, "Trait: not chosen")
}

func TestFormatTierCard(t *testing.T) {
	out := FormatTierCard(7, model.Tier{ID: "silver", Name: "Silver", LevelRange: "6-10", MinLevel: 6})
	assert.Contains(t, out, "Silver tier")
	assert.Contains(t, out, "6-10")
	assert.Contains(t, out, "3-Day WeWork Pass")
	assert.Contains(t, out, "$10 Amazon Voucher")
	assert.NotContains(t, out, "Investment Workshop")
}

func TestFormatLevelTable(t *testing.T) {
	rows := []model.LevelReward{
		{Level: 1, Coins: 0, XPToNext: 150, Tier: model.Tier{Name: "Bronze"}},
		{Level: 2, Coins: 100, XPToNext: 200, CumulativeCoin: 100, Tier: model.Tier{Name: "Bronze"}},
	}
	out := FormatLevelTable(rows)
	lines := strings.Split(strings.TrimSuffix(out, "</pre>"), "\n")
	// title, blank, header, two rows, trailing empty
	require.Len(t, lines, 6)
	assert.Contains(t, lines[4], "2")
	assert.Contains(t, lines[4], "100")
	assert.Contains(t, lines[4], "Bronze")
}

func TestFormatChallengesAndCelebration(t *testing.T) {
	cs := model.DailyChallenges()
	cs[0].Completed = true
	out := FormatChallenges(cs)
	assert.Contains(t, out, "✅ 1. Track Your Expenses (+20 XP)")
	assert.Contains(t, out, "⬜ 3. Check Your Budget (+10 XP)")

	assert.Contains(t, FormatCelebration(3), "Literacy assessment")
	assert.Contains(t, FormatCelebration(9), "Step 9")
}
