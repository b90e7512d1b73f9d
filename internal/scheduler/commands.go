package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"SavQuest/internal/model"
	"SavQuest/internal/notifier"
	"SavQuest/internal/onboarding"
	"SavQuest/internal/progress"
	"SavQuest/internal/rewards"

	"go.uber.org/zap"
)

const levelTableRows = 20

const helpText = `Available commands:
/status - onboarding and progress
/next, /back - move through onboarding
/goals id... - choose up to 3 goals
/literacy 1-5 - rate your financial literacy
/trait id - pick a focus trait
/skip - finish onboarding now
/challenges - today's challenges
/done id - complete a challenge
/redeem id - redeem a reward
/tier - your reward tier
/levels - coins per level`

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	name := strings.ToLower(fields[0])
	// Telegram appends the bot name in groups: /next@SavQuestBot.
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}
	args := fields[1:]

	var reply string
	switch name {
	case "/start":
		reply = "👋 Welcome to SavQuest!\n\n" + notifier.FormatOnboardingStatus(s.Onboarding.State()) + "\n\n" + helpText
	case "/next":
		reply = s.navigate(s.Onboarding.Advance(), "You are already at the last step.")
	case "/back":
		reply = s.navigate(s.Onboarding.Retreat(), "You are already at the first step.")
	case "/goals":
		reply = s.setGoals(args)
	case "/literacy":
		reply = s.setLiteracy(args)
	case "/trait":
		reply = s.setTrait(args)
	case "/skip", "/complete":
		reply = s.complete()
	case "/status":
		reply = notifier.FormatOnboardingStatus(s.Onboarding.State()) + "\n\n" + s.progressText()
	case "/tier":
		p := s.Progress.Snapshot()
		reply = notifier.FormatTierCard(p.Level, rewards.TierForLevel(p.Level))
	case "/challenges":
		reply = notifier.FormatChallenges(s.Progress.Snapshot().Challenges)
	case "/done":
		reply = s.completeChallenge(args)
	case "/redeem":
		reply = s.redeem(args)
	case "/levels":
		rows, err := rewards.LevelTable(levelTableRows)
		if err != nil {
			s.Log.Error("build level table", zap.Error(err))
			return "❌ Level table unavailable."
		}
		reply = notifier.FormatLevelTable(rows)
	default:
		return helpText
	}

	s.Progress.TouchActivity(s.Now())
	return reply
}

func (s *Scheduler) navigate(t onboarding.Transition, clampedMsg string) string {
	// New effects arrive through OnEffect; any other step change drops the pending one.
	if t.Effect == nil {
		s.Effects.Observe(t)
	}
	if t.Clamped {
		return clampedMsg
	}
	return notifier.FormatOnboardingStatus(s.Onboarding.State())
}

func (s *Scheduler) setGoals(args []string) string {
	if len(args) == 0 {
		var b strings.Builder
		b.WriteString("Choose up to 3 goals with /goals id...\n\n")
		for _, g := range model.Goals {
			b.WriteString(fmt.Sprintf("• %s: %s\n", g.ID, g.Title))
		}
		return b.String()
	}
	if err := s.Onboarding.SetGoals(args); err != nil {
		return "❌ " + err.Error()
	}
	return notifier.FormatOnboardingStatus(s.Onboarding.State())
}

func (s *Scheduler) setLiteracy(args []string) string {
	if len(args) != 1 {
		return "Usage: /literacy 1-5"
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return "Usage: /literacy 1-5"
	}
	if err := s.Onboarding.SetLiteracyLevel(level); err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("Literacy set to %d (%s).", level, model.LiteracyLabel(level))
}

func (s *Scheduler) setTrait(args []string) string {
	if len(args) != 1 {
		var b strings.Builder
		b.WriteString("Pick a trait with /trait id\n\n")
		for _, t := range model.Traits {
			b.WriteString(fmt.Sprintf("• %s: %s\n", t.ID, t.Description))
		}
		return b.String()
	}
	if err := s.Onboarding.SetSelectedTrait(args[0]); err != nil {
		return "❌ " + err.Error()
	}
	t, _ := model.FindTrait(args[0])
	return fmt.Sprintf("Trait set to %s.", t.Title)
}

func (s *Scheduler) complete() string {
	s.Effects.Observe(s.Onboarding.Complete())
	s.Progress.UnlockBadge("onboarding_complete")
	return "🏁 Onboarding complete! Your quest starts now.\n\n" + s.progressText()
}

func (s *Scheduler) completeChallenge(args []string) string {
	if len(args) != 1 {
		return "Usage: /done id"
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return "Usage: /done id"
	}
	lu, err := s.Progress.CompleteChallenge(id)
	if err != nil {
		return "❌ " + err.Error()
	}
	reply := "✅ Challenge complete!"
	if lu.Leveled() {
		reply += "\n" + notifier.FormatLevelUp(lu.FromLevel, lu.ToLevel, lu.CoinsEarned)
	}
	return reply + "\n\n" + notifier.FormatChallenges(s.Progress.Snapshot().Challenges)
}

func (s *Scheduler) redeem(args []string) string {
	if len(args) != 1 {
		return "Usage: /redeem id"
	}
	red, err := s.Progress.Redeem(args[0])
	switch {
	case errors.Is(err, progress.ErrUnknownReward):
		return "❌ Unknown reward."
	case err != nil:
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("🎁 Redeemed %s for %d coins. Balance: %d.", red.Title, red.Cost, s.Progress.Snapshot().Coins)
}

func (s *Scheduler) progressText() string {
	p := s.Progress.Snapshot()
	need, err := rewards.XPRequiredForNextLevel(p.Level)
	if err != nil {
		s.Log.Error("xp for next level", zap.Error(err))
	}
	return notifier.FormatProgress(p, rewards.TierForLevel(p.Level), need)
}
