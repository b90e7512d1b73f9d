package notifier

import (
	"fmt"
	"strings"

	"SavQuest/internal/model"
)

var stepTitles = map[int]string{
	1: "Welcome",
	2: "Financial goals",
	3: "Literacy assessment",
	4: "Trait selection",
	5: "Quest preview",
	6: "Connect accounts",
}

// StepTitle names an onboarding step for display.
func StepTitle(step int) string {
	if t, ok := stepTitles[step]; ok {
		return t
	}
	return fmt.Sprintf("Step %d", step)
}

// FormatOnboardingStatus renders the onboarding record.
func FormatOnboardingStatus(s model.OnboardingState) string {
	var b strings.Builder
	b.WriteString("🧭 <b>Onboarding</b>\n\n")
	b.WriteString(fmt.Sprintf("Step %d/%d: %s\n", s.CurrentStep, s.TotalSteps, StepTitle(s.CurrentStep)))

	if len(s.FinancialGoals) == 0 {
		b.WriteString("Goals: none selected\n")
	} else {
		titles := make([]string, 0, len(s.FinancialGoals))
		for _, id := range s.FinancialGoals {
			if g, ok := model.FindGoal(id); ok {
				titles = append(titles, g.Title)
			}
		}
		b.WriteString(fmt.Sprintf("Goals: %s\n", strings.Join(titles, ", ")))
	}

	b.WriteString(fmt.Sprintf("Literacy: %d (%s)\n", s.LiteracyLevel, model.LiteracyLabel(s.LiteracyLevel)))
	if t, ok := model.FindTrait(s.SelectedTrait); ok {
		b.WriteString(fmt.Sprintf("Trait: %s\n", t.Title))
	} else {
		b.WriteString("Trait: not chosen\n")
	}
	if s.Completed {
		b.WriteString("\nOnboarding complete ✅")
	}
	return b.String()
}

// FormatCelebration is sent when a step is finished for the first time.
func FormatCelebration(step int) string {
	return fmt.Sprintf("🎉 <b>Step complete!</b> %s is done. Keep going!", StepTitle(step))
}

// FormatTierCard renders the tier a level belongs to.
func FormatTierCard(level int, tier model.Tier) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏅 <b>%s tier</b>\n\n", tier.Name))
	b.WriteString(fmt.Sprintf("Level: %d\n", level))
	b.WriteString(fmt.Sprintf("Levels: %s\n", tier.LevelRange))

	var unlocked []string
	for _, r := range model.Rewards {
		if r.TierID == tier.ID && r.LevelRequired <= level {
			unlocked = append(unlocked, r.Title)
		}
	}
	if len(unlocked) > 0 {
		b.WriteString(fmt.Sprintf("Unlocked rewards: %s\n", strings.Join(unlocked, ", ")))
	}
	return b.String()
}

// FormatLevelTable renders rows produced by rewards.LevelTable.
func FormatLevelTable(rows []model.LevelReward) string {
	var b strings.Builder
	b.WriteString("📈 <b>Level rewards</b>\n\n")
	b.WriteString("<pre>")
	b.WriteString(fmt.Sprintf("%-5s %-6s %-8s %-8s %s\n", "Lvl", "Coins", "Total", "XP next", "Tier"))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-5d %-6d %-8d %-8d %s\n", r.Level, r.Coins, r.CumulativeCoin, r.XPToNext, r.Tier.Name))
	}
	b.WriteString("</pre>")
	return b.String()
}

// FormatProgress renders the progress record.
func FormatProgress(p model.Progress, tier model.Tier, xpToNext int) string {
	var b strings.Builder
	b.WriteString("⭐ <b>Progress</b>\n\n")
	b.WriteString(fmt.Sprintf("Level %d (%s)\n", p.Level, tier.Name))
	b.WriteString(fmt.Sprintf("XP: %d/%d (total %d)\n", p.XP, xpToNext, p.TotalXP))
	b.WriteString(fmt.Sprintf("Coins: %d\n", p.Coins))
	b.WriteString(fmt.Sprintf("Streak: %d day(s)\n", p.Streak))

	unlocked := 0
	for _, badge := range p.Badges {
		if badge.Unlocked {
			unlocked++
		}
	}
	b.WriteString(fmt.Sprintf("Badges: %d/%d\n", unlocked, len(p.Badges)))

	if len(p.Traits) > 0 {
		b.WriteString("\nTraits:\n")
		for _, t := range model.Traits {
			tp, ok := p.Traits[t.ID]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("  %s: level %d (%d/%d)\n", t.Title, tp.Level, tp.XP, tp.MaxXP))
		}
	}
	if len(p.RedeemedRewards) > 0 {
		b.WriteString(fmt.Sprintf("\nRedeemed rewards: %d\n", len(p.RedeemedRewards)))
	}
	return b.String()
}

// FormatChallenges renders the daily challenge list.
func FormatChallenges(cs []model.Challenge) string {
	var b strings.Builder
	b.WriteString("🎯 <b>Daily challenges</b>\n\n")
	for _, c := range cs {
		mark := "⬜"
		if c.Completed {
			mark = "✅"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s (+%d XP)\n", mark, c.ID, c.Title, c.XP))
	}
	return b.String()
}

// FormatLevelUp announces levels gained.
func FormatLevelUp(from, to, coins int) string {
	return fmt.Sprintf("🚀 <b>Level up!</b> %d → %d, +%d coins", from, to, coins)
}
