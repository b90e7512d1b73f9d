package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"SavQuest/internal/model"
	"SavQuest/internal/recorder"
	"SavQuest/internal/rewards"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidXP         = errors.New("xp amount must be positive")
	ErrUnknownReward     = errors.New("unknown reward")
	ErrLevelLocked       = errors.New("reward locked at current level")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrAlreadyRedeemed   = errors.New("reward already redeemed")
	ErrUnknownChallenge  = errors.New("unknown challenge")
	ErrChallengeDone     = errors.New("challenge already completed")
	ErrUnknownTrait      = errors.New("unknown trait")
)

// LevelUp summarizes the effect of an XP award.
type LevelUp struct {
	FromLevel   int
	ToLevel     int
	CoinsEarned int
}

// Leveled reports whether at least one level was gained.
func (l LevelUp) Leveled() bool { return l.ToLevel > l.FromLevel }

// Manager owns the progress record and persists every change.
type Manager struct {
	mu    sync.Mutex
	state model.Progress
	repo  Repository
	rec   recorder.Recorder
	log   *zap.Logger
	now   func() time.Time
	ctx   context.Context
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(l *zap.Logger) Option         { return func(m *Manager) { m.log = l } }
func WithRecorder(r recorder.Recorder) Option { return func(m *Manager) { m.rec = r } }
func WithClock(now func() time.Time) Option   { return func(m *Manager) { m.now = now } }

// NewManager loads the stored record, or starts from defaults when none exists or it cannot be read.
func NewManager(ctx context.Context, repo Repository, opts ...Option) *Manager {
	m := &Manager{
		repo: repo,
		rec:  recorder.NewNoopRecorder(),
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	// Saves keep the caller's values but outlive its cancellation, so shutdown never drops a write.
	m.ctx = context.WithoutCancel(ctx)

	p, found, err := repo.Load(ctx)
	switch {
	case err != nil:
		m.log.Error("load progress, using defaults", zap.Error(err))
		m.state = DefaultProgress()
	case !found:
		m.state = DefaultProgress()
	default:
		m.state = Normalize(p)
	}
	m.persist()
	return m
}

// Snapshot returns a copy of the current record.
func (m *Manager) Snapshot() model.Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Tier returns the reward tier for the current level.
func (m *Manager) Tier() model.Tier {
	m.mu.Lock()
	defer m.mu.Unlock()
	return rewards.TierForLevel(m.state.Level)
}

// AwardXP adds XP and applies every level-up it pays for. Each level reached pays CoinsForLevel.
func (m *Manager) AwardXP(amount int, source string) (LevelUp, error) {
	if amount <= 0 {
		return LevelUp{}, fmt.Errorf("%w: got %d", ErrInvalidXP, amount)
	}
	m.mu.Lock()
	lu, err := m.awardLocked(amount)
	m.persist()
	m.mu.Unlock()
	if err != nil {
		return lu, err
	}
	m.recordLevelUp(lu, source)
	return lu, nil
}

func (m *Manager) awardLocked(amount int) (LevelUp, error) {
	p := &m.state
	lu := LevelUp{FromLevel: p.Level, ToLevel: p.Level}
	p.XP += amount
	p.TotalXP += amount
	for {
		need, err := rewards.XPRequiredForNextLevel(p.Level)
		if err != nil {
			return lu, err
		}
		if p.XP < need {
			break
		}
		p.XP -= need
		p.Level++
		coins, err := rewards.CoinsForLevel(p.Level)
		if err != nil {
			return lu, err
		}
		p.Coins += coins
		lu.CoinsEarned += coins
		lu.ToLevel = p.Level
	}
	return lu, nil
}

func (m *Manager) recordLevelUp(lu LevelUp, source string) {
	if !lu.Leveled() {
		return
	}
	m.log.Info("level up",
		zap.Int("from", lu.FromLevel),
		zap.Int("to", lu.ToLevel),
		zap.Int("coins", lu.CoinsEarned),
		zap.String("source", source))
	if err := m.rec.RecordLevelUp(&recorder.LevelUpEvent{
		FromLevel: lu.FromLevel, ToLevel: lu.ToLevel, CoinsEarned: lu.CoinsEarned, Source: source,
	}); err != nil {
		m.log.Error("record level up", zap.Error(err))
	}
}

// AwardTraitXP fills a trait's level bar, carrying overflow into the next trait level.
func (m *Manager) AwardTraitXP(trait string, amount int) (model.TraitProgress, error) {
	if _, ok := model.FindTrait(trait); !ok {
		return model.TraitProgress{}, fmt.Errorf("%w: %q", ErrUnknownTrait, trait)
	}
	if amount <= 0 {
		return model.TraitProgress{}, fmt.Errorf("%w: got %d", ErrInvalidXP, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tp := fixTrait(m.state.Traits[trait])
	tp.XP += amount
	for tp.XP >= tp.MaxXP {
		tp.XP -= tp.MaxXP
		tp.Level++
	}
	m.state.Traits[trait] = tp
	m.persist()
	return tp, nil
}

// Redeem buys a catalog reward with coins.
func (m *Manager) Redeem(rewardID string) (model.Redemption, error) {
	reward, ok := model.FindReward(rewardID)
	if !ok {
		return model.Redemption{}, fmt.Errorf("%w: %q", ErrUnknownReward, rewardID)
	}

	m.mu.Lock()
	p := &m.state
	if p.Level < reward.LevelRequired {
		m.mu.Unlock()
		return model.Redemption{}, fmt.Errorf("%w: %s needs level %d", ErrLevelLocked, reward.Title, reward.LevelRequired)
	}
	if p.Coins < reward.Cost {
		m.mu.Unlock()
		return model.Redemption{}, fmt.Errorf("%w: need %d more", ErrInsufficientCoins, reward.Cost-p.Coins)
	}
	for _, r := range p.RedeemedRewards {
		if r.RewardID == reward.ID {
			m.mu.Unlock()
			return model.Redemption{}, fmt.Errorf("%w: %s", ErrAlreadyRedeemed, reward.Title)
		}
	}

	red := model.Redemption{
		ID:         uuid.NewString(),
		RewardID:   reward.ID,
		Title:      reward.Title,
		Cost:       reward.Cost,
		RedeemedAt: m.now(),
	}
	p.Coins -= reward.Cost
	p.RedeemedRewards = append(p.RedeemedRewards, red)
	unlockBadge(p, "first_redemption")
	coinsAfter := p.Coins
	m.persist()
	m.mu.Unlock()

	if err := m.rec.RecordRedemption(&recorder.RedemptionEvent{
		RedemptionID: red.ID, RewardID: red.RewardID, Cost: red.Cost, CoinsAfter: coinsAfter,
	}); err != nil {
		m.log.Error("record redemption", zap.Error(err))
	}
	return red, nil
}

// CompleteChallenge marks a daily challenge done and awards its XP. Each challenge pays once per day.
func (m *Manager) CompleteChallenge(id int) (LevelUp, error) {
	m.mu.Lock()
	idx := -1
	for i, c := range m.state.Challenges {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return LevelUp{}, fmt.Errorf("%w: %d", ErrUnknownChallenge, id)
	}
	if m.state.Challenges[idx].Completed {
		m.mu.Unlock()
		return LevelUp{}, fmt.Errorf("%w: %s", ErrChallengeDone, m.state.Challenges[idx].Title)
	}
	m.state.Challenges[idx].Completed = true
	xp := m.state.Challenges[idx].XP
	unlockBadge(&m.state, "first_challenge")
	lu, err := m.awardLocked(xp)
	m.persist()
	m.mu.Unlock()
	if err != nil {
		return lu, err
	}

	if err := m.rec.RecordChallenge(&recorder.ChallengeEvent{ChallengeID: id, XP: xp}); err != nil {
		m.log.Error("record challenge", zap.Error(err))
	}
	m.recordLevelUp(lu, "challenge")
	return lu, nil
}

// ResetDailyChallenges restores the daily set with nothing completed.
func (m *Manager) ResetDailyChallenges() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Challenges = model.DailyChallenges()
	m.persist()
}

// UnlockBadge unlocks a badge by id. It reports false when the badge is unknown or already unlocked.
func (m *Manager) UnlockBadge(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !unlockBadge(&m.state, id) {
		return false
	}
	m.persist()
	return true
}

func unlockBadge(p *model.Progress, id string) bool {
	for i := range p.Badges {
		if p.Badges[i].ID == id {
			if p.Badges[i].Unlocked {
				return false
			}
			p.Badges[i].Unlocked = true
			return true
		}
	}
	return false
}

// TouchActivity updates the daily streak for activity at now.
// Same day keeps the streak, the next day extends it, a longer gap restarts it at 1.
func (m *Manager) TouchActivity(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &m.state
	if p.LastActivity.IsZero() {
		p.Streak = 1
	} else {
		switch d := daysBetween(p.LastActivity, now); {
		case d < 0:
			// Clock went backwards; keep the streak as is.
		case d == 0:
			if p.Streak == 0 {
				p.Streak = 1
			}
		case d == 1:
			p.Streak++
		default:
			p.Streak = 1
		}
	}
	if now.After(p.LastActivity) {
		p.LastActivity = now
	}
	m.persist()
	return p.Streak
}

// CheckStreak zeroes the streak when more than one calendar day passed without activity.
// It reports whether the streak was reset.
func (m *Manager) CheckStreak(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &m.state
	if p.LastActivity.IsZero() || p.Streak == 0 || daysBetween(p.LastActivity, now) <= 1 {
		return false
	}
	p.Streak = 0
	m.persist()
	return true
}

// daysBetween counts calendar days from a to b in b's location.
func daysBetween(a, b time.Time) int {
	loc := b.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, loc)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, loc)
	return int(math.Round(db.Sub(da).Hours() / 24))
}

// persist saves the record; failures are logged and the in-memory record stays authoritative.
// Callers must hold m.mu.
func (m *Manager) persist() {
	if err := m.repo.Save(m.ctx, m.state.Clone()); err != nil {
		m.log.Error("save progress", zap.Error(err))
	}
}
