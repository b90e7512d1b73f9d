package scheduler

import (
	"context"
	"fmt"
	"time"

	"SavQuest/internal/notifier"
	"SavQuest/internal/onboarding"
	"SavQuest/internal/progress"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sender delivers messages to the user.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron jobs and answers bot commands.
type Scheduler struct {
	Cron       *cron.Cron
	Onboarding *onboarding.Manager
	Progress   *progress.Manager
	Effects    *onboarding.Effects
	Notifier   Sender
	Log        *zap.Logger
	Ctx        context.Context
	Now        func() time.Time
}

// NewScheduler creates a new Scheduler. It subscribes to the onboarding effects and delivers them through tn.
func NewScheduler(ctx context.Context, ob *onboarding.Manager, pm *progress.Manager, tn Sender, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Onboarding: ob,
		Progress:   pm,
		Notifier:   tn,
		Log:        log,
		Ctx:        ctx,
		Now:        time.Now,
	}
	s.Effects = onboarding.NewEffects(s.celebrate)
	ob.OnEffect(s.Effects.Schedule)
	return s
}

// RegisterAll registers the daily challenge reset and the streak check.
func (s *Scheduler) RegisterAll(dailyResetCron, streakCheckCron string) error {
	if _, err := s.Cron.AddFunc(dailyResetCron, s.dailyReset); err != nil {
		return fmt.Errorf("register daily reset: %w", err)
	}
	if _, err := s.Cron.AddFunc(streakCheckCron, s.streakCheck); err != nil {
		return fmt.Errorf("register streak check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler, waits for running jobs and drops any pending effect.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Effects.Close()
	s.Log.Info("scheduler stopped")
}

// RunDailyResetNow executes the daily reset immediately.
func (s *Scheduler) RunDailyResetNow() {
	s.dailyReset()
}

func (s *Scheduler) dailyReset() {
	s.Log.Info("running daily challenge reset")
	s.Progress.ResetDailyChallenges()
	s.trySend("🌅 New day, new challenges!\n\n" + notifier.FormatChallenges(s.Progress.Snapshot().Challenges))
}

func (s *Scheduler) streakCheck() {
	if s.Progress.CheckStreak(s.Now()) {
		s.Log.Info("streak reset after inactivity")
		s.trySend("💤 Your streak was reset. Complete a challenge today to start a new one.")
	}
}

func (s *Scheduler) celebrate(step int) {
	s.Log.Debug("step completion effect", zap.Int("step", step))
	s.trySend(notifier.FormatCelebration(step))
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Log.Error("send notification", zap.Error(err))
	}
}
