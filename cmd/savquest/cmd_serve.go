package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"SavQuest/internal/notifier"
	"SavQuest/internal/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the daily jobs",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	log := c.logger
	log.Info("SavQuest starting")

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateBot(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := c.openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log.Named("telegram"))

	sched := scheduler.NewScheduler(ctx, a.onboarding, a.progress, tn, log.Named("scheduler"))
	if err := sched.RegisterAll(cfg.Schedule.DailyResetCron, cfg.Schedule.StreakCheckCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		tn.StartPolling(ctx, sched.HandleCommand)
	}()
	log.Info("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, resetting daily challenges now")
		go sched.RunDailyResetNow()
	}

	log.Info("SavQuest is running, press Ctrl+C to stop",
		zap.String("storage", cfg.Storage.Driver))
	<-ctx.Done()

	log.Info("shutdown signal received, stopping")
	<-pollDone
	log.Info("SavQuest stopped")
	return nil
}
