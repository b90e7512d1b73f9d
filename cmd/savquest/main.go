package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"SavQuest/internal/config"
	"SavQuest/internal/onboarding"
	"SavQuest/internal/progress"
	"SavQuest/internal/recorder"
	"SavQuest/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli carries the global flags and the logger shared by every subcommand.
type cli struct {
	configPath string
	verbose    bool
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "savquest",
		Short: "SavQuest - gamified financial literacy",
		Long: `SavQuest turns saving and learning about money into a quest.

Run "savquest serve" to start the Telegram bot, or use the subcommands
to inspect and drive onboarding, rewards and progress locally.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if c.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultConfig, "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.serveCmd(),
		c.onboardingCmd(),
		c.rewardsCmd(),
		c.progressCmd(),
	)
	return root
}

// app is the wired set of stores and managers a command works with.
type app struct {
	cfg        *config.Config
	store      storage.Store
	rec        recorder.Recorder
	onboarding *onboarding.Manager
	progress   *progress.Manager
}

func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *cli) openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	store, err := storage.Open(storage.Options{
		Driver:     cfg.Storage.Driver,
		Dir:        cfg.Storage.Dir,
		SQLitePath: cfg.Storage.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, c.logger)
		if err != nil {
			c.logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		} else {
			rec = sr
		}
	}

	a := &app{cfg: cfg, store: store, rec: rec}
	a.onboarding = onboarding.NewManager(ctx, onboarding.NewKVRepository(store),
		onboarding.WithLogger(c.logger.Named("onboarding")),
		onboarding.WithRecorder(rec),
		onboarding.WithTotalSteps(cfg.Onboarding.TotalSteps),
		onboarding.WithDefaultLiteracy(cfg.Onboarding.DefaultLiteracy),
		onboarding.WithEffectDelay(cfg.Onboarding.EffectDelay),
	)
	a.progress = progress.NewManager(ctx, progress.NewKVRepository(store),
		progress.WithLogger(c.logger.Named("progress")),
		progress.WithRecorder(rec),
	)
	return a, nil
}

func (a *app) Close() {
	_ = a.rec.Close()
	_ = a.store.Close()
}

// withApp loads config, wires the app and closes it after fn returns.
func (c *cli) withApp(cmd *cobra.Command, fn func(*app) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	a, err := c.openApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

var htmlTags = strings.NewReplacer("<b>", "", "</b>", "", "<pre>", "", "</pre>", "")

// printPlain writes formatter output without the Telegram HTML markup.
func printPlain(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), htmlTags.Replace(text))
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
