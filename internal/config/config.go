package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Storage struct {
		Driver     string `yaml:"driver" env:"SAVQUEST_STORAGE_DRIVER"`
		Dir        string `yaml:"dir" env:"SAVQUEST_STORAGE_DIR"`
		SQLitePath string `yaml:"sqlite_path" env:"SAVQUEST_STORAGE_SQLITE_PATH"`
	} `yaml:"storage"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	} `yaml:"database"`
	Onboarding struct {
		TotalSteps      int           `yaml:"total_steps" env:"SAVQUEST_TOTAL_STEPS"`
		EffectDelay     time.Duration `yaml:"effect_delay" env:"SAVQUEST_EFFECT_DELAY"`
		DefaultLiteracy int           `yaml:"default_literacy" env:"SAVQUEST_DEFAULT_LITERACY"`
	} `yaml:"onboarding"`
	Schedule struct {
		DailyResetCron  string `yaml:"daily_reset_cron" env:"CRON_DAILY_RESET"`
		StreakCheckCron string `yaml:"streak_check_cron" env:"CRON_STREAK_CHECK"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy" env:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Unset variables leave the YAML values untouched.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "data/storage"
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/savquest_storage.db"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/savquest_history.db"
	}
	if c.Onboarding.TotalSteps == 0 {
		c.Onboarding.TotalSteps = 6
	}
	if c.Onboarding.EffectDelay == 0 {
		c.Onboarding.EffectDelay = 300 * time.Millisecond
	}
	if c.Onboarding.DefaultLiteracy == 0 {
		c.Onboarding.DefaultLiteracy = 3
	}
	if c.Schedule.DailyResetCron == "" {
		c.Schedule.DailyResetCron = "0 0 0 * * *"
	}
	if c.Schedule.StreakCheckCron == "" {
		c.Schedule.StreakCheckCron = "0 5 0 * * *"
	}
}

// Validate checks the values every command relies on.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("storage.driver must be file, sqlite or memory, got %q", c.Storage.Driver)
	}
	if c.Onboarding.TotalSteps < 1 {
		return fmt.Errorf("onboarding.total_steps must be positive")
	}
	if c.Onboarding.EffectDelay < 0 {
		return fmt.Errorf("onboarding.effect_delay must not be negative")
	}
	if c.Onboarding.DefaultLiteracy < 1 || c.Onboarding.DefaultLiteracy > 5 {
		return fmt.Errorf("onboarding.default_literacy must be between 1 and 5")
	}
	return nil
}

// ValidateBot additionally checks the fields the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
