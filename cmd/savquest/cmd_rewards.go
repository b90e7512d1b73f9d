package main

import (
	"fmt"
	"strconv"

	"SavQuest/internal/notifier"
	"SavQuest/internal/rewards"

	"github.com/spf13/cobra"
)

func (c *cli) rewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Level rewards and tiers",
	}

	var maxLevel int
	levels := &cobra.Command{
		Use:   "levels",
		Short: "Print coins and XP per level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := rewards.LevelTable(maxLevel)
			if err != nil {
				return err
			}
			printPlain(cmd, notifier.FormatLevelTable(rows))
			return nil
		},
	}
	levels.Flags().IntVar(&maxLevel, "max", 20, "highest level to show")

	tier := &cobra.Command{
		Use:   "tier LEVEL",
		Short: "Show the reward tier of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[0], err)
			}
			printPlain(cmd, notifier.FormatTierCard(level, rewards.TierForLevel(level)))
			return nil
		},
	}

	cmd.AddCommand(levels, tier)
	return cmd
}
