package main

import (
	"fmt"
	"strconv"

	"SavQuest/internal/notifier"
	"SavQuest/internal/rewards"

	"github.com/spf13/cobra"
)

func (c *cli) progressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "XP, coins and rewards",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the progress record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(a *app) error {
				p := a.progress.Snapshot()
				need, err := rewards.XPRequiredForNextLevel(p.Level)
				if err != nil {
					return err
				}
				printPlain(cmd, notifier.FormatProgress(p, rewards.TierForLevel(p.Level), need))
				return nil
			})
		},
	}

	var source string
	award := &cobra.Command{
		Use:   "award XP",
		Short: "Award XP and apply level-ups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xp, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid xp %q: %w", args[0], err)
			}
			return c.withApp(cmd, func(a *app) error {
				lu, err := a.progress.AwardXP(xp, source)
				if err != nil {
					return err
				}
				if lu.Leveled() {
					printPlain(cmd, notifier.FormatLevelUp(lu.FromLevel, lu.ToLevel, lu.CoinsEarned))
				}
				p := a.progress.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "level %d, xp %d, coins %d\n", p.Level, p.XP, p.Coins)
				return nil
			})
		},
	}
	award.Flags().StringVar(&source, "source", "manual", "what earned the XP")

	redeem := &cobra.Command{
		Use:   "redeem ID",
		Short: "Redeem a catalog reward with coins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app) error {
				red, err := a.progress.Redeem(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "redeemed %s for %d coins (%s)\n", red.Title, red.Cost, red.ID)
				return nil
			})
		},
	}

	cmd.AddCommand(show, award, redeem)
	return cmd
}
