package main

import (
	"fmt"
	"strconv"

	"SavQuest/internal/notifier"
	"SavQuest/internal/onboarding"

	"github.com/spf13/cobra"
)

func (c *cli) onboardingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Inspect and drive the onboarding flow",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the onboarding state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withApp(cmd, func(a *app) error {
					printPlain(cmd, notifier.FormatOnboardingStatus(a.onboarding.State()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "next",
			Short: "Advance to the next step",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withApp(cmd, func(a *app) error {
					printTransition(cmd, a.onboarding.Advance())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "back",
			Short: "Go back to the previous step",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withApp(cmd, func(a *app) error {
					printTransition(cmd, a.onboarding.Retreat())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "goals [goal...]",
			Short: "Replace the selected goals (at most 3)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd, func(a *app) error {
					if err := a.onboarding.SetGoals(args); err != nil {
						return err
					}
					printPlain(cmd, notifier.FormatOnboardingStatus(a.onboarding.State()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "literacy LEVEL",
			Short: "Set the self-assessed literacy level (1-5)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				level, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid level %q: %w", args[0], err)
				}
				return c.withApp(cmd, func(a *app) error {
					if err := a.onboarding.SetLiteracyLevel(level); err != nil {
						return err
					}
					printPlain(cmd, notifier.FormatOnboardingStatus(a.onboarding.State()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "trait ID",
			Short: "Pick the focus trait (empty string clears it)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(cmd, func(a *app) error {
					if err := a.onboarding.SetSelectedTrait(args[0]); err != nil {
						return err
					}
					printPlain(cmd, notifier.FormatOnboardingStatus(a.onboarding.State()))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "complete",
			Aliases: []string{"skip"},
			Short:   "Finish onboarding from the current step",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withApp(cmd, func(a *app) error {
					t := a.onboarding.Complete()
					a.progress.UnlockBadge("onboarding_complete")
					printTransition(cmd, t)
					return nil
				})
			},
		},
	)
	return cmd
}

func printTransition(cmd *cobra.Command, t onboarding.Transition) {
	out := cmd.OutOrStdout()
	if t.Clamped {
		fmt.Fprintf(out, "step %d (unchanged)\n", t.From)
	} else {
		fmt.Fprintf(out, "step %d -> %d\n", t.From, t.To)
	}
	fmt.Fprintf(out, "route: %s\n", t.Destination)
	if t.Effect != nil {
		printPlain(cmd, notifier.FormatCelebration(t.Effect.Step))
	}
}
