package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/training"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "List, complete and train activities",
	}
	cmd.AddCommand(newActivityListCmd(), newActivityDoCmd(), newActivityTrainCmd())
	return cmd
}

func newActivityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the activity catalog and training drills",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Activities"))
			for _, act := range a.svc.Activities(ctx) {
				fmt.Fprintf(out, "- %s %s %s %s\n", ui.ActivityIcon(act.Type), ui.Key.Render(act.Title),
					ui.Muted.Render(fmt.Sprintf("[%s · lvl %d · %d XP · %s]", act.Type, act.Difficulty, act.XPReward, shortID(act.ID))),
					act.Description)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconTimer+" Drills"))
			for _, d := range training.Drills() {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(d.Name), ui.Muted.Render("("+d.Duration.String()+")"), d.Instruction)
			}
			return nil
		},
	}
}

func newActivityDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <id|title>",
		Short: "Complete a catalog activity",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("activity id or title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			act, ok := a.svc.FindActivity(ctx, args[0])
			if !ok {
				return fmt.Errorf("activity %q not found", args[0])
			}
			before := a.svc.Progress(ctx)
			p := a.svc.CompleteActivity(ctx, act)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), act.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d %s, %d total)", engine.ActivitySkillBoost, act.Type.Skill(), p.ActivitiesCompleted)))
			printNewBadges(cmd, before.UnlockedBadges, p.UnlockedBadges)
			return nil
		},
	}
}

func newActivityTrainCmd() *cobra.Command {
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "train <drill>",
		Short: "Run a timed training drill (Ctrl+C abandons it)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("drill name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			drill, ok := training.FindDrill(args[0])
			if !ok {
				return fmt.Errorf("unknown drill %q", args[0])
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTimer, drill.Name))
			fmt.Fprintln(out, ui.Muted.Render(drill.Instruction))

			sess := training.NewSession(drill, a.svc, training.WithTickInterval(tick))
			p, err := sess.Run(ctx, func(remaining time.Duration) {
				fmt.Fprintf(out, "\r%s %s ", ui.Key.Render("Remaining:"), remaining)
			})
			fmt.Fprintln(out)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Drill abandoned, no reward."))
					return nil
				}
				return err
			}
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconDone+" Drill complete"),
				ui.Muted.Render(fmt.Sprintf("(+%d XP, posture %d)", drill.Activity.XPReward, p.SkillLevels[engine.SkillPosture])))
			return nil
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Wall time per countdown second")
	return cmd
}
