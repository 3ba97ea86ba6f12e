package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show today's power move and quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			now := a.svc.Now()
			move := engine.DailyPowerMove(now)
			pose := engine.DailyPose(now)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, "Today, day "+fmt.Sprint(engine.DayOfYear(now))))
			fmt.Fprintf(out, "%s %s %s\n", ui.H2.Render(ui.IconMirror+" Power move:"), move.Title, doneText(a.svc.IsDailyMoveDone(ctx)))
			fmt.Fprintln(out, "  "+ui.Muted.Render(move.Description))
			fmt.Fprintf(out, "%s %s %s\n", ui.H2.Render(ui.IconTarget+" Quest:"), pose.Title, doneText(a.svc.IsDailyQuestDone(ctx)))
			fmt.Fprintln(out, "  "+ui.Muted.Render(pose.Description))
			return nil
		},
	}

	return cmd
}

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Complete today's power move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			before := a.svc.Progress(ctx)
			p, ok := a.svc.CompleteDailyMove(ctx)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconInfo+" Power move already done today."))
				return nil
			}
			move := engine.DailyPowerMove(a.svc.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconDone+" Done"), move.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d body, +%d posture)", engine.DailyMoveBodyBonus, engine.ActivitySkillBoost)))
			printNewBadges(cmd, before.UnlockedBadges, p.UnlockedBadges)
			return nil
		},
	}

	return cmd
}

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Complete today's quest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			before := a.svc.Progress(ctx)
			p, ok := a.svc.CompleteDailyQuest(ctx)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconInfo+" Quest already done today."))
				return nil
			}
			pose := engine.DailyPose(a.svc.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconDone+" Done"), pose.Title,
				ui.Muted.Render(fmt.Sprintf("(+%d body, +%d mimicry)", engine.DailyQuestBodyBonus, engine.ActivitySkillBoost)))
			printNewBadges(cmd, before.UnlockedBadges, p.UnlockedBadges)
			return nil
		},
	}

	return cmd
}

func doneText(done bool) string {
	if done {
		return ui.Good.Render("done")
	}
	return ui.Warn.Render("pending")
}
