package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show body score, status and skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := a.svc.Progress(ctx)
			now := a.svc.Now()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Body Status"))
			fmt.Fprintln(out, ui.LabelValue("Status", ui.StatusText(p.CurrentStatus)))
			fmt.Fprintln(out, ui.LabelValue("Body score", fmt.Sprintf("%d %s", p.BodyScore, ui.Bar(p.BodyScore, engine.MaxLevel, 20))))
			fmt.Fprintln(out, ui.LabelValue("Activities", p.ActivitiesCompleted))
			fmt.Fprintln(out, ui.LabelValue("Journal entries", p.TotalJournalEntries))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d day(s)", engine.CurrentStreak(p, now))))
			if p.LastCheckInDate != nil {
				fmt.Fprintln(out, ui.LabelValue("Last check-in", p.LastCheckInDate.In(a.svc.Location()).Format("2006-01-02 15:04")))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Skills"))
			for _, s := range engine.AllSkills {
				lvl := p.SkillLevels[s]
				fmt.Fprintf(out, "- %s %-8s %3d %s\n", ui.SkillIcon(s), s, lvl, ui.Bar(lvl, engine.MaxLevel, 20))
			}
			fmt.Fprintln(out, "")

			checker := engine.NewAchievementChecker(p)
			fmt.Fprintln(out, ui.LabelValue("Badges", fmt.Sprintf("%d/%d", checker.CountEarned(), checker.CountTotal())))
			fmt.Fprintln(out, ui.LabelValue("Theme", a.svc.CurrentTheme(ctx)))
			return nil
		},
	}

	return cmd
}
