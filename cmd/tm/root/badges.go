package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			checker := engine.NewAchievementChecker(a.svc.Progress(ctx))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Badges %d/%d", checker.CountEarned(), checker.CountTotal())))
			for _, b := range checker.GetAchievements() {
				if b.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", b.Icon, ui.Gold.Render(b.Name), ui.Muted.Render(b.Description))
				} else {
					fmt.Fprintf(out, "- %s %s %s\n", ui.IconLock, ui.Muted.Render(b.Name), ui.Muted.Render(b.Description))
				}
			}
			return nil
		},
	}
}
