package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newHeatmapCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show daily activity intensity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := a.svc.Progress(ctx)
			now := a.svc.Now()
			dates := engine.LastNDays(now, days)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconFire, fmt.Sprintf("Last %d days", days)))
			var row strings.Builder
			for i, d := range dates {
				if i > 0 && i%7 == 0 {
					fmt.Fprintln(out, row.String())
					row.Reset()
				}
				row.WriteString(ui.HeatCell(engine.HeatmapIntensity(p, d)))
				row.WriteString(" ")
			}
			if row.Len() > 0 {
				fmt.Fprintln(out, row.String())
			}
			fmt.Fprintln(out, ui.LabelValue("Today", engine.ActivityCount(p, now)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d day(s)", engine.CurrentStreak(p, now))))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 28, "Number of days")
	return cmd
}
