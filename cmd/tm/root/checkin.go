package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newCheckInCmd() *cobra.Command {
	var posture, face, energy float64

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a posture / face / energy self-assessment (each 0-1)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range []float64{posture, face, energy} {
				if v < 0 || v > 1 {
					return errors.New("scores must be between 0 and 1")
				}
			}
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			before := a.svc.Progress(ctx)
			p := a.svc.CheckIn(ctx, posture, face, energy)

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconMirror+" Checked in"), ui.StatusText(p.CurrentStatus))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Body score", fmt.Sprintf("%d → %d", before.BodyScore, p.BodyScore)))
			printNewBadges(cmd, before.UnlockedBadges, p.UnlockedBadges)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&posture, "posture", "p", 0.5, "Posture score (0-1)")
	cmd.Flags().Float64VarP(&face, "face", "f", 0.5, "Facial expression score (0-1)")
	cmd.Flags().Float64VarP(&energy, "energy", "e", 0.5, "Energy score (0-1)")

	return cmd
}

func printNewBadges(cmd *cobra.Command, before, after []string) {
	if len(after) <= len(before) {
		return
	}
	for _, b := range after[len(before):] {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconTrophy, ui.BadgeUnlocked, ui.Gold.Render(b))
	}
}
