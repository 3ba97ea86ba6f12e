package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/ui"
)

var onboardingPages = []struct {
	title, subtitle string
}{
	{"Master Your Presence", "Improve your body language, movement, and facial expressions."},
	{"Boost Confidence", "Influence others through conscious movements and awareness."},
	{"Track Progress", "Rate yourself and build new habits daily."},
	{"Start Your Journey", "Move forward to daily practice and mastery."},
}

func newOnboardCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Show the introduction and mark it as seen",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if reset {
				a.svc.SetOnboardingComplete(ctx, false)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Onboarding reset."))
				return nil
			}

			out := cmd.OutOrStdout()
			if a.svc.IsOnboardingComplete(ctx) {
				fmt.Fprintln(out, ui.Muted.Render("Onboarding already completed. Run `tm daily` to see today's practice."))
				return nil
			}
			for i, p := range onboardingPages {
				fmt.Fprintln(out, ui.Heading(ui.IconSparkle, fmt.Sprintf("%d. %s", i+1, p.title)))
				fmt.Fprintln(out, "   "+p.subtitle)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Next", "tm checkin --posture 0.7 --face 0.6 --energy 0.8"))
			a.svc.SetOnboardingComplete(ctx, true)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Show the introduction again next time")
	return cmd
}
