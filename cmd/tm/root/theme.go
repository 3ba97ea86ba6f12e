package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List and select color themes",
	}
	cmd.AddCommand(newThemeListCmd(), newThemeSetCmd())
	return cmd
}

func newThemeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List themes and whether they are unlocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			current := a.svc.CurrentTheme(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPalette, "Themes"))
			for _, t := range engine.AllThemes {
				marker := "  "
				if t == current {
					marker = "> "
				}
				state := ui.Good.Render("unlocked")
				if !a.gate.HasAccess(t) {
					state = ui.Muted.Render(ui.IconLock + " " + t.ProductID())
				}
				fmt.Fprintf(out, "%s%s %s\n", marker, ui.Key.Render(string(t)), state)
			}
			return nil
		},
	}
}

func newThemeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <theme>",
		Short: "Select a theme",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("theme is required")
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

			theme := engine.ThemeType(args[0])
			if err := a.svc.SetTheme(ctx, theme, a.gate); err != nil {
				var locked engine.ThemeLockedError
				if errors.As(err, &locked) {
					return fmt.Errorf("%w (try: tm store buy %s)", err, locked.ProductID)
				}
				return err
			}
			ui.Use(theme)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconPalette+" Theme set to ")+ui.Key.Render(string(theme)))
			return nil
		},
	}
}
