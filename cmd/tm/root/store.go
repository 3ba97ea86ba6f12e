package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosharny/ThunderpickMove/internal/entitlement"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Browse, buy and restore premium themes",
	}
	cmd.AddCommand(newStoreProductsCmd(), newStoreBuyCmd(), newStoreRestoreCmd())
	return cmd
}

func newStoreProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCart, "Store"))
			catalog := a.gate.Catalog()
			if len(catalog) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no products available)"))
				return nil
			}
			for _, p := range catalog {
				state := ui.Key.Render(p.DisplayPrice)
				if a.gate.IsPurchased(p.ID) {
					state = ui.Good.Render("owned")
				}
				fmt.Fprintf(out, "- %s %s %s\n", p.DisplayName, ui.Muted.Render(p.ID), state)
			}
			return nil
		},
	}
}

func newStoreBuyCmd() *cobra.Command {
	var simulate string

	cmd := &cobra.Command{
		Use:   "buy <product-id>",
		Short: "Buy a product",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("product id is required")
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

			switch simulate {
			case "":
			case "pending":
				a.store.SetNextOutcome(entitlement.StatusPending)
			case "cancelled":
				a.store.SetNextOutcome(entitlement.StatusUserCancelled)
			default:
				return fmt.Errorf("invalid --simulate %q (use: pending, cancelled)", simulate)
			}

			out := cmd.OutOrStdout()
			switch a.gate.Purchase(ctx, args[0]) {
			case entitlement.OutcomeSuccess:
				a.svc.SetLegacyPremium(ctx, true)
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Purchased ")+ui.Key.Render(args[0]))
			case entitlement.OutcomePending:
				fmt.Fprintln(out, ui.Warn.Render(ui.IconInfo+" Purchase pending approval."))
			case entitlement.OutcomeCancelled:
				fmt.Fprintln(out, ui.Muted.Render("Purchase cancelled."))
			default:
				return fmt.Errorf("purchase of %s failed", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&simulate, "simulate", "", "Simulate a deferred outcome (pending|cancelled)")
	return cmd
}

func newStoreRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore previous purchases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.gate.Restore(ctx); err != nil {
				return err
			}
			owned := a.gate.Owned()
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Owned", len(owned)))
			for _, id := range owned {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+id)
			}
			return nil
		},
	}
}
