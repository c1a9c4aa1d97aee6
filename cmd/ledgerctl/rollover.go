package main

import (
	"fmt"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newRolloverCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Fold the current month's profit into capital and open next month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withServices(cmd.Context(), func(svc *portssvc.ServiceContainer, actor domain.Actor) error {
				result, err := svc.Rollover.Rollover(cmd.Context(), actor)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Closed:")
				printPeriod(out, &result.Closed, app.cfg.Currency)
				if result.Created {
					fmt.Fprintln(out, "Opened:")
				} else {
					fmt.Fprintln(out, "Opened (already existed, capital left unchanged):")
				}
				printPeriod(out, &result.Opened, app.cfg.Currency)
				fmt.Fprintf(out, "Warning: %s.\n", result.CarryForwardWarning())
				return nil
			})
		},
	}
}
