package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/SscSPs/capital_ledger/internal/utils"
	"github.com/spf13/cobra"
)

func newPeriodCmd(app *cli) *cobra.Command {
	periodCmd := &cobra.Command{
		Use:   "period",
		Short: "Inspect monthly periods",
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the current period, opening it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withServices(cmd.Context(), func(svc *portssvc.ServiceContainer, actor domain.Actor) error {
				p, err := svc.Period.GetOrCreateCurrentPeriod(cmd.Context())
				if err != nil {
					return err
				}
				printPeriod(cmd.OutOrStdout(), p, app.cfg.Currency)
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show YEAR MONTH",
		Short: "Show one stored period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}
			return app.withServices(cmd.Context(), func(svc *portssvc.ServiceContainer, actor domain.Actor) error {
				p, err := svc.Period.GetPeriod(cmd.Context(), actor, year, month)
				if err != nil {
					return err
				}
				printPeriod(cmd.OutOrStdout(), p, app.cfg.Currency)
				return nil
			})
		},
	}

	var (
		flagYear  int
		flagLimit int
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored periods, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := dto.ListPeriodsParams{Limit: flagLimit}
			if flagYear > 0 {
				params.Year = &flagYear
			}
			return app.withServices(cmd.Context(), func(svc *portssvc.ServiceContainer, actor domain.Actor) error {
				periods, err := svc.Period.ListPeriods(cmd.Context(), actor, params)
				if err != nil {
					return err
				}
				printPeriodTable(cmd.OutOrStdout(), periods, app.cfg.Currency)
				return nil
			})
		},
	}
	listCmd.Flags().IntVar(&flagYear, "year", 0, "Only periods of this year")
	listCmd.Flags().IntVar(&flagLimit, "limit", 0, "Max periods (default 24)")

	periodCmd.AddCommand(currentCmd, showCmd, listCmd)
	return periodCmd
}

func printPeriod(w io.Writer, p *domain.Period, currency string) {
	fmt.Fprintf(w, "Period %s\n", p.Key())
	fmt.Fprintf(w, "  %-18s %15s\n", "Monthly profit", utils.FormatAmount(p.MonthlyProfit, currency))
	fmt.Fprintf(w, "  %-18s %15s\n", "Monthly revenue", utils.FormatAmount(p.MonthlyRevenue, currency))
	fmt.Fprintf(w, "  %-18s %15s\n", "Overall capital", utils.FormatAmount(p.OverallCapital, currency))
	if p.ResetAt != nil {
		fmt.Fprintf(w, "  %-18s %15s\n", "Rolled over", p.ResetAt.Format("2006-01-02 15:04"))
	}
}

func printPeriodTable(w io.Writer, periods []domain.Period, currency string) {
	if len(periods) == 0 {
		fmt.Fprintln(w, "No periods stored.")
		return
	}
	fmt.Fprintf(w, "%-8s %15s %15s %15s  %s\n", "PERIOD", "PROFIT", "REVENUE", "CAPITAL", "ROLLED")
	for _, p := range periods {
		rolled := ""
		if p.IsRolledOver() {
			rolled = "yes"
		}
		fmt.Fprintf(w, "%-8s %15s %15s %15s  %s\n", p.Key(),
			utils.FormatAmount(p.MonthlyProfit, currency),
			utils.FormatAmount(p.MonthlyRevenue, currency),
			utils.FormatAmount(p.OverallCapital, currency),
			rolled)
	}
}
