package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/SscSPs/capital_ledger/internal/utils"
	"github.com/spf13/cobra"
)

func newEntriesCmd(app *cli) *cobra.Command {
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "Work with budget ledger entries",
	}

	var flagType, flagAccount, flagFrom, flagTo string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Total additions and withdrawals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := dto.LedgerSummaryParams{}
			if flagType != "" {
				entryType := domain.EntryType(flagType)
				if !entryType.IsValid() {
					return fmt.Errorf("invalid --type %q: use addition or withdrawal", flagType)
				}
				params.Type = &entryType
			}
			if flagAccount != "" {
				account := domain.BudgetAccount(flagAccount)
				if !account.IsValid() {
					return fmt.Errorf("invalid --account %q: use monthly_profit or overall_capital", flagAccount)
				}
				params.Account = &account
			}
			var err error
			if params.From, err = parseDate(flagFrom, app); err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			if params.To, err = parseDate(flagTo, app); err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			return app.withServices(cmd.Context(), func(svc *portssvc.ServiceContainer, actor domain.Actor) error {
				s, err := svc.Budget.Summarize(cmd.Context(), actor, params)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Entries            %15d\n", s.Count)
				fmt.Fprintf(out, "Total additions    %15s\n", utils.FormatAmount(s.TotalAdditions, app.cfg.Currency))
				fmt.Fprintf(out, "Total withdrawals  %15s\n", utils.FormatAmount(s.TotalWithdrawals, app.cfg.Currency))
				fmt.Fprintf(out, "Net change         %15s\n", utils.FormatAmount(s.NetChange, app.cfg.Currency))
				return nil
			})
		},
	}
	summaryCmd.Flags().StringVar(&flagType, "type", "", "addition or withdrawal")
	summaryCmd.Flags().StringVar(&flagAccount, "account", "", "monthly_profit or overall_capital")
	summaryCmd.Flags().StringVar(&flagFrom, "from", "", "From date, inclusive (YYYY-MM-DD)")
	summaryCmd.Flags().StringVar(&flagTo, "to", "", "To date, inclusive (YYYY-MM-DD)")

	var flagYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete ENTRY_ID",
		Short: "Delete a ledger entry without reversing its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withServices(cmd.Context(), func(svc *portssvc.ServiceContainer, actor domain.Actor) error {
				entry, err := svc.Budget.GetEntry(cmd.Context(), actor, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Warning: the %s of %s on %s will stay applied to the period balances.\n",
					entry.Type, utils.FormatAmount(entry.Amount, app.cfg.Currency), entry.Account)
				if !flagYes {
					return fmt.Errorf("not deleted: re-run with --yes to confirm")
				}
				if err := svc.Budget.DeleteEntry(cmd.Context(), actor, entry.EntryID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted entry %s.\n", entry.EntryID)
				return nil
			})
		},
	}
	deleteCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm the deletion")

	entriesCmd.AddCommand(summaryCmd, deleteCmd)
	return entriesCmd
}

func parseDate(s string, app *cli) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, app.cfg.Location)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
