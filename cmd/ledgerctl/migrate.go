package main

import (
	"fmt"

	"github.com/SscSPs/capital_ledger/internal/platform/storage"
	"github.com/spf13/cobra"
)

func newMigrateCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.Migrate(app.cfg, app.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s).\n", app.cfg.DBDriver)
			return nil
		},
	}
}
