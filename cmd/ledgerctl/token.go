package main

import (
	"fmt"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	"github.com/SscSPs/capital_ledger/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCmd(app *cli) *cobra.Command {
	var flagUser, flagRole string

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development JWT for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.IsProduction {
				return fmt.Errorf("refusing to mint tokens with IS_PRODUCTION set")
			}
			role := domain.ParseAccessLevel(flagRole)
			if string(role) != flagRole {
				return fmt.Errorf("invalid --role %q: use admin or member", flagRole)
			}
			token, err := utils.GenerateJWT(flagUser, string(role), app.cfg.JWTSecret, app.cfg.JWTExpiryDuration, app.cfg.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&flagUser, "user", "dev-user", "Subject (actor reference)")
	tokenCmd.Flags().StringVar(&flagRole, "role", string(domain.AccessMember), "admin or member")
	return tokenCmd
}
