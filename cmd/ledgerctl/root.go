package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/core/services"
	"github.com/SscSPs/capital_ledger/internal/platform/config"
	"github.com/SscSPs/capital_ledger/internal/platform/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cliActor = "ledgerctl"

// cli carries what every subcommand needs once the root has loaded configuration.
type cli struct {
	cfg    *config.Config
	logger *slog.Logger

	flagAt      string
	flagVerbose bool
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Administer the capital ledger",
		Long:          "Inspect periods, roll over the current month, summarize budget entries and mint development tokens, working directly on the ledger database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("driver", "", "Database driver: postgres or sqlite (default from DB_DRIVER)")
	flags.String("db", "", "SQLite database path (default from SQLITE_PATH)")
	flags.String("pgsql-url", "", "PostgreSQL URL (default from PGSQL_URL)")
	flags.String("currency", "", "Currency used when printing amounts (default from LEDGER_CURRENCY)")
	flags.StringVar(&app.flagAt, "at", "", "Run as if now were this instant (RFC 3339 or YYYY-MM-DD)")
	flags.BoolVarP(&app.flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	_ = viper.BindPFlag("DB_DRIVER", flags.Lookup("driver"))
	_ = viper.BindPFlag("SQLITE_PATH", flags.Lookup("db"))
	_ = viper.BindPFlag("PGSQL_URL", flags.Lookup("pgsql-url"))
	_ = viper.BindPFlag("LEDGER_CURRENCY", flags.Lookup("currency"))

	rootCmd.AddCommand(
		newMigrateCmd(app),
		newPeriodCmd(app),
		newRolloverCmd(app),
		newEntriesCmd(app),
		newTokenCmd(app),
	)
	return rootCmd
}

func (a *cli) load() error {
	level := slog.LevelWarn
	if a.flagVerbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *cli) clock() (domain.Clock, error) {
	if a.flagAt == "" {
		return domain.SystemClock{Location: a.cfg.Location}, nil
	}
	t, err := time.ParseInLocation(time.RFC3339, a.flagAt, a.cfg.Location)
	if err != nil {
		t, err = time.ParseInLocation(time.DateOnly, a.flagAt, a.cfg.Location)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid --at %q: use RFC 3339 or YYYY-MM-DD", a.flagAt)
	}
	return domain.NewManualClock(t.In(a.cfg.Location)), nil
}

// withServices opens the database, builds the services and runs fn as the CLI admin.
func (a *cli) withServices(ctx context.Context, fn func(svc *portssvc.ServiceContainer, actor domain.Actor) error) error {
	clock, err := a.clock()
	if err != nil {
		return err
	}

	repos, closeDB, err := storage.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer closeDB()

	actor := domain.Actor{Ref: cliActor, Level: domain.AccessAdmin}
	return fn(services.NewServiceContainer(clock, repos), actor)
}
