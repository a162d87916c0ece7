// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/travel_ledger/internal/core/services"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/platform/config"
	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/SscSPs/travel_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/travel_ledger/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the travel ledger from the command line",
	Long: `ledgerctl runs maintenance tasks against the ledger database.

Example:
  ledgerctl migrate up
  ledgerctl seed --tenant <tenant-id> --user <user-id>
  ledgerctl import-statement --tenant <id> --bank-account <id> --user <id> --file april.csv --profile HDFC`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importStatementCmd)
}

// app is the service graph a command works against.
type app struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

func (a *app) Close() {
	a.pool.Close()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	// CLI runs are not scraped; metrics go to a throwaway registry.
	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), observability.NewMetrics())
	return &app{cfg: cfg, pool: pool, services: container}, nil
}
