package cmd

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/travel_ledger/internal/platform/config"
	"github.com/SscSPs/travel_ledger/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back schema migrations",
	Long:      "up applies every pending migration; down rolls back the most recent one.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is not set")
		}
		return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.Direction(args[0]), slog.Default())
	},
}
