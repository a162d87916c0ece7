package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	seedTenantID string
	seedUserID   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default chart of accounts and tax codes for a tenant",
	Long: `Seeds the travel chart of accounts and the GST/TDS tax codes.
Existing codes are left untouched, so the command can be re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.services.Setup.SetupTenant(cmd.Context(), seedTenantID, seedUserID)
		if err != nil {
			return fmt.Errorf("seed tenant %s: %w", seedTenantID, err)
		}
		slog.Info("Tenant seeded", slog.String("tenant_id", seedTenantID), slog.Any("result", result))
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", *result)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedTenantID, "tenant", "", "tenant ID (required)")
	seedCmd.Flags().StringVar(&seedUserID, "user", "", "acting admin user ID (required)")
	_ = seedCmd.MarkFlagRequired("tenant")
	_ = seedCmd.MarkFlagRequired("user")
}
