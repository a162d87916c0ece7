package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/spf13/cobra"
)

var (
	importTenantID      string
	importBankAccountID string
	importUserID        string
	importFile          string
	importProfile       string
	importAutoMatch     bool
)

var importStatementCmd = &cobra.Command{
	Use:   "import-statement",
	Short: "Import a bank statement CSV into a bank account",
	Long: `Imports a statement file. Rows already imported are skipped as duplicates.
The profile is detected from the header row when --profile is empty.

Example:
  ledgerctl import-statement --tenant T --bank-account B --user U --file april.csv --profile HDFC --auto-match`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("read statement: %w", err)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		req := dto.ImportStatementRequest{
			FileName: filepath.Base(importFile),
			Profile:  importProfile,
			Content:  content,
		}
		result, err := a.services.Bank.ImportStatement(cmd.Context(), importTenantID, importBankAccountID, req, importUserID)
		if err != nil {
			return fmt.Errorf("import %s: %w", importFile, err)
		}
		slog.Info("Statement imported",
			slog.String("import_id", result.ImportID),
			slog.Int("imported", result.Imported),
			slog.Int("duplicates", result.Duplicates),
			slog.Int("errors", result.Errors))
		for _, rowErr := range result.RowErrors {
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %s\n", rowErr.Line, rowErr.Message)
		}

		if importAutoMatch {
			summary, err := a.services.Bank.AutoMatch(cmd.Context(), importTenantID, importBankAccountID, true, importUserID)
			if err != nil {
				return fmt.Errorf("auto-match: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exact=%d suggested=%d unmatched=%d applied=%d\n",
				summary.Exact, summary.Suggested, summary.Unmatched, summary.Applied)
		}
		return nil
	},
}

func init() {
	f := importStatementCmd.Flags()
	f.StringVar(&importTenantID, "tenant", "", "tenant ID (required)")
	f.StringVar(&importBankAccountID, "bank-account", "", "bank account ID (required)")
	f.StringVar(&importUserID, "user", "", "acting user ID (required)")
	f.StringVar(&importFile, "file", "", "statement file path (required)")
	f.StringVar(&importProfile, "profile", "", "statement profile, e.g. HDFC")
	f.BoolVar(&importAutoMatch, "auto-match", false, "run auto-match and store exact matches after importing")
	for _, name := range []string{"tenant", "bank-account", "user", "file"} {
		_ = importStatementCmd.MarkFlagRequired(name)
	}
}
