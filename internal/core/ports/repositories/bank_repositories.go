package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

// BankAccountReader defines read operations for bank accounts
type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, tenantID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank accounts
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
}

// BankTransactionReader defines read operations for the bank feed
type BankTransactionReader interface {
	// ListBankTransactions retrieves a page of transactions, newest first.
	ListBankTransactions(ctx context.Context, tenantID, bankAccountID string, unreconciledOnly bool, limit int, nextToken *string) ([]domain.BankTransaction, *string, error)

	// ListMatchCandidates retrieves unreconciled bank transactions without a stored match.
	ListMatchCandidates(ctx context.Context, tenantID, bankAccountID string) ([]domain.BankTransaction, error)

	// ListUnmatchedLedgerEntries retrieves ledger rows of the GL account not yet
	// claimed by any bank transaction.
	ListUnmatchedLedgerEntries(ctx context.Context, tenantID, glAccountID string) ([]domain.LedgerEntry, error)
}

// BankTransactionWriter defines write operations for the bank feed
type BankTransactionWriter interface {
	// InsertBankTransaction inserts txn and recomputes the account's balance from
	// its full transaction set in one transaction.
	InsertBankTransaction(ctx context.Context, txn domain.BankTransaction) (*domain.BankAccount, error)

	// ApplyMatches stores the ledger links of the given results.
	// It returns the IDs of the bank transactions actually updated.
	ApplyMatches(ctx context.Context, tenantID string, matches []domain.MatchResult) ([]string, error)

	// ImportStatement inserts rows under an advisory lock on the bank account.
	// Rows already stored or repeated in the file are counted as duplicates; a
	// failing row is recorded in the result and never aborts the batch.
	ImportStatement(ctx context.Context, meta domain.StatementImport, rows []domain.StatementRow, newID func() string) (*domain.ImportResult, error)
}

// ReconciliationRepository defines reconciliation session operations
type ReconciliationRepository interface {
	// StartReconciliation opens a session; fails with a StateError if one is already in progress.
	StartReconciliation(ctx context.Context, rec domain.BankReconciliation) error

	FindReconciliationByID(ctx context.Context, tenantID, reconciliationID string) (*domain.BankReconciliation, error)

	// ReconcileTransactions tags every id with the session atomically.
	ReconcileTransactions(ctx context.Context, tenantID, reconciliationID string, transactionIDs []string) (int, error)

	// CompleteReconciliation computes the reconciled balance and difference,
	// closes the session and updates the bank account in one transaction.
	CompleteReconciliation(ctx context.Context, tenantID, reconciliationID, userID string, now time.Time) (*domain.BankReconciliation, error)
}

// BankRepositoryFacade combines all bank-related repository interfaces
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankTransactionReader
	BankTransactionWriter
	ReconciliationRepository
}
