package services

import (
	"context"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// BankAccountSvc defines bank account and feed operations
type BankAccountSvc interface {
	CreateBankAccount(ctx context.Context, tenantID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	GetBankAccount(ctx context.Context, tenantID, bankAccountID, userID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, tenantID, userID string) ([]domain.BankAccount, error)

	// RecordTransaction appends a manual feed row and recomputes the balance.
	RecordTransaction(ctx context.Context, tenantID, bankAccountID string, req dto.RecordBankTransactionRequest, userID string) (*domain.BankTransaction, error)
	ListTransactions(ctx context.Context, tenantID, bankAccountID, userID string, params dto.ListBankTransactionsParams) (*dto.ListBankTransactionsResponse, error)

	// ImportStatement parses and imports a statement file.
	ImportStatement(ctx context.Context, tenantID, bankAccountID string, req dto.ImportStatementRequest, userID string) (*domain.ImportResult, error)
}

// ReconciliationSvc defines reconciliation sessions and matching
type ReconciliationSvc interface {
	StartReconciliation(ctx context.Context, tenantID, bankAccountID string, req dto.StartReconciliationRequest, userID string) (*domain.BankReconciliation, error)
	GetReconciliation(ctx context.Context, tenantID, reconciliationID, userID string) (*domain.BankReconciliation, error)
	ReconcileTransactions(ctx context.Context, tenantID, reconciliationID string, req dto.ReconcileTransactionsRequest, userID string) (int, error)
	CompleteReconciliation(ctx context.Context, tenantID, reconciliationID, userID string) (*domain.BankReconciliation, error)

	// AutoMatch proposes ledger matches for unmatched bank rows; apply stores EXACT ones.
	AutoMatch(ctx context.Context, tenantID, bankAccountID string, apply bool, userID string) (*domain.AutoMatchSummary, error)
}

// BankSvcFacade combines all bank-related service interfaces
type BankSvcFacade interface {
	BankAccountSvc
	ReconciliationSvc
}
