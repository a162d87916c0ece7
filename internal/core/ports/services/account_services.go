package services

import (
	"context"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, tenantID, accountID, userID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart code.
	GetAccountByCode(ctx context.Context, tenantID, code, userID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart ordered by code.
	ListAccounts(ctx context.Context, tenantID, userID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates editable fields of an account.
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error

	// SeedChartOfAccounts creates the default travel chart, skipping existing codes.
	SeedChartOfAccounts(ctx context.Context, tenantID, userID string) (*dto.SeedResult, error)
}

// AccountResolver looks accounts up by code without authorization; it backs
// the event handlers and the year-end close.
type AccountResolver interface {
	ResolveAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountResolver
}
