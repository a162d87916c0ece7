package services

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// LedgerSvc defines the read-only ledger views.
type LedgerSvc interface {
	// GetAccountLedger returns an account's rows in a window with opening and closing balances.
	GetAccountLedger(ctx context.Context, tenantID, accountID, userID string, params dto.AccountLedgerParams) (*domain.AccountLedger, error)

	// GetTrialBalance lists every account balance as of a date.
	GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.TrialBalance, error)

	// GetSubLedger returns one party's postings and balance.
	GetSubLedger(ctx context.Context, tenantID string, partyType domain.PartyType, partyID string, asOf time.Time, userID string) (*domain.SubLedger, error)

	// ListSubLedgerBalances returns the outstanding balance of every party of a type.
	ListSubLedgerBalances(ctx context.Context, tenantID string, partyType domain.PartyType, asOf time.Time, userID string) ([]domain.PartyBalance, error)

	// GetProfitability groups revenue and cost by trip, cost center or branch.
	GetProfitability(ctx context.Context, tenantID string, dimension domain.ProfitDimension, from, to time.Time, userID string) ([]domain.Profitability, error)

	// GetCashPosition returns cash and bank balances plus flows since from.
	GetCashPosition(ctx context.Context, tenantID string, asOf, from time.Time, userID string) (*domain.CashPosition, error)
}
