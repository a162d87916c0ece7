package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read-only aggregations over posted ledger rows.
type LedgerReader interface {
	// ListLedgerEntries retrieves an account's rows dated in [from, to] ordered by sequence.
	ListLedgerEntries(ctx context.Context, tenantID, accountID string, from, to time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// RunningBalanceBefore returns the account's balance over every row dated before date.
	RunningBalanceBefore(ctx context.Context, tenantID, accountID string, date time.Time) (decimal.Decimal, error)

	// RunningBalanceAsOf returns the account's balance over every row dated on or before date.
	RunningBalanceAsOf(ctx context.Context, tenantID, accountID string, date time.Time) (decimal.Decimal, error)

	// AccountTotals sums debits and credits per account for rows dated in [from, to].
	// A nil from means from the beginning.
	AccountTotals(ctx context.Context, tenantID string, from *time.Time, to time.Time) ([]domain.AccountTotals, error)

	// ListPartyEntries retrieves every row tagged with a party up to asOf.
	ListPartyEntries(ctx context.Context, tenantID string, partyType domain.PartyType, partyID string, asOf time.Time) ([]domain.LedgerEntry, error)

	// PartyBalances sums rows per party up to asOf.
	PartyBalances(ctx context.Context, tenantID string, partyType domain.PartyType, asOf time.Time) ([]domain.PartyBalance, error)

	// DimensionPostings sums rows per dimension key and account code in [from, to].
	DimensionPostings(ctx context.Context, tenantID string, dimension domain.ProfitDimension, from, to time.Time) ([]domain.DimensionPosting, error)

	// CashFlows sums debits (inflow) and credits (outflow) on accounts whose code
	// starts with codePrefix, for rows dated in [from, to].
	CashFlows(ctx context.Context, tenantID, codePrefix string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
}
