package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TaxCodeReader defines read operations for tax codes
type TaxCodeReader interface {
	FindTaxCodeByID(ctx context.Context, tenantID, taxCodeID string) (*domain.TaxCode, error)
	FindTaxCodeByCode(ctx context.Context, tenantID, code string) (*domain.TaxCode, error)
	ListTaxCodes(ctx context.Context, tenantID string, taxType *domain.TaxType) ([]domain.TaxCode, error)
}

// TaxCodeWriter defines write operations for tax codes
type TaxCodeWriter interface {
	SaveTaxCode(ctx context.Context, code domain.TaxCode) error
}

// TaxTransactionReader defines aggregations over tax transactions
type TaxTransactionReader interface {
	// ListTaxTransactions retrieves a page of transactions dated in [from, to], newest first.
	ListTaxTransactions(ctx context.Context, tenantID string, direction *domain.TaxDirection, from, to time.Time, limit int, nextToken *string) ([]domain.TaxTransaction, *string, error)

	// SumByDirection totals transactions of one direction dated in [from, to].
	SumByDirection(ctx context.Context, tenantID string, direction domain.TaxDirection, from, to time.Time) (domain.TaxSplitTotals, error)

	// TDSBySection totals withholding per section dated in [from, to].
	TDSBySection(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TDSSectionTotal, error)

	// InputCredit sums input tax up to asOf split by whether the credit was utilized.
	InputCredit(ctx context.Context, tenantID string, asOf time.Time) (available decimal.Decimal, utilized decimal.Decimal, err error)
}

// TaxTransactionWriter defines write operations for tax transactions
type TaxTransactionWriter interface {
	SaveTaxTransaction(ctx context.Context, txn domain.TaxTransaction) error

	// MarkReported flags every unreported transaction dated in [from, to].
	MarkReported(ctx context.Context, tenantID string, from, to time.Time) (int64, error)
}

// TaxRepositoryFacade combines all tax-related repository interfaces
type TaxRepositoryFacade interface {
	TaxCodeReader
	TaxCodeWriter
	TaxTransactionReader
	TaxTransactionWriter
}
