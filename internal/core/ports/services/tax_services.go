package services

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// TaxCodeSvc defines tax code management
type TaxCodeSvc interface {
	CreateTaxCode(ctx context.Context, tenantID string, req dto.CreateTaxCodeRequest, userID string) (*domain.TaxCode, error)
	GetTaxCode(ctx context.Context, tenantID, taxCodeRef, userID string) (*domain.TaxCode, error)
	ListTaxCodes(ctx context.Context, tenantID, userID string, params dto.ListTaxCodesParams) ([]domain.TaxCode, error)

	// SeedTaxCodes creates the default GST and TDS codes, skipping existing ones.
	SeedTaxCodes(ctx context.Context, tenantID, userID string) (*dto.SeedResult, error)
}

// TaxCalculatorSvc defines the calculations exposed over the API
type TaxCalculatorSvc interface {
	CalculateTaxForCode(ctx context.Context, tenantID string, req dto.CalculateTaxRequest, userID string) (*domain.TaxCalculation, error)
	CalculateTDSForCode(ctx context.Context, tenantID string, req dto.CalculateTDSRequest, userID string) (*domain.TDSCalculation, error)
}

// TaxReportingSvc defines tax transaction queries and summaries
type TaxReportingSvc interface {
	ListTaxTransactions(ctx context.Context, tenantID, userID string, params dto.ListTaxTransactionsParams) (*dto.ListTaxTransactionsResponse, error)
	GetGSTSummary(ctx context.Context, tenantID string, from, to time.Time, userID string) (*domain.GSTSummary, error)
	GetTDSSummary(ctx context.Context, tenantID string, from, to time.Time, userID string) (*domain.TDSSummary, error)
	GetInputCreditBalance(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.InputCreditBalance, error)
	MarkReported(ctx context.Context, tenantID string, from, to time.Time, userID string) (int64, error)
}

// TaxEngine is used by the event handlers without user authorization.
type TaxEngine interface {
	// ResolveTaxCode finds a code by code or ID that is active and valid on date.
	ResolveTaxCode(ctx context.Context, tenantID, taxCodeRef string, date time.Time) (*domain.TaxCode, error)

	// RecordTaxTransaction stores an immutable tax record.
	RecordTaxTransaction(ctx context.Context, txn domain.TaxTransaction) (*domain.TaxTransaction, error)
}

// TaxSvcFacade combines all tax-related service interfaces
type TaxSvcFacade interface {
	TaxCodeSvc
	TaxCalculatorSvc
	TaxReportingSvc
	TaxEngine
}
