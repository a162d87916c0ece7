package services

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// FiscalReaderSvc defines read operations for fiscal data
type FiscalReaderSvc interface {
	GetFiscalYear(ctx context.Context, tenantID, yearID, userID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context, tenantID, userID string) ([]domain.FiscalYear, error)
	GetPeriodForDate(ctx context.Context, tenantID string, date time.Time, userID string) (*domain.FiscalPeriod, error)
}

// FiscalWriterSvc defines the period and year lifecycle
type FiscalWriterSvc interface {
	// CreateFiscalYear opens a year of twelve OPEN monthly periods.
	CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error)

	SoftClosePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error)
	ReopenPeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error)
	HardClosePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error)
	ArchivePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error)

	// CloseFiscalYear posts the closing entry and archives the year.
	CloseFiscalYear(ctx context.Context, tenantID, yearID string, req dto.CloseFiscalYearRequest, userID string) (*domain.YearCloseResult, error)
}

// PeriodGate decides whether entries may be dated on a day.
type PeriodGate interface {
	// ValidateTransactionDate returns the period accepting date, or a
	// FiscalPeriodClosedError.
	ValidateTransactionDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)
}

// SoftClosePolicy is consulted before an entry is accepted into a
// SOFT_CLOSE period. Returning an error rejects the entry.
type SoftClosePolicy func(ctx context.Context, period domain.FiscalPeriod) error

// FiscalSvcFacade combines all fiscal-related service interfaces
type FiscalSvcFacade interface {
	FiscalReaderSvc
	FiscalWriterSvc
	PeriodGate
}
