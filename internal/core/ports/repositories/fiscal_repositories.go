package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

// FiscalReader defines read operations for fiscal years and periods
type FiscalReader interface {
	// FindYearByID retrieves a year with its periods.
	FindYearByID(ctx context.Context, tenantID, yearID string) (*domain.FiscalYear, error)

	// ListYears retrieves every year of a tenant with periods, ordered by start date.
	ListYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error)

	// FindPeriodByID retrieves a single period.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period containing date, or ErrNotFound.
	FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error)
}

// PeriodTransition describes one lifecycle move applied by TransitionPeriod.
type PeriodTransition struct {
	TenantID string
	PeriodID string
	From     domain.PeriodStatus
	To       domain.PeriodStatus
	// RequireAllPosted rejects the move while unposted entries are dated in the period.
	RequireAllPosted bool
	UserID           string
	Now              time.Time
	Audit            domain.AuditLogEntry
}

// FiscalWriter defines write operations for fiscal years and periods
type FiscalWriter interface {
	// SaveYear persists a year and its twelve periods atomically.
	SaveYear(ctx context.Context, year domain.FiscalYear) error

	// TransitionPeriod locks the period, checks the expected status and the
	// unposted-entry rule, updates it and writes the audit row in one transaction.
	TransitionPeriod(ctx context.Context, t PeriodTransition) (*domain.FiscalPeriod, error)

	// CloseYear posts the closing entry, archives every period and marks the
	// year closed in one transaction. A nil closing entry is skipped.
	CloseYear(ctx context.Context, tenantID, yearID string, closing *domain.JournalEntry, opts PostOptions, audit domain.AuditLogEntry) (*domain.FiscalYear, *domain.JournalEntry, error)
}

// FiscalRepositoryFacade combines all fiscal-related repository interfaces
type FiscalRepositoryFacade interface {
	FiscalReader
	FiscalWriter
}

// AuditRepository stores lifecycle audit rows.
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLogEntry) error
	ListAuditLog(ctx context.Context, tenantID, entityType, entityID string) ([]domain.AuditLogEntry, error)
}
