package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/google/uuid"
)

// fiscalService implements the FiscalSvcFacade interface
type fiscalService struct {
	BaseService
	fiscalRepo  portsrepo.FiscalRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
	accountRepo portsrepo.AccountReader
	softClose   portssvc.SoftClosePolicy
	metrics     *observability.Metrics
}

// FiscalServiceOption configures the fiscal service
type FiscalServiceOption func(*fiscalService)

// WithSoftClosePolicy installs the hook consulted for SOFT_CLOSE periods.
func WithSoftClosePolicy(p portssvc.SoftClosePolicy) FiscalServiceOption {
	return func(s *fiscalService) {
		s.softClose = p
	}
}

// WithFiscalMetrics counts period transitions.
func WithFiscalMetrics(m *observability.Metrics) FiscalServiceOption {
	return func(s *fiscalService) {
		s.metrics = m
	}
}

// NewFiscalService creates a new fiscal service
func NewFiscalService(
	fiscalRepo portsrepo.FiscalRepositoryFacade,
	ledgerRepo portsrepo.LedgerReader,
	accountRepo portsrepo.AccountReader,
	authorizer portssvc.TenantAuthorizerSvc,
	opts ...FiscalServiceOption,
) portssvc.FiscalSvcFacade {
	svc := &fiscalService{
		fiscalRepo:  fiscalRepo,
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
	svc.TenantAuthorizer = authorizer
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// ApproverSoftClosePolicy only lets APPROVERs date entries into a SOFT_CLOSE
// period. The acting user is read from the request context; event
// submissions carry no user and are rejected.
func ApproverSoftClosePolicy(authorizer portssvc.TenantAuthorizerSvc) portssvc.SoftClosePolicy {
	return func(ctx context.Context, period domain.FiscalPeriod) error {
		userID, ok := middleware.GetUserIDFromCtx(ctx)
		if !ok || strings.HasPrefix(userID, "integration:") {
			return &apperrors.FiscalPeriodClosedError{Date: period.StartDate, PeriodName: period.Name, Status: string(period.Status)}
		}
		if err := authorizer.AuthorizeUserAction(ctx, userID, period.TenantID, domain.RoleApprover); err != nil {
			return fmt.Errorf("%w: period %s is soft-closed and needs an approver", apperrors.ErrForbidden, period.Name)
		}
		return nil
	}
}

// CreateFiscalYear opens a year of twelve monthly periods
func (s *fiscalService) CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	yearID := uuid.NewString()
	year, err := domain.NewFiscalYear(domain.NewFiscalYearParams{
		FiscalYearID: yearID,
		TenantID:     tenantID,
		Name:         req.Name,
		StartDate:    req.StartDate.Time,
		NewPeriodID:  uuid.NewString,
		CreatedBy:    userID,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.fiscalRepo.ListYears(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fiscal years", slog.String("tenant_id", tenantID))
		return nil, err
	}
	for _, other := range existing {
		if year.Overlaps(other) {
			return nil, fmt.Errorf("%w: fiscal year %s overlaps %s", apperrors.ErrValidation, year.Name, other.Name)
		}
	}

	if err := s.fiscalRepo.SaveYear(ctx, *year); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year", slog.String("tenant_id", tenantID))
		return nil, err
	}
	s.LogInfo(ctx, "Fiscal year created",
		slog.String("tenant_id", tenantID),
		slog.String("fiscal_year_id", yearID),
		slog.String("name", year.Name))
	return year, nil
}

// GetFiscalYear retrieves a year with its periods
func (s *fiscalService) GetFiscalYear(ctx context.Context, tenantID, yearID, userID string) (*domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.fiscalRepo.FindYearByID(ctx, tenantID, yearID)
}

// ListFiscalYears retrieves every year of the tenant
func (s *fiscalService) ListFiscalYears(ctx context.Context, tenantID, userID string) ([]domain.FiscalYear, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	years, err := s.fiscalRepo.ListYears(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if years == nil {
		return []domain.FiscalYear{}, nil
	}
	return years, nil
}

// GetPeriodForDate retrieves the period containing date
func (s *fiscalService) GetPeriodForDate(ctx context.Context, tenantID string, date time.Time, userID string) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.fiscalRepo.FindPeriodForDate(ctx, tenantID, domain.DateOnly(date))
}

func (s *fiscalService) SoftClosePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	return s.transition(ctx, tenantID, periodID, domain.ActionSoftClose, req.Reason, userID, domain.RoleApprover)
}

// ReopenPeriod moves a SOFT_CLOSE period back to OPEN; a reason is required.
func (s *fiscalService) ReopenPeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: a reason is required to reopen a period", apperrors.ErrValidation)
	}
	return s.transition(ctx, tenantID, periodID, domain.ActionReopen, req.Reason, userID, domain.RoleApprover)
}

// HardClosePeriod closes a period for good once nothing dated in it is unposted.
func (s *fiscalService) HardClosePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	return s.transition(ctx, tenantID, periodID, domain.ActionHardClose, req.Reason, userID, domain.RoleAdmin)
}

func (s *fiscalService) ArchivePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	return s.transition(ctx, tenantID, periodID, domain.ActionArchive, req.Reason, userID, domain.RoleAdmin)
}

func (s *fiscalService) transition(ctx context.Context, tenantID, periodID string, action domain.PeriodAction, reason, userID string, role domain.TenantRole) (*domain.FiscalPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, role); err != nil {
		return nil, err
	}
	period, err := s.fiscalRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	prev, err := period.Transition(action)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated, err := s.fiscalRepo.TransitionPeriod(ctx, portsrepo.PeriodTransition{
		TenantID:         tenantID,
		PeriodID:         periodID,
		From:             prev,
		To:               period.Status,
		RequireAllPosted: action == domain.ActionHardClose,
		UserID:           userID,
		Now:              now,
		Audit: domain.AuditLogEntry{
			AuditID:     uuid.NewString(),
			TenantID:    tenantID,
			EntityType:  "fiscal_period",
			EntityID:    periodID,
			Action:      string(action),
			FromStatus:  string(prev),
			ToStatus:    string(period.Status),
			Reason:      reason,
			PerformedBy: userID,
			PerformedAt: now,
		},
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrState) {
			s.LogError(ctx, err, "Failed to transition fiscal period",
				slog.String("period_id", periodID),
				slog.String("action", string(action)))
		}
		return nil, err
	}

	s.metrics.IncPeriodTransition(string(updated.Status))
	s.LogInfo(ctx, "Fiscal period transitioned",
		slog.String("period_id", periodID),
		slog.String("from", string(prev)),
		slog.String("to", string(updated.Status)))
	return updated, nil
}

// ValidateTransactionDate returns the period accepting date. OPEN periods
// always accept; SOFT_CLOSE periods accept subject to the soft-close policy.
func (s *fiscalService) ValidateTransactionDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	day := domain.DateOnly(date)
	period, err := s.fiscalRepo.FindPeriodForDate(ctx, tenantID, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.FiscalPeriodClosedError{Date: day}
		}
		return nil, err
	}

	switch period.Status {
	case domain.PeriodOpen:
		return period, nil
	case domain.PeriodSoftClose:
		if s.softClose != nil {
			if err := s.softClose(ctx, *period); err != nil {
				return nil, err
			}
		}
		return period, nil
	default:
		return nil, &apperrors.FiscalPeriodClosedError{Date: day, PeriodName: period.Name, Status: string(period.Status)}
	}
}

// CloseFiscalYear zeroes revenue and expense into retained earnings, archives
// every period and marks the year closed.
func (s *fiscalService) CloseFiscalYear(ctx context.Context, tenantID, yearID string, req dto.CloseFiscalYearRequest, userID string) (*domain.YearCloseResult, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	year, err := s.fiscalRepo.FindYearByID(ctx, tenantID, yearID)
	if err != nil {
		return nil, err
	}
	if year.IsClosed {
		return nil, apperrors.NewStateError("fiscal year", year.Name, "CLOSED", "close")
	}
	if !year.AllPeriodsClosed() {
		return nil, apperrors.NewStateError("fiscal year", year.Name, "OPEN", "close")
	}

	re, err := s.retainedEarnings(ctx, tenantID, req.RetainedEarningsAccountID)
	if err != nil {
		return nil, err
	}

	start := year.StartDate
	totals, err := s.ledgerRepo.AccountTotals(ctx, tenantID, &start, year.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to total accounts for year close", slog.String("fiscal_year_id", yearID))
		return nil, err
	}
	lines, revenue, expense, net := domain.ClosingLines(totals, re.AccountID)

	now := time.Now().UTC()
	var closing *domain.JournalEntry
	if len(lines) > 0 {
		entryID := uuid.NewString()
		closing, err = domain.NewJournalEntry(domain.NewJournalEntryParams{
			EntryID:        entryID,
			TenantID:       tenantID,
			EntryDate:      year.EndDate,
			Description:    "Year-end close " + year.Name,
			Reference:      year.Name,
			SourceModule:   domain.SourceFiscalClose,
			SourceRecordID: yearID,
			Lines:          lines,
			NewLineID:      uuid.NewString,
			CreatedBy:      userID,
			Now:            now,
		})
		if err != nil {
			return nil, err
		}
		last := year.Periods[len(year.Periods)-1]
		closing.FiscalYearID = yearID
		closing.FiscalPeriodID = last.FiscalPeriodID
		closing.FiscalYear = year.Label()
	}

	audit := domain.AuditLogEntry{
		AuditID:     uuid.NewString(),
		TenantID:    tenantID,
		EntityType:  "fiscal_year",
		EntityID:    yearID,
		Action:      "CLOSE",
		FromStatus:  "OPEN",
		ToStatus:    "CLOSED",
		Details:     map[string]any{"netIncome": net.StringFixed(2), "retainedEarningsAccountID": re.AccountID},
		PerformedBy: userID,
		PerformedAt: now,
	}
	closedYear, posted, err := s.fiscalRepo.CloseYear(ctx, tenantID, yearID, closing,
		portsrepo.PostOptions{PostedBy: userID, PostedAt: now, AllowClosedPeriod: true}, audit)
	if err != nil {
		s.LogError(ctx, err, "Failed to close fiscal year", slog.String("fiscal_year_id", yearID))
		return nil, err
	}
	if posted != nil {
		s.metrics.IncPosted(string(domain.SourceFiscalClose))
	}

	s.LogInfo(ctx, "Fiscal year closed",
		slog.String("fiscal_year_id", yearID),
		slog.String("net_income", net.StringFixed(2)))
	return &domain.YearCloseResult{
		FiscalYear:   *closedYear,
		ClosingEntry: posted,
		TotalRevenue: revenue,
		TotalExpense: expense,
		NetIncome:    net,
	}, nil
}

func (s *fiscalService) retainedEarnings(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	var (
		acc *domain.Account
		err error
	)
	if accountID != "" {
		acc, err = s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	} else {
		acc, err = s.accountRepo.FindAccountByCode(ctx, tenantID, domain.CodeRetainedEarnings)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: retained earnings account not found", apperrors.ErrValidation)
		}
		return nil, err
	}
	if acc.AccountType != domain.Equity {
		return nil, fmt.Errorf("%w: retained earnings account %s must be an EQUITY account", apperrors.ErrValidation, acc.Code)
	}
	if err := acc.CanPost(); err != nil {
		return nil, err
	}
	return acc, nil
}
