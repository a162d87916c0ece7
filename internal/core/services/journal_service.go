package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
)

// journalService provides the journal entry lifecycle.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	auditRepo   portsrepo.AuditRepository
	periodGate  portssvc.PeriodGate
	metrics     *observability.Metrics
}

// JournalServiceOption configures the journal service
type JournalServiceOption func(*journalService)

// WithJournalMetrics counts postings and posting failures.
func WithJournalMetrics(m *observability.Metrics) JournalServiceOption {
	return func(s *journalService) {
		s.metrics = m
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	auditRepo portsrepo.AuditRepository,
	periodGate portssvc.PeriodGate,
	authorizer portssvc.TenantAuthorizerSvc,
	opts ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		periodGate:  periodGate,
	}
	svc.TenantAuthorizer = authorizer
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and stores a manual entry.
func (s *journalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		s.LogWarn(ctx, err, "Authorization failed for CreateEntry", slog.String("user_id", userID), slog.String("tenant_id", tenantID))
		return nil, err
	}
	return s.Submit(ctx, portssvc.JournalCommand{
		TenantID:        tenantID,
		BranchID:        req.BranchID,
		EntryDate:       req.EntryDate.Time,
		Description:     req.Description,
		Reference:       req.Reference,
		SourceModule:    domain.SourceManual,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		ExchangeRate:    req.ExchangeRate,
		Lines:           req.ToLineInstructions(),
		RequireApproval: req.RequireApproval,
		AutoPost:        req.AutoPost,
		UserID:          userID,
	})
}

// Submit builds, validates and stores an entry. Entries that need approval
// are stored PENDING_APPROVAL and never auto-posted.
func (s *journalService) Submit(ctx context.Context, cmd portssvc.JournalCommand) (*domain.JournalEntry, error) {
	now := time.Now().UTC()
	entry, err := domain.NewJournalEntry(domain.NewJournalEntryParams{
		EntryID:        uuid.NewString(),
		TenantID:       cmd.TenantID,
		BranchID:       cmd.BranchID,
		EntryDate:      cmd.EntryDate,
		Description:    cmd.Description,
		Reference:      cmd.Reference,
		SourceModule:   cmd.SourceModule,
		SourceRecordID: cmd.SourceRecordID,
		CurrencyCode:   cmd.CurrencyCode,
		ExchangeRate:   cmd.ExchangeRate,
		Lines:          cmd.Lines,
		NewLineID:      uuid.NewString,
		CreatedBy:      cmd.UserID,
		Now:            now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.validateAccounts(ctx, entry); err != nil {
		return nil, err
	}
	period, err := s.periodGate.ValidateTransactionDate(ctx, entry.TenantID, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	entry.FiscalPeriodID = period.FiscalPeriodID
	entry.FiscalYearID = period.FiscalYearID
	entry.FiscalYear = period.YearLabel
	if cmd.RequireApproval {
		entry.Status = domain.PendingApproval
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("source", string(entry.SourceModule)),
		slog.String("status", string(entry.Status)))

	if cmd.AutoPost && !cmd.RequireApproval {
		// validated above; go straight to the posting transaction
		return s.commitPost(ctx, entry, cmd.UserID)
	}
	return entry, nil
}

// PostSubmitted posts a stored DRAFT without authorization.
func (s *journalService) PostSubmitted(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	return s.post(ctx, tenantID, entryID, userID)
}

// FindEntriesBySource retrieves entries for a source record without authorization.
func (s *journalService) FindEntriesBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID string) ([]domain.JournalEntry, error) {
	return s.journalRepo.FindEntriesBySource(ctx, tenantID, source, sourceRecordID)
}

// validateAccounts checks every line targets an existing postable account of the tenant.
func (s *journalService) validateAccounts(ctx context.Context, entry *domain.JournalEntry) error {
	ids := entry.AccountIDs()
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entry.TenantID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for entry", slog.String("entry_id", entry.EntryID))
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if err := acc.CanPost(); err != nil {
			return err
		}
	}
	return nil
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// GetEntryHistory lists an entry's audit rows, oldest first.
func (s *journalService) GetEntryHistory(ctx context.Context, tenantID, entryID, userID string) ([]domain.AuditLogEntry, error) {
	if _, err := s.GetEntry(ctx, tenantID, entryID, userID); err != nil {
		return nil, err
	}
	history, err := s.auditRepo.ListAuditLog(ctx, tenantID, "journal_entry", entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entry history", slog.String("entry_id", entryID))
		return nil, err
	}
	return history, nil
}

// ListEntries retrieves a page of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, tenantID, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var filter portsrepo.JournalFilter
	if params.Status != "" {
		st := domain.JournalStatus(params.Status)
		filter.Status = &st
	}
	if params.BranchID != "" {
		filter.BranchID = &params.BranchID
	}
	if params.SourceModule != "" {
		src := domain.SourceModule(strings.ToUpper(params.SourceModule))
		filter.SourceModule = &src
	}
	filter.From, filter.To = params.From, params.To
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}

	entries, next, err := s.journalRepo.ListEntries(ctx, tenantID, filter, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return &dto.ListJournalEntriesResponse{Entries: entries, NextToken: next}, nil
}

// FindBySource retrieves the entries produced for one source record.
func (s *journalService) FindBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID, userID string) ([]domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	entries, err := s.journalRepo.FindEntriesBySource(ctx, tenantID, source, sourceRecordID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// SubmitForApproval moves a DRAFT to PENDING_APPROVAL.
func (s *journalService) SubmitForApproval(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, apperrors.NewStateError("journal entry", entryID, string(entry.Status), "submit")
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, tenantID, entryID, domain.Draft, domain.PendingApproval, nil, userID, now); err != nil {
		return nil, err
	}
	entry.Status = domain.PendingApproval
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// ApproveEntry records the approver and returns the entry to DRAFT so it can be posted.
func (s *journalService) ApproveEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleApprover); err != nil {
		return nil, err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.PendingApproval {
		return nil, apperrors.NewStateError("journal entry", entryID, string(entry.Status), "approve")
	}
	if entry.CreatedBy == userID {
		return nil, fmt.Errorf("%w: an entry cannot be approved by its creator", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, tenantID, entryID, domain.PendingApproval, domain.Draft, &userID, userID, now); err != nil {
		return nil, err
	}
	if err := s.auditRepo.SaveAuditLog(ctx, domain.AuditLogEntry{
		AuditID:     uuid.NewString(),
		TenantID:    tenantID,
		EntityType:  "journal_entry",
		EntityID:    entryID,
		Action:      "APPROVE",
		FromStatus:  string(domain.PendingApproval),
		ToStatus:    string(domain.Draft),
		PerformedBy: userID,
		PerformedAt: now,
	}); err != nil {
		s.LogError(ctx, err, "Failed to write approval audit log", slog.String("entry_id", entryID))
	}

	entry.Status = domain.Draft
	entry.ApprovedBy = &userID
	entry.ApprovedAt = &now
	s.LogInfo(ctx, "Journal entry approved", slog.String("entry_id", entryID), slog.String("approver_id", userID))
	return entry, nil
}

// PostEntry posts a DRAFT to the ledger.
func (s *journalService) PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.post(ctx, tenantID, entryID, userID)
}

// post re-validates a stored DRAFT and hands it to the repository, which
// performs the whole posting in one transaction.
func (s *journalService) post(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.prePost(ctx, entry); err != nil {
		s.metrics.IncPostingFailure(failureReason(err))
		return nil, err
	}
	return s.commitPost(ctx, entry, userID)
}

func (s *journalService) prePost(ctx context.Context, entry *domain.JournalEntry) error {
	if err := entry.CanPost(); err != nil {
		return err
	}
	if err := entry.EnsureBalanced(); err != nil {
		return err
	}
	if err := s.validateAccounts(ctx, entry); err != nil {
		return err
	}
	_, err := s.periodGate.ValidateTransactionDate(ctx, entry.TenantID, entry.EntryDate)
	return err
}

func (s *journalService) commitPost(ctx context.Context, entry *domain.JournalEntry, userID string) (*domain.JournalEntry, error) {
	posted, err := s.journalRepo.PostEntry(ctx, entry.TenantID, entry.EntryID, portsrepo.PostOptions{
		PostedBy: userID,
		PostedAt: time.Now().UTC(),
	})
	if err != nil {
		s.metrics.IncPostingFailure(failureReason(err))
		if !errors.Is(err, apperrors.ErrState) && !errors.Is(err, apperrors.ErrConcurrency) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entry.EntryID))
		}
		return nil, err
	}
	s.metrics.IncPosted(string(posted.SourceModule))
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.Int64("entry_number", derefInt64(posted.EntryNumber)))
	return posted, nil
}

// ReverseEntry posts the mirror of a POSTED entry and marks the original REVERSED.
func (s *journalService) ReverseEntry(ctx context.Context, tenantID, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleApprover); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if err := original.CanReverse(); err != nil {
		return nil, err
	}

	date, period, err := s.reversalDate(ctx, original, req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	mirror := original.Mirror(uuid.NewString(), date, reason, uuid.NewString, userID, now)
	mirror.FiscalPeriodID = period.FiscalPeriodID
	mirror.FiscalYearID = period.FiscalYearID
	mirror.FiscalYear = period.YearLabel

	audit := domain.AuditLogEntry{
		AuditID:     uuid.NewString(),
		TenantID:    tenantID,
		EntityType:  "journal_entry",
		EntityID:    entryID,
		Action:      "REVERSE",
		FromStatus:  string(domain.Posted),
		ToStatus:    string(domain.Reversed),
		Reason:      reason,
		Details:     map[string]any{"reversalEntryID": mirror.EntryID},
		PerformedBy: userID,
		PerformedAt: now,
	}

	reversal, err := s.journalRepo.ReverseEntry(ctx, tenantID, entryID, *mirror, portsrepo.PostOptions{PostedBy: userID, PostedAt: now}, audit)
	if err != nil {
		s.metrics.IncPostingFailure(failureReason(err))
		if !errors.Is(err, apperrors.ErrState) {
			s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	s.metrics.IncPosted(string(domain.SourceReversal))
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return reversal, nil
}

// reversalDate picks the requested date, else the original date while its
// period still accepts postings, else today.
func (s *journalService) reversalDate(ctx context.Context, original *domain.JournalEntry, requested *dto.Date) (time.Time, *domain.FiscalPeriod, error) {
	if requested != nil && !requested.IsZero() {
		period, err := s.periodGate.ValidateTransactionDate(ctx, original.TenantID, requested.Time)
		if err != nil {
			return time.Time{}, nil, err
		}
		return requested.Time, period, nil
	}
	if period, err := s.periodGate.ValidateTransactionDate(ctx, original.TenantID, original.EntryDate); err == nil {
		return original.EntryDate, period, nil
	}
	today := domain.DateOnly(time.Now())
	period, err := s.periodGate.ValidateTransactionDate(ctx, original.TenantID, today)
	if err != nil {
		return time.Time{}, nil, err
	}
	return today, period, nil
}

// failureReason buckets an error for the posting failure counter.
func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrState):
		return "state"
	case errors.Is(err, apperrors.ErrConcurrency):
		return "concurrency"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
