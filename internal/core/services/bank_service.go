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
	"github.com/SscSPs/travel_ledger/internal/matching"
	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/SscSPs/travel_ledger/internal/statement"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
)

// bankService implements the BankSvcFacade interface
type bankService struct {
	BaseService
	bankRepo    portsrepo.BankRepositoryFacade
	accountRepo portsrepo.AccountReader
	metrics     *observability.Metrics
}

// BankServiceOption configures the bank service
type BankServiceOption func(*bankService)

// WithBankMetrics counts imported rows and match results.
func WithBankMetrics(m *observability.Metrics) BankServiceOption {
	return func(s *bankService) {
		s.metrics = m
	}
}

// NewBankService creates a new bank reconciliation service
func NewBankService(bankRepo portsrepo.BankRepositoryFacade, accountRepo portsrepo.AccountReader, authorizer portssvc.TenantAuthorizerSvc, opts ...BankServiceOption) portssvc.BankSvcFacade {
	svc := &bankService{bankRepo: bankRepo, accountRepo: accountRepo}
	svc.TenantAuthorizer = authorizer
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

// CreateBankAccount registers a bank account against an asset ledger account
func (s *bankService) CreateBankAccount(ctx context.Context, tenantID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	gl, err := s.accountRepo.FindAccountByID(ctx, tenantID, req.GLAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: GL account %s not found", apperrors.ErrValidation, req.GLAccountID)
		}
		return nil, err
	}
	if gl.AccountType != domain.Asset || gl.IsHeader {
		return nil, fmt.Errorf("%w: bank accounts must map to a postable ASSET account", apperrors.ErrValidation)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = gl.CurrencyCode
	}
	now := time.Now().UTC()
	acc := domain.BankAccount{
		BankAccountID:       uuid.NewString(),
		TenantID:            tenantID,
		BranchID:            req.BranchID,
		GLAccountID:         gl.AccountID,
		Name:                strings.TrimSpace(req.Name),
		BankName:            strings.TrimSpace(req.BankName),
		AccountNumberMasked: domain.MaskAccountNumber(req.AccountNumber),
		CurrencyCode:        currency,
		OpeningBalance:      req.OpeningBalance,
		CurrentBalance:      req.OpeningBalance,
		IsActive:            true,
		AuditFields:         domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if err := s.bankRepo.SaveBankAccount(ctx, acc); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save bank account", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", acc.BankAccountID), slog.String("gl_account_id", gl.AccountID))
	return &acc, nil
}

// GetBankAccount retrieves a bank account
func (s *bankService) GetBankAccount(ctx context.Context, tenantID, bankAccountID, userID string) (*domain.BankAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.bankRepo.FindBankAccountByID(ctx, tenantID, bankAccountID)
}

// ListBankAccounts retrieves the tenant's bank accounts
func (s *bankService) ListBankAccounts(ctx context.Context, tenantID, userID string) ([]domain.BankAccount, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.bankRepo.ListBankAccounts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}

// RecordTransaction appends a manual feed row
func (s *bankService) RecordTransaction(ctx context.Context, tenantID, bankAccountID string, req dto.RecordBankTransactionRequest, userID string) (*domain.BankTransaction, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.TransactionDate.IsZero() {
		return nil, fmt.Errorf("%w: transactionDate is required", apperrors.ErrValidation)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount cannot be zero", apperrors.ErrValidation)
	}

	txn := domain.BankTransaction{
		BankTransactionID: uuid.NewString(),
		TenantID:          tenantID,
		BankAccountID:     bankAccountID,
		TransactionDate:   domain.DateOnly(req.TransactionDate.Time),
		Description:       strings.TrimSpace(req.Description),
		Reference:         strings.TrimSpace(req.Reference),
		Amount:            req.Amount.Round(2),
		Source:            domain.BankSourceManual,
		CreatedAt:         time.Now().UTC(),
		CreatedBy:         userID,
	}
	if req.ValueDate != nil && !req.ValueDate.IsZero() {
		vd := domain.DateOnly(req.ValueDate.Time)
		txn.ValueDate = &vd
	}
	txn.DedupKey = domain.DedupKey(txn.TransactionDate, txn.Amount, txn.Reference)

	acc, err := s.bankRepo.InsertBankTransaction(ctx, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to record bank transaction", slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}
	s.LogDebug(ctx, "Bank transaction recorded",
		slog.String("bank_transaction_id", txn.BankTransactionID),
		slog.String("balance", acc.CurrentBalance.String()))
	return &txn, nil
}

// ListTransactions retrieves a page of the bank feed
func (s *bankService) ListTransactions(ctx context.Context, tenantID, bankAccountID, userID string, params dto.ListBankTransactionsParams) (*dto.ListBankTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	txns, next, err := s.bankRepo.ListBankTransactions(ctx, tenantID, bankAccountID, params.UnreconciledOnly, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []domain.BankTransaction{}
	}
	return &dto.ListBankTransactionsResponse{Transactions: txns, NextToken: next}, nil
}

// ImportStatement parses a statement file and imports its rows
func (s *bankService) ImportStatement(ctx context.Context, tenantID, bankAccountID string, req dto.ImportStatementRequest, userID string) (*domain.ImportResult, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("%w: statement file is empty", apperrors.ErrValidation)
	}
	if _, err := s.bankRepo.FindBankAccountByID(ctx, tenantID, bankAccountID); err != nil {
		return nil, err
	}

	rows, rowErrs, err := statement.Parse(req.Content, req.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	meta := domain.StatementImport{
		ImportID:      uuid.NewString(),
		TenantID:      tenantID,
		BankAccountID: bankAccountID,
		FileName:      req.FileName,
		Profile:       req.Profile,
		Errors:        len(rowErrs),
		RowErrors:     rowErrs,
		ImportedAt:    time.Now().UTC(),
		ImportedBy:    userID,
	}
	result, err := s.bankRepo.ImportStatement(ctx, meta, rows, uuid.NewString)
	if err != nil {
		s.LogError(ctx, err, "Statement import failed", slog.String("bank_account_id", bankAccountID), slog.String("file", req.FileName))
		return nil, err
	}

	s.metrics.AddStatementRows("imported", result.Imported)
	s.metrics.AddStatementRows("duplicate", result.Duplicates)
	s.metrics.AddStatementRows("error", result.Errors)
	s.LogInfo(ctx, "Statement imported",
		slog.String("bank_account_id", bankAccountID),
		slog.String("import_id", result.ImportID),
		slog.Int("imported", result.Imported),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("errors", result.Errors))
	return result, nil
}

// StartReconciliation opens a session for a statement
func (s *bankService) StartReconciliation(ctx context.Context, tenantID, bankAccountID string, req dto.StartReconciliationRequest, userID string) (*domain.BankReconciliation, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.StatementDate.IsZero() {
		return nil, fmt.Errorf("%w: statementDate is required", apperrors.ErrValidation)
	}
	if _, err := s.bankRepo.FindBankAccountByID(ctx, tenantID, bankAccountID); err != nil {
		return nil, err
	}
	rec := domain.BankReconciliation{
		ReconciliationID: uuid.NewString(),
		TenantID:         tenantID,
		BankAccountID:    bankAccountID,
		StatementDate:    domain.DateOnly(req.StatementDate.Time),
		StatementBalance: req.StatementBalance,
		Status:           domain.ReconciliationInProgress,
		StartedBy:        userID,
		StartedAt:        time.Now().UTC(),
	}
	if err := s.bankRepo.StartReconciliation(ctx, rec); err != nil {
		if !errors.Is(err, apperrors.ErrState) {
			s.LogError(ctx, err, "Failed to start reconciliation", slog.String("bank_account_id", bankAccountID))
		}
		return nil, err
	}
	return &rec, nil
}

// GetReconciliation retrieves a session
func (s *bankService) GetReconciliation(ctx context.Context, tenantID, reconciliationID, userID string) (*domain.BankReconciliation, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.bankRepo.FindReconciliationByID(ctx, tenantID, reconciliationID)
}

// ReconcileTransactions tags transactions with an in-progress session
func (s *bankService) ReconcileTransactions(ctx context.Context, tenantID, reconciliationID string, req dto.ReconcileTransactionsRequest, userID string) (int, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleMember); err != nil {
		return 0, err
	}
	rec, err := s.bankRepo.FindReconciliationByID(ctx, tenantID, reconciliationID)
	if err != nil {
		return 0, err
	}
	if rec.Status != domain.ReconciliationInProgress {
		return 0, apperrors.NewStateError("reconciliation", reconciliationID, string(rec.Status), "reconcile transactions")
	}

	ids := make([]string, 0, len(req.TransactionIDs))
	seen := make(map[string]struct{}, len(req.TransactionIDs))
	for _, id := range req.TransactionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no transactions given", apperrors.ErrValidation)
	}

	n, err := s.bankRepo.ReconcileTransactions(ctx, tenantID, reconciliationID, ids)
	if err != nil {
		s.LogWarn(ctx, err, "Reconciliation batch rejected", slog.String("reconciliation_id", reconciliationID), slog.Int("count", len(ids)))
		return 0, err
	}
	return n, nil
}

// CompleteReconciliation closes a session and records the reconciled balance
func (s *bankService) CompleteReconciliation(ctx context.Context, tenantID, reconciliationID, userID string) (*domain.BankReconciliation, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleApprover); err != nil {
		return nil, err
	}
	rec, err := s.bankRepo.CompleteReconciliation(ctx, tenantID, reconciliationID, userID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrState) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to complete reconciliation", slog.String("reconciliation_id", reconciliationID))
		}
		return nil, err
	}
	attrs := []any{slog.String("reconciliation_id", reconciliationID)}
	if rec.Difference != nil {
		attrs = append(attrs, slog.String("difference", rec.Difference.String()))
	}
	s.LogInfo(ctx, "Reconciliation completed", attrs...)
	return rec, nil
}

// AutoMatch proposes ledger matches for the bank account's unmatched feed rows
func (s *bankService) AutoMatch(ctx context.Context, tenantID, bankAccountID string, apply bool, userID string) (*domain.AutoMatchSummary, error) {
	role := domain.RoleReadOnly
	if apply {
		role = domain.RoleMember
	}
	if err := s.AuthorizeUser(ctx, userID, tenantID, role); err != nil {
		return nil, err
	}
	acc, err := s.bankRepo.FindBankAccountByID(ctx, tenantID, bankAccountID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.bankRepo.ListMatchCandidates(ctx, tenantID, bankAccountID)
	if err != nil {
		return nil, err
	}
	ledgerRows, err := s.bankRepo.ListUnmatchedLedgerEntries(ctx, tenantID, acc.GLAccountID)
	if err != nil {
		return nil, err
	}

	results := matching.Run(candidates, ledgerRows)
	summary := &domain.AutoMatchSummary{BankAccountID: bankAccountID, Results: results}
	var exact []domain.MatchResult
	for _, r := range results {
		switch r.Type {
		case domain.MatchExact:
			summary.Exact++
			exact = append(exact, r)
		case domain.MatchSuggested:
			summary.Suggested++
		default:
			summary.Unmatched++
		}
	}

	if apply && len(exact) > 0 {
		appliedIDs, err := s.bankRepo.ApplyMatches(ctx, tenantID, exact)
		if err != nil {
			s.LogError(ctx, err, "Failed to store matches", slog.String("bank_account_id", bankAccountID))
			return nil, err
		}
		applied := make(map[string]struct{}, len(appliedIDs))
		for _, id := range appliedIDs {
			applied[id] = struct{}{}
		}
		summary.Applied = len(applied)
		for i := range summary.Results {
			if _, ok := applied[summary.Results[i].BankTransactionID]; ok && summary.Results[i].Type == domain.MatchExact {
				summary.Results[i].Applied = true
			}
		}
	}

	s.metrics.AddMatches(string(domain.MatchExact), summary.Exact)
	s.metrics.AddMatches(string(domain.MatchSuggested), summary.Suggested)
	s.metrics.AddMatches(string(domain.MatchNone), summary.Unmatched)
	s.LogInfo(ctx, "Auto-match finished",
		slog.String("bank_account_id", bankAccountID),
		slog.Int("exact", summary.Exact),
		slog.Int("suggested", summary.Suggested),
		slog.Int("unmatched", summary.Unmatched),
		slog.Int("applied", summary.Applied))
	return summary, nil
}
