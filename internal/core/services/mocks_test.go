package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TenantAuthorizer ---
type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.TenantAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID, tenantID string, requiredRole domain.TenantRole) error {
	args := m.Called(ctx, userID, tenantID, requiredRole)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, source, sourceRecordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}

func (m *MockJournalRepository) CountUnpostedBetween(ctx context.Context, tenantID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, tenantID, entryID string, from, to domain.JournalStatus, approvedBy *string, userID string, now time.Time) error {
	return m.Called(ctx, tenantID, entryID, from, to, approvedBy, userID, now).Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, tenantID, entryID string, opts portsrepo.PostOptions) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ReverseEntry(ctx context.Context, tenantID, originalID string, mirror domain.JournalEntry, opts portsrepo.PostOptions, audit domain.AuditLogEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, originalID, mirror, opts, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditRepository) ListAuditLog(ctx context.Context, tenantID, entityType, entityID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, tenantID, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Mock PeriodGate ---
type MockPeriodGate struct {
	mock.Mock
}

var _ portssvc.PeriodGate = (*MockPeriodGate)(nil)

func (m *MockPeriodGate) ValidateTransactionDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

// --- Mock FiscalRepository ---
type MockFiscalRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalRepositoryFacade = (*MockFiscalRepository)(nil)

func (m *MockFiscalRepository) FindYearByID(ctx context.Context, tenantID, yearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) ListYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) FindPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) SaveYear(ctx context.Context, year domain.FiscalYear) error {
	return m.Called(ctx, year).Error(0)
}

func (m *MockFiscalRepository) TransitionPeriod(ctx context.Context, t portsrepo.PeriodTransition) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalRepository) CloseYear(ctx context.Context, tenantID, yearID string, closing *domain.JournalEntry, opts portsrepo.PostOptions, audit domain.AuditLogEntry) (*domain.FiscalYear, *domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, yearID, closing, opts, audit)
	var year *domain.FiscalYear
	if args.Get(0) != nil {
		year = args.Get(0).(*domain.FiscalYear)
	}
	var entry *domain.JournalEntry
	if args.Get(1) != nil {
		entry = args.Get(1).(*domain.JournalEntry)
	}
	return year, entry, args.Error(2)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ListLedgerEntries(ctx context.Context, tenantID, accountID string, from, to time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, tenantID, accountID, from, to, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.LedgerEntry), next, args.Error(2)
}

func (m *MockLedgerRepository) RunningBalanceBefore(ctx context.Context, tenantID, accountID string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) RunningBalanceAsOf(ctx context.Context, tenantID, accountID string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) AccountTotals(ctx context.Context, tenantID string, from *time.Time, to time.Time) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

func (m *MockLedgerRepository) ListPartyEntries(ctx context.Context, tenantID string, partyType domain.PartyType, partyID string, asOf time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, partyType, partyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) PartyBalances(ctx context.Context, tenantID string, partyType domain.PartyType, asOf time.Time) ([]domain.PartyBalance, error) {
	args := m.Called(ctx, tenantID, partyType, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartyBalance), args.Error(1)
}

func (m *MockLedgerRepository) DimensionPostings(ctx context.Context, tenantID string, dimension domain.ProfitDimension, from, to time.Time) ([]domain.DimensionPosting, error) {
	args := m.Called(ctx, tenantID, dimension, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DimensionPosting), args.Error(1)
}

func (m *MockLedgerRepository) CashFlows(ctx context.Context, tenantID, codePrefix string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, codePrefix, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Mock TaxRepository ---
type MockTaxRepository struct {
	mock.Mock
}

var _ portsrepo.TaxRepositoryFacade = (*MockTaxRepository)(nil)

func (m *MockTaxRepository) FindTaxCodeByID(ctx context.Context, tenantID, taxCodeID string) (*domain.TaxCode, error) {
	args := m.Called(ctx, tenantID, taxCodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCode), args.Error(1)
}

func (m *MockTaxRepository) FindTaxCodeByCode(ctx context.Context, tenantID, code string) (*domain.TaxCode, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCode), args.Error(1)
}

func (m *MockTaxRepository) ListTaxCodes(ctx context.Context, tenantID string, taxType *domain.TaxType) ([]domain.TaxCode, error) {
	args := m.Called(ctx, tenantID, taxType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCode), args.Error(1)
}

func (m *MockTaxRepository) SaveTaxCode(ctx context.Context, code domain.TaxCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockTaxRepository) ListTaxTransactions(ctx context.Context, tenantID string, direction *domain.TaxDirection, from, to time.Time, limit int, nextToken *string) ([]domain.TaxTransaction, *string, error) {
	args := m.Called(ctx, tenantID, direction, from, to, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.TaxTransaction), next, args.Error(2)
}

func (m *MockTaxRepository) SumByDirection(ctx context.Context, tenantID string, direction domain.TaxDirection, from, to time.Time) (domain.TaxSplitTotals, error) {
	args := m.Called(ctx, tenantID, direction, from, to)
	return args.Get(0).(domain.TaxSplitTotals), args.Error(1)
}

func (m *MockTaxRepository) TDSBySection(ctx context.Context, tenantID string, from, to time.Time) ([]domain.TDSSectionTotal, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TDSSectionTotal), args.Error(1)
}

func (m *MockTaxRepository) InputCredit(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockTaxRepository) SaveTaxTransaction(ctx context.Context, txn domain.TaxTransaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTaxRepository) MarkReported(ctx context.Context, tenantID string, from, to time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock BankRepository ---
type MockBankRepository struct {
	mock.Mock
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

func (m *MockBankRepository) FindBankAccountByID(ctx context.Context, tenantID, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, tenantID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) ListBankAccounts(ctx context.Context, tenantID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockBankRepository) ListBankTransactions(ctx context.Context, tenantID, bankAccountID string, unreconciledOnly bool, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	args := m.Called(ctx, tenantID, bankAccountID, unreconciledOnly, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.BankTransaction), next, args.Error(2)
}

func (m *MockBankRepository) ListMatchCandidates(ctx context.Context, tenantID, bankAccountID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, tenantID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankRepository) ListUnmatchedLedgerEntries(ctx context.Context, tenantID, glAccountID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, glAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockBankRepository) InsertBankTransaction(ctx context.Context, txn domain.BankTransaction) (*domain.BankAccount, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) ApplyMatches(ctx context.Context, tenantID string, matches []domain.MatchResult) ([]string, error) {
	args := m.Called(ctx, tenantID, matches)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBankRepository) ImportStatement(ctx context.Context, meta domain.StatementImport, rows []domain.StatementRow, newID func() string) (*domain.ImportResult, error) {
	args := m.Called(ctx, meta, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func (m *MockBankRepository) StartReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockBankRepository) FindReconciliationByID(ctx context.Context, tenantID, reconciliationID string) (*domain.BankReconciliation, error) {
	args := m.Called(ctx, tenantID, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankReconciliation), args.Error(1)
}

func (m *MockBankRepository) ReconcileTransactions(ctx context.Context, tenantID, reconciliationID string, transactionIDs []string) (int, error) {
	args := m.Called(ctx, tenantID, reconciliationID, transactionIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockBankRepository) CompleteReconciliation(ctx context.Context, tenantID, reconciliationID, userID string, now time.Time) (*domain.BankReconciliation, error) {
	args := m.Called(ctx, tenantID, reconciliationID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankReconciliation), args.Error(1)
}

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepositoryFacade = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenantsByUserID(ctx context.Context, userID string) ([]domain.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant, owner domain.TenantMember) error {
	return m.Called(ctx, tenant, owner).Error(0)
}

func (m *MockTenantRepository) AddMember(ctx context.Context, member domain.TenantMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockTenantRepository) FindMembership(ctx context.Context, tenantID, userID string) (*domain.TenantMember, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantMember), args.Error(1)
}

func (m *MockTenantRepository) ListMembers(ctx context.Context, tenantID string) ([]domain.TenantMember, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantMember), args.Error(1)
}

func (m *MockTenantRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	return m.Called(ctx, branch).Error(0)
}

func (m *MockTenantRepository) FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockTenantRepository) ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

// --- Mock IntegrationTokenRepository ---
type MockTokenRepository struct {
	mock.Mock
}

var _ portsrepo.IntegrationTokenRepository = (*MockTokenRepository)(nil)

func (m *MockTokenRepository) Create(ctx context.Context, token domain.IntegrationToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenRepository) FindByPrefix(ctx context.Context, prefix string) (*domain.IntegrationToken, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationToken), args.Error(1)
}

func (m *MockTokenRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.IntegrationToken, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IntegrationToken), args.Error(1)
}

func (m *MockTokenRepository) Revoke(ctx context.Context, tenantID, id string, now time.Time) error {
	return m.Called(ctx, tenantID, id, now).Error(0)
}

func (m *MockTokenRepository) TouchLastUsed(ctx context.Context, id string, now time.Time) error {
	return m.Called(ctx, id, now).Error(0)
}

// --- Mocks for the event service collaborators ---
type MockJournalSubmitter struct {
	mock.Mock
}

var _ portssvc.JournalSubmitter = (*MockJournalSubmitter)(nil)

func (m *MockJournalSubmitter) Submit(ctx context.Context, cmd portssvc.JournalCommand) (*domain.JournalEntry, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSubmitter) PostSubmitted(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSubmitter) FindEntriesBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, source, sourceRecordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

type MockAccountResolver struct {
	mock.Mock
}

var _ portssvc.AccountResolver = (*MockAccountResolver)(nil)

func (m *MockAccountResolver) ResolveAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockTaxEngine struct {
	mock.Mock
}

var _ portssvc.TaxEngine = (*MockTaxEngine)(nil)

func (m *MockTaxEngine) ResolveTaxCode(ctx context.Context, tenantID, taxCodeRef string, date time.Time) (*domain.TaxCode, error) {
	args := m.Called(ctx, tenantID, taxCodeRef, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCode), args.Error(1)
}

func (m *MockTaxEngine) RecordTaxTransaction(ctx context.Context, txn domain.TaxTransaction) (*domain.TaxTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxTransaction), args.Error(1)
}

type MockBranchFinder struct {
	mock.Mock
}

var _ portssvc.BranchSvc = (*MockBranchFinder)(nil)

func (m *MockBranchFinder) CreateBranch(ctx context.Context, tenantID string, req dto.CreateBranchRequest, userID string) (*domain.Branch, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchFinder) ListBranches(ctx context.Context, tenantID, userID string) ([]domain.Branch, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchFinder) FindBranch(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}
