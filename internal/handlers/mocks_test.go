package handlers

import (
	"context"
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, tenantID, code, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string) error {
	args := m.Called(ctx, tenantID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) SeedChartOfAccounts(ctx context.Context, tenantID, userID string) (*dto.SeedResult, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SeedResult), args.Error(1)
}

func (m *MockAccountService) ResolveAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) entryResult(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, tenantID, entryID, userID))
}

func (m *MockJournalService) ListEntries(ctx context.Context, tenantID, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, tenantID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) FindBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID, userID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, source, sourceRecordID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntryHistory(ctx context.Context, tenantID, entryID, userID string) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, tenantID, req, userID))
}

func (m *MockJournalService) SubmitForApproval(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, tenantID, entryID, userID))
}

func (m *MockJournalService) ApproveEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, tenantID, entryID, userID))
}

func (m *MockJournalService) PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, tenantID, entryID, userID))
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, tenantID, entryID string, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, tenantID, entryID, req, userID))
}

func (m *MockJournalService) Submit(ctx context.Context, cmd portssvc.JournalCommand) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, cmd))
}

func (m *MockJournalService) PostSubmitted(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	return m.entryResult(m.Called(ctx, tenantID, entryID, userID))
}

func (m *MockJournalService) FindEntriesBySource(ctx context.Context, tenantID string, source domain.SourceModule, sourceRecordID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, source, sourceRecordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock EventService ---
type MockEventService struct {
	mock.Mock
}

var _ portssvc.EventSvc = (*MockEventService)(nil)

func (m *MockEventService) result(args mock.Arguments) (*domain.EventResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventResult), args.Error(1)
}

func (m *MockEventService) HandleBookingCreated(ctx context.Context, e domain.BookingCreated) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) HandlePaymentReceived(ctx context.Context, e domain.PaymentReceived) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) HandleRefundIssued(ctx context.Context, e domain.RefundIssued) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) HandleVendorAssigned(ctx context.Context, e domain.VendorAssigned) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) HandleVendorPayment(ctx context.Context, e domain.VendorPayment) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) HandleExpenseRecorded(ctx context.Context, e domain.ExpenseRecorded) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) HandlePayrollProcessed(ctx context.Context, e domain.PayrollProcessed) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) HandleInterBranchTransfer(ctx context.Context, e domain.InterBranchTransfer) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, e))
}

func (m *MockEventService) Dispatch(ctx context.Context, tenantID string, env dto.EventEnvelope) (*domain.EventResult, error) {
	return m.result(m.Called(ctx, tenantID, env))
}

// --- Mock token validator ---
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, raw string) (*domain.IntegrationToken, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrationToken), args.Error(1)
}

// --- Mock BankService ---
type MockBankService struct {
	mock.Mock
}

var _ portssvc.BankSvcFacade = (*MockBankService)(nil)

func (m *MockBankService) CreateBankAccount(ctx context.Context, tenantID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankService) GetBankAccount(ctx context.Context, tenantID, bankAccountID, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, tenantID, bankAccountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankService) ListBankAccounts(ctx context.Context, tenantID, userID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankService) RecordTransaction(ctx context.Context, tenantID, bankAccountID string, req dto.RecordBankTransactionRequest, userID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, tenantID, bankAccountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankService) ListTransactions(ctx context.Context, tenantID, bankAccountID, userID string, params dto.ListBankTransactionsParams) (*dto.ListBankTransactionsResponse, error) {
	args := m.Called(ctx, tenantID, bankAccountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListBankTransactionsResponse), args.Error(1)
}

func (m *MockBankService) ImportStatement(ctx context.Context, tenantID, bankAccountID string, req dto.ImportStatementRequest, userID string) (*domain.ImportResult, error) {
	args := m.Called(ctx, tenantID, bankAccountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func (m *MockBankService) StartReconciliation(ctx context.Context, tenantID, bankAccountID string, req dto.StartReconciliationRequest, userID string) (*domain.BankReconciliation, error) {
	args := m.Called(ctx, tenantID, bankAccountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankReconciliation), args.Error(1)
}

func (m *MockBankService) GetReconciliation(ctx context.Context, tenantID, reconciliationID, userID string) (*domain.BankReconciliation, error) {
	args := m.Called(ctx, tenantID, reconciliationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankReconciliation), args.Error(1)
}

func (m *MockBankService) ReconcileTransactions(ctx context.Context, tenantID, reconciliationID string, req dto.ReconcileTransactionsRequest, userID string) (int, error) {
	args := m.Called(ctx, tenantID, reconciliationID, req, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockBankService) CompleteReconciliation(ctx context.Context, tenantID, reconciliationID, userID string) (*domain.BankReconciliation, error) {
	args := m.Called(ctx, tenantID, reconciliationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankReconciliation), args.Error(1)
}

func (m *MockBankService) AutoMatch(ctx context.Context, tenantID, bankAccountID string, apply bool, userID string) (*domain.AutoMatchSummary, error) {
	args := m.Called(ctx, tenantID, bankAccountID, apply, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoMatchSummary), args.Error(1)
}

// --- Mock FiscalService ---
type MockFiscalService struct {
	mock.Mock
}

var _ portssvc.FiscalSvcFacade = (*MockFiscalService)(nil)

func (m *MockFiscalService) period(args mock.Arguments) (*domain.FiscalPeriod, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalService) GetFiscalYear(ctx context.Context, tenantID, yearID, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, yearID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalService) ListFiscalYears(ctx context.Context, tenantID, userID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalService) GetPeriodForDate(ctx context.Context, tenantID string, date time.Time, userID string) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, date, userID))
}

func (m *MockFiscalService) CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest, userID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalService) SoftClosePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, req, userID))
}

func (m *MockFiscalService) ReopenPeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, req, userID))
}

func (m *MockFiscalService) HardClosePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, req, userID))
}

func (m *MockFiscalService) ArchivePeriod(ctx context.Context, tenantID, periodID string, req dto.PeriodTransitionRequest, userID string) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, req, userID))
}

func (m *MockFiscalService) CloseFiscalYear(ctx context.Context, tenantID, yearID string, req dto.CloseFiscalYearRequest, userID string) (*domain.YearCloseResult, error) {
	args := m.Called(ctx, tenantID, yearID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YearCloseResult), args.Error(1)
}

func (m *MockFiscalService) ValidateTransactionDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	return m.period(m.Called(ctx, tenantID, date))
}
