package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/middleware"
	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/SscSPs/travel_ledger/internal/platform/resilience"
	"github.com/SscSPs/travel_ledger/internal/utils/accounting"
)

const (
	interBranchSendSuffix    = ":SEND"
	interBranchReceiveSuffix = ":RECEIVE"
	systemActor              = "system"
)

// eventService implements the EventSvc interface
type eventService struct {
	BaseService
	journal  portssvc.JournalSubmitter
	accounts portssvc.AccountResolver
	tax      portssvc.TaxEngine
	branches portssvc.BranchSvc
	cb       *gobreaker.CircuitBreaker
	retry    resilience.Config
	metrics  *observability.Metrics
}

// EventServiceOption configures the event service
type EventServiceOption func(*eventService)

// WithEventRetry sets how often a submission is retried after a concurrency conflict.
func WithEventRetry(cfg resilience.Config) EventServiceOption {
	return func(s *eventService) {
		s.retry = cfg
	}
}

// WithEventMetrics counts processed events by outcome.
func WithEventMetrics(m *observability.Metrics) EventServiceOption {
	return func(s *eventService) {
		s.metrics = m
	}
}

// NewEventService creates the operational event handlers
func NewEventService(journal portssvc.JournalSubmitter, accounts portssvc.AccountResolver, tax portssvc.TaxEngine, branches portssvc.BranchSvc, opts ...EventServiceOption) portssvc.EventSvc {
	svc := &eventService{
		journal:  journal,
		accounts: accounts,
		tax:      tax,
		branches: branches,
		retry:    resilience.Config{MaxRetries: 3, InitialBackoff: 50 * time.Millisecond},
		cb:       resilience.NewCircuitBreaker("ledger-submit", isInfrastructureFailure),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.EventSvc = (*eventService)(nil)

// isInfrastructureFailure reports errors that say the store is unhealthy
// rather than that the event was rejected.
func isInfrastructureFailure(err error) bool {
	for _, business := range []error{
		apperrors.ErrValidation, apperrors.ErrDuplicate, apperrors.ErrState,
		apperrors.ErrNotFound, apperrors.ErrForbidden, apperrors.ErrConcurrency,
		context.Canceled,
	} {
		if errors.Is(err, business) {
			return false
		}
	}
	return true
}

func isConcurrency(err error) bool {
	return errors.Is(err, apperrors.ErrConcurrency)
}

// posting is one journal entry an event produces, plus the tax record that
// goes with it.
type posting struct {
	source      domain.SourceModule
	recordID    string
	branchID    string
	description string
	lines       []domain.LineInstruction
	tax         *domain.TaxTransaction
}

// Dispatch decodes the payload for its type and forces the tenant.
func (s *eventService) Dispatch(ctx context.Context, tenantID string, env dto.EventEnvelope) (*domain.EventResult, error) {
	decode := func(v any) error {
		if err := json.Unmarshal(env.Payload, v); err != nil {
			return fmt.Errorf("%w: invalid %s payload: %v", apperrors.ErrValidation, env.EventType, err)
		}
		return nil
	}

	switch env.EventType {
	case domain.EventBookingCreated:
		var e domain.BookingCreated
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandleBookingCreated(ctx, e)
	case domain.EventPaymentReceived:
		var e domain.PaymentReceived
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandlePaymentReceived(ctx, e)
	case domain.EventRefundIssued:
		var e domain.RefundIssued
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandleRefundIssued(ctx, e)
	case domain.EventVendorAssigned:
		var e domain.VendorAssigned
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandleVendorAssigned(ctx, e)
	case domain.EventVendorPayment:
		var e domain.VendorPayment
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandleVendorPayment(ctx, e)
	case domain.EventExpenseRecorded:
		var e domain.ExpenseRecorded
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandleExpenseRecorded(ctx, e)
	case domain.EventPayrollProcessed:
		var e domain.PayrollProcessed
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandlePayrollProcessed(ctx, e)
	case domain.EventInterBranchTransfer:
		var e domain.InterBranchTransfer
		if err := decode(&e); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		return s.HandleInterBranchTransfer(ctx, e)
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, env.EventType)
	}
}

// HandleBookingCreated books the receivable, the revenue and the output tax.
func (s *eventService) HandleBookingCreated(ctx context.Context, e domain.BookingCreated) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventBookingCreated, e.EventMeta, func(date time.Time) ([]posting, error) {
		if err := requirePositive(e.Amount, "amount"); err != nil {
			return nil, err
		}
		gst, err := s.gst(ctx, e.TenantID, e.BranchID, e.TaxCode, e.Amount, e.CustomerStateCode, e.IsExport, date)
		if err != nil {
			return nil, err
		}
		dims := domain.Dimensions{BranchID: e.BranchID, TripID: e.TripID, BookingID: e.BookingID, CustomerID: e.CustomerID}

		codes := []string{domain.CodeAccountsReceivable, domain.CodeTourRevenue}
		if gst.taxed() {
			codes = append(codes, domain.CodeOutputTaxPayable)
		}
		accs, err := s.resolve(ctx, e.TenantID, codes...)
		if err != nil {
			return nil, err
		}
		lines := []domain.LineInstruction{
			debit(accs[domain.CodeAccountsReceivable], gst.total, dims),
			credit(accs[domain.CodeTourRevenue], gst.taxable, dims),
		}
		if gst.taxed() {
			lines = append(lines, credit(accs[domain.CodeOutputTaxPayable], gst.calc.TotalTax, dims))
		}

		p := posting{
			source:      domain.SourceBooking,
			recordID:    e.SourceRecordID,
			branchID:    e.BranchID,
			description: describe(e.Description, "Booking "+e.BookingID),
			lines:       lines,
		}
		if gst.code != nil {
			p.tax = gst.transaction(domain.TaxOutput, e.CustomerID, e.CustomerTaxID)
		}
		return []posting{p}, nil
	})
}

// HandlePaymentReceived settles a customer receivable.
func (s *eventService) HandlePaymentReceived(ctx context.Context, e domain.PaymentReceived) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventPaymentReceived, e.EventMeta, func(time.Time) ([]posting, error) {
		if err := requirePositive(e.Amount, "amount"); err != nil {
			return nil, err
		}
		method, err := settlement(e.Method)
		if err != nil {
			return nil, err
		}
		accs, err := s.resolve(ctx, e.TenantID, method.SettlementCode(), domain.CodeAccountsReceivable)
		if err != nil {
			return nil, err
		}
		dims := domain.Dimensions{BranchID: e.BranchID, BookingID: e.BookingID, CustomerID: e.CustomerID}
		return []posting{{
			source:      domain.SourcePayment,
			recordID:    e.SourceRecordID,
			branchID:    e.BranchID,
			description: "Payment " + e.PaymentID,
			lines: []domain.LineInstruction{
				debit(accs[method.SettlementCode()], e.Amount, dims),
				credit(accs[domain.CodeAccountsReceivable], e.Amount, dims),
			},
		}}, nil
	})
}

// HandleRefundIssued books a refund paid out to a customer.
func (s *eventService) HandleRefundIssued(ctx context.Context, e domain.RefundIssued) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventRefundIssued, e.EventMeta, func(time.Time) ([]posting, error) {
		if err := requirePositive(e.Amount, "amount"); err != nil {
			return nil, err
		}
		method, err := settlement(e.Method)
		if err != nil {
			return nil, err
		}
		accs, err := s.resolve(ctx, e.TenantID, domain.CodeRefunds, method.SettlementCode())
		if err != nil {
			return nil, err
		}
		dims := domain.Dimensions{BranchID: e.BranchID, BookingID: e.BookingID, CustomerID: e.CustomerID}
		return []posting{{
			source:      domain.SourceRefund,
			recordID:    e.SourceRecordID,
			branchID:    e.BranchID,
			description: describe(e.Reason, "Refund "+e.RefundID),
			lines: []domain.LineInstruction{
				debit(accs[domain.CodeRefunds], e.Amount, dims),
				credit(accs[method.SettlementCode()], e.Amount, dims),
			},
		}}, nil
	})
}

// HandleVendorAssigned books the vendor cost, input credit and payable.
func (s *eventService) HandleVendorAssigned(ctx context.Context, e domain.VendorAssigned) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventVendorAssigned, e.EventMeta, func(date time.Time) ([]posting, error) {
		if err := requirePositive(e.Amount, "amount"); err != nil {
			return nil, err
		}
		gst, err := s.gst(ctx, e.TenantID, e.BranchID, e.TaxCode, e.Amount, e.VendorStateCode, false, date)
		if err != nil {
			return nil, err
		}
		dims := domain.Dimensions{BranchID: e.BranchID, TripID: e.TripID, BookingID: e.BookingID, VendorID: e.VendorID}

		codes := []string{domain.CodeVendorCost, domain.CodeAccountsPayable}
		if gst.taxed() {
			codes = append(codes, domain.CodeInputTaxCredit)
		}
		accs, err := s.resolve(ctx, e.TenantID, codes...)
		if err != nil {
			return nil, err
		}
		lines := []domain.LineInstruction{debit(accs[domain.CodeVendorCost], gst.taxable, dims)}
		if gst.taxed() {
			lines = append(lines, debit(accs[domain.CodeInputTaxCredit], gst.calc.TotalTax, dims))
		}
		lines = append(lines, credit(accs[domain.CodeAccountsPayable], gst.total, dims))

		p := posting{
			source:      domain.SourceVendor,
			recordID:    e.SourceRecordID,
			branchID:    e.BranchID,
			description: describe(e.Description, "Vendor assignment "+e.AssignmentID),
			lines:       lines,
		}
		if gst.code != nil {
			p.tax = gst.transaction(domain.TaxInput, e.VendorID, e.VendorTaxID)
		}
		return []posting{p}, nil
	})
}

// HandleVendorPayment settles a payable, withholding TDS when a code is given.
func (s *eventService) HandleVendorPayment(ctx context.Context, e domain.VendorPayment) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventVendorPayment, e.EventMeta, func(date time.Time) ([]posting, error) {
		if err := requirePositive(e.Amount, "amount"); err != nil {
			return nil, err
		}
		method, err := settlement(e.Method)
		if err != nil {
			return nil, err
		}

		var (
			code *domain.TaxCode
			tds  = domain.TDSCalculation{Amount: e.Amount, TDSAmount: decimal.Zero, NetPayable: e.Amount}
		)
		if e.TDSCode != "" {
			code, err = s.tax.ResolveTaxCode(ctx, e.TenantID, e.TDSCode, date)
			if err != nil {
				return nil, err
			}
			if code.TaxType != domain.TaxTDS {
				return nil, fmt.Errorf("%w: %s is not a TDS code", apperrors.ErrValidation, code.Code)
			}
			tds = accounting.CalculateTDS(e.Amount, *code)
		}
		withheld := tds.TDSAmount.IsPositive()

		codes := []string{domain.CodeAccountsPayable, method.SettlementCode()}
		if withheld {
			codes = append(codes, domain.CodeTDSPayable)
		}
		accs, err := s.resolve(ctx, e.TenantID, codes...)
		if err != nil {
			return nil, err
		}
		dims := domain.Dimensions{BranchID: e.BranchID, VendorID: e.VendorID}
		lines := []domain.LineInstruction{debit(accs[domain.CodeAccountsPayable], e.Amount, dims)}
		if withheld {
			lines = append(lines, credit(accs[domain.CodeTDSPayable], tds.TDSAmount, dims))
		}
		lines = append(lines, credit(accs[method.SettlementCode()], tds.NetPayable, dims))

		p := posting{
			source:      domain.SourceVendor,
			recordID:    e.SourceRecordID,
			branchID:    e.BranchID,
			description: "Vendor payment " + e.PaymentID,
			lines:       lines,
		}
		if withheld {
			p.tax = &domain.TaxTransaction{
				Direction:     domain.TaxWithholding,
				TaxCodeID:     code.TaxCodeID,
				PartyID:       e.VendorID,
				PartyTaxID:    e.VendorTaxID,
				Section:       code.Section,
				TaxableAmount: e.Amount,
				CGST:          decimal.Zero,
				SGST:          decimal.Zero,
				IGST:          decimal.Zero,
				TDSAmount:     tds.TDSAmount,
				TotalTax:      tds.TDSAmount,
			}
		}
		return []posting{p}, nil
	})
}

// HandleExpenseRecorded books an operating expense paid from cash or bank.
func (s *eventService) HandleExpenseRecorded(ctx context.Context, e domain.ExpenseRecorded) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventExpenseRecorded, e.EventMeta, func(date time.Time) ([]posting, error) {
		if err := requirePositive(e.Amount, "amount"); err != nil {
			return nil, err
		}
		method, err := settlement(e.Method)
		if err != nil {
			return nil, err
		}
		expenseCode := strings.TrimSpace(e.AccountCode)
		if expenseCode == "" {
			expenseCode = domain.CodeGeneralExpenses
		}
		gst, err := s.gst(ctx, e.TenantID, e.BranchID, e.TaxCode, e.Amount, "", false, date)
		if err != nil {
			return nil, err
		}

		codes := []string{expenseCode, method.SettlementCode()}
		if gst.taxed() {
			codes = append(codes, domain.CodeInputTaxCredit)
		}
		accs, err := s.resolve(ctx, e.TenantID, codes...)
		if err != nil {
			return nil, err
		}
		if accs[expenseCode].AccountType != domain.Expense {
			return nil, fmt.Errorf("%w: account %s is not an expense account", apperrors.ErrValidation, expenseCode)
		}
		dims := domain.Dimensions{BranchID: e.BranchID, CostCenter: e.CostCenter, VendorID: e.VendorID}
		lines := []domain.LineInstruction{debit(accs[expenseCode], gst.taxable, dims)}
		if gst.taxed() {
			lines = append(lines, debit(accs[domain.CodeInputTaxCredit], gst.calc.TotalTax, dims))
		}
		lines = append(lines, credit(accs[method.SettlementCode()], gst.total, dims))

		p := posting{
			source:      domain.SourceExpense,
			recordID:    e.SourceRecordID,
			branchID:    e.BranchID,
			description: describe(e.Description, "Expense "+e.ExpenseID),
			lines:       lines,
		}
		if gst.code != nil {
			p.tax = gst.transaction(domain.TaxInput, e.VendorID, "")
		}
		return []posting{p}, nil
	})
}

// HandlePayrollProcessed books gross salary, withheld tax and net payable.
func (s *eventService) HandlePayrollProcessed(ctx context.Context, e domain.PayrollProcessed) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventPayrollProcessed, e.EventMeta, func(time.Time) ([]posting, error) {
		if err := requirePositive(e.GrossAmount, "grossAmount"); err != nil {
			return nil, err
		}
		if e.TDSAmount.IsNegative() || e.TDSAmount.GreaterThan(e.GrossAmount) {
			return nil, fmt.Errorf("%w: tdsAmount must be between 0 and grossAmount", apperrors.ErrValidation)
		}
		withheld := e.TDSAmount.IsPositive()
		codes := []string{domain.CodeSalaries, domain.CodeSalariesPayable}
		if withheld {
			codes = append(codes, domain.CodeTDSPayable)
		}
		accs, err := s.resolve(ctx, e.TenantID, codes...)
		if err != nil {
			return nil, err
		}
		dims := domain.Dimensions{BranchID: e.BranchID, EmployeeID: e.EmployeeID}
		lines := []domain.LineInstruction{debit(accs[domain.CodeSalaries], e.GrossAmount, dims)}
		if withheld {
			lines = append(lines, credit(accs[domain.CodeTDSPayable], e.TDSAmount, dims))
		}
		if net := e.GrossAmount.Sub(e.TDSAmount); net.IsPositive() {
			lines = append(lines, credit(accs[domain.CodeSalariesPayable], net, dims))
		}
		return []posting{{
			source:      domain.SourcePayroll,
			recordID:    e.SourceRecordID,
			branchID:    e.BranchID,
			description: describe(strings.TrimSpace("Payroll "+e.Period), "Payroll "+e.PayrollRunID),
			lines:       lines,
		}}, nil
	})
}

// HandleInterBranchTransfer posts one entry in each branch.
func (s *eventService) HandleInterBranchTransfer(ctx context.Context, e domain.InterBranchTransfer) (*domain.EventResult, error) {
	return s.handle(ctx, domain.EventInterBranchTransfer, e.EventMeta, func(time.Time) ([]posting, error) {
		if err := requirePositive(e.Amount, "amount"); err != nil {
			return nil, err
		}
		if e.BranchID == "" || e.ToBranchID == "" {
			return nil, fmt.Errorf("%w: both branches are required", apperrors.ErrValidation)
		}
		if e.BranchID == e.ToBranchID {
			return nil, fmt.Errorf("%w: a transfer needs two different branches", apperrors.ErrValidation)
		}
		for _, id := range []string{e.BranchID, e.ToBranchID} {
			if _, err := s.branch(ctx, e.TenantID, id); err != nil {
				return nil, err
			}
		}
		method, err := settlement(e.Method)
		if err != nil {
			return nil, err
		}
		accs, err := s.resolve(ctx, e.TenantID, domain.CodeInterBranchReceivable, domain.CodeInterBranchPayable, method.SettlementCode())
		if err != nil {
			return nil, err
		}
		cash := accs[method.SettlementCode()]
		from := domain.Dimensions{BranchID: e.BranchID}
		to := domain.Dimensions{BranchID: e.ToBranchID}
		return []posting{
			{
				source:      domain.SourceInterBranch,
				recordID:    e.SourceRecordID + interBranchSendSuffix,
				branchID:    e.BranchID,
				description: "Transfer " + e.TransferID + " to branch",
				lines: []domain.LineInstruction{
					debit(accs[domain.CodeInterBranchReceivable], e.Amount, from),
					credit(cash, e.Amount, from),
				},
			},
			{
				source:      domain.SourceInterBranch,
				recordID:    e.SourceRecordID + interBranchReceiveSuffix,
				branchID:    e.ToBranchID,
				description: "Transfer " + e.TransferID + " from branch",
				lines: []domain.LineInstruction{
					debit(cash, e.Amount, to),
					credit(accs[domain.CodeInterBranchPayable], e.Amount, to),
				},
			},
		}, nil
	})
}

// handle validates the envelope, builds the postings and submits them.
func (s *eventService) handle(ctx context.Context, eventType domain.EventType, meta domain.EventMeta, build func(date time.Time) ([]posting, error)) (*domain.EventResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("event", string(eventType)),
		slog.String("tenant_id", meta.TenantID),
		slog.String("source_record_id", meta.SourceRecordID))
	ctx = middleware.WithLogger(ctx, logger)

	if meta.TenantID == "" || strings.TrimSpace(meta.SourceRecordID) == "" {
		s.metrics.IncEvent(string(eventType), "failed")
		return nil, fmt.Errorf("%w: tenantID and sourceRecordID are required", apperrors.ErrValidation)
	}
	date := domain.DateOnly(meta.OccurredAt)
	if meta.OccurredAt.IsZero() {
		date = domain.DateOnly(time.Now())
	}

	postings, err := build(date)
	if err != nil {
		s.metrics.IncEvent(string(eventType), "failed")
		s.LogWarn(ctx, err, "Event rejected")
		return nil, err
	}

	actor := s.actor(ctx, meta)
	result := &domain.EventResult{
		EventType:       eventType,
		SourceRecordID:  meta.SourceRecordID,
		Entries:         make([]domain.JournalEntry, 0, len(postings)),
		TaxTransactions: []domain.TaxTransaction{},
		Replayed:        true,
	}
	for _, p := range postings {
		entry, replayed, err := s.submit(ctx, meta, p, date, actor)
		if err != nil {
			s.metrics.IncEvent(string(eventType), "failed")
			if isInfrastructureFailure(err) {
				s.LogError(ctx, err, "Event posting failed", slog.String("record_id", p.recordID))
			} else {
				s.LogWarn(ctx, err, "Event posting rejected", slog.String("record_id", p.recordID))
			}
			return nil, err
		}
		result.Entries = append(result.Entries, *entry)
		result.Replayed = result.Replayed && replayed

		if p.tax == nil {
			continue
		}
		txn := *p.tax
		txn.TenantID = meta.TenantID
		txn.BranchID = p.branchID
		txn.EntryID = &entry.EntryID
		txn.SourceModule = p.source
		txn.SourceRecordID = p.recordID
		txn.TransactionDate = date
		txn.CreatedBy = actor
		recorded, err := s.tax.RecordTaxTransaction(ctx, txn)
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			// recorded by the first delivery
		case err != nil:
			s.metrics.IncEvent(string(eventType), "failed")
			s.LogError(ctx, err, "Failed to record tax transaction", slog.String("entry_id", entry.EntryID))
			return nil, err
		default:
			result.TaxTransactions = append(result.TaxTransactions, *recorded)
		}
	}

	outcome := "posted"
	if result.Replayed {
		outcome = "replayed"
	}
	s.metrics.IncEvent(string(eventType), outcome)
	s.LogInfo(ctx, "Event processed", slog.String("outcome", outcome), slog.Int("entries", len(result.Entries)))
	return result, nil
}

// submit posts one entry through the breaker, retrying lost races. A
// duplicate source record returns the stored entry instead.
func (s *eventService) submit(ctx context.Context, meta domain.EventMeta, p posting, date time.Time, actor string) (*domain.JournalEntry, bool, error) {
	cmd := portssvc.JournalCommand{
		TenantID:       meta.TenantID,
		BranchID:       p.branchID,
		EntryDate:      date,
		Description:    p.description,
		Reference:      meta.Reference,
		SourceModule:   p.source,
		SourceRecordID: p.recordID,
		Lines:          p.lines,
		AutoPost:       true,
		UserID:         actor,
	}

	replayed := false
	entry, err := resilience.Execute(s.cb, func() (*domain.JournalEntry, error) {
		var out *domain.JournalEntry
		err := resilience.RetryWithBackoff(ctx, s.retry, isConcurrency, func() error {
			e, err := s.journal.Submit(ctx, cmd)
			if errors.Is(err, apperrors.ErrDuplicate) {
				replayed = true
				e, err = s.replay(ctx, meta.TenantID, p, actor)
			}
			out = e
			return err
		})
		return out, err
	})
	if err != nil {
		return nil, false, err
	}
	return entry, replayed, nil
}

// replay returns the entry stored for the posting's source record, finishing
// the post if an earlier attempt saved it but lost the posting race.
func (s *eventService) replay(ctx context.Context, tenantID string, p posting, actor string) (*domain.JournalEntry, error) {
	existing, err := s.journal.FindEntriesBySource(ctx, tenantID, p.source, p.recordID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: duplicate reported for %s but no entry found", apperrors.ErrConcurrency, p.recordID)
	}
	entry := existing[0]
	if entry.Status == domain.Draft {
		s.LogInfo(ctx, "Posting entry left unposted by an earlier delivery", slog.String("entry_id", entry.EntryID))
		return s.journal.PostSubmitted(ctx, tenantID, entry.EntryID, actor)
	}
	s.LogDebug(ctx, "Event already processed", slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

// actor is the user recorded on the entries: the event's user, else the
// authenticated caller, else the system.
func (s *eventService) actor(ctx context.Context, meta domain.EventMeta) string {
	if meta.UserID != "" {
		return meta.UserID
	}
	if userID, ok := middleware.GetUserIDFromCtx(ctx); ok && userID != "" {
		return userID
	}
	return systemActor
}

func (s *eventService) resolve(ctx context.Context, tenantID string, codes ...string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		if _, ok := out[code]; ok {
			continue
		}
		acc, err := s.accounts.ResolveAccountByCode(ctx, tenantID, code)
		if err != nil {
			return nil, err
		}
		out[code] = *acc
	}
	return out, nil
}

func (s *eventService) branch(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	b, err := s.branches.FindBranch(ctx, tenantID, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: branch %s not found", apperrors.ErrValidation, branchID)
		}
		return nil, err
	}
	return b, nil
}

// gstResult is the GST applied to an event amount. Without a tax code the
// amount is both taxable and total.
type gstResult struct {
	code    *domain.TaxCode
	calc    domain.TaxCalculation
	place   domain.PlaceOfSupply
	taxable decimal.Decimal
	total   decimal.Decimal
}

func (g gstResult) taxed() bool {
	return g.code != nil && g.calc.TotalTax.IsPositive()
}

func (g gstResult) transaction(direction domain.TaxDirection, partyID, partyTaxID string) *domain.TaxTransaction {
	return &domain.TaxTransaction{
		Direction:     direction,
		TaxCodeID:     g.code.TaxCodeID,
		PlaceOfSupply: g.place,
		PartyID:       partyID,
		PartyTaxID:    partyTaxID,
		TaxableAmount: g.calc.TaxableAmount,
		CGST:          g.calc.CGST,
		SGST:          g.calc.SGST,
		IGST:          g.calc.IGST,
		TDSAmount:     decimal.Zero,
		TotalTax:      g.calc.TotalTax,
	}
}

func (s *eventService) gst(ctx context.Context, tenantID, branchID, taxCode string, amount decimal.Decimal, partyState string, isExport bool, date time.Time) (gstResult, error) {
	if strings.TrimSpace(taxCode) == "" {
		return gstResult{taxable: amount, total: amount}, nil
	}
	code, err := s.tax.ResolveTaxCode(ctx, tenantID, taxCode, date)
	if err != nil {
		return gstResult{}, err
	}
	if code.TaxType != domain.TaxGST {
		return gstResult{}, fmt.Errorf("%w: %s is not a GST code", apperrors.ErrValidation, code.Code)
	}
	branchState := ""
	if branchID != "" {
		b, err := s.branch(ctx, tenantID, branchID)
		if err != nil {
			return gstResult{}, err
		}
		branchState = b.StateCode
	}
	if partyState == "" {
		partyState = branchState
	}
	place := domain.ResolvePlaceOfSupply(branchState, strings.ToUpper(partyState), isExport)
	calc := accounting.CalculateTax(amount, *code, place)
	return gstResult{code: code, calc: calc, place: place, taxable: calc.TaxableAmount, total: calc.TotalAmount}, nil
}

func settlement(m domain.PaymentMethod) (domain.PaymentMethod, error) {
	switch m {
	case "":
		return domain.PayBank, nil
	case domain.PayCash, domain.PayBank:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, m)
	}
}

func requirePositive(d decimal.Decimal, field string) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", apperrors.ErrValidation, field)
	}
	return nil
}

func describe(given, fallback string) string {
	if s := strings.TrimSpace(given); s != "" {
		return s
	}
	return fallback
}

func debit(acc domain.Account, amount decimal.Decimal, dims domain.Dimensions) domain.LineInstruction {
	return domain.LineInstruction{AccountID: acc.AccountID, Debit: amount, Credit: decimal.Zero, Dimensions: dims}
}

func credit(acc domain.Account, amount decimal.Decimal, dims domain.Dimensions) domain.LineInstruction {
	return domain.LineInstruction{AccountID: acc.AccountID, Debit: decimal.Zero, Credit: amount, Dimensions: dims}
}
