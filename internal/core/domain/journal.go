package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft           JournalStatus = "DRAFT"
	PendingApproval JournalStatus = "PENDING_APPROVAL"
	Posted          JournalStatus = "POSTED"
	Reversed        JournalStatus = "REVERSED"
)

// SourceModule names the subsystem an entry originated from.
type SourceModule string

const (
	SourceManual      SourceModule = "MANUAL"
	SourceBooking     SourceModule = "BOOKING"
	SourcePayment     SourceModule = "PAYMENT"
	SourceRefund      SourceModule = "REFUND"
	SourceVendor      SourceModule = "VENDOR"
	SourceExpense     SourceModule = "EXPENSE"
	SourcePayroll     SourceModule = "PAYROLL"
	SourceInterBranch SourceModule = "INTER_BRANCH"
	SourceReversal    SourceModule = "REVERSAL"
	SourceFiscalClose SourceModule = "FISCAL_CLOSE"
)

// Dimensions are optional tags used by sub-ledger and profitability queries.
type Dimensions struct {
	BranchID   string `json:"branchID,omitempty"`
	CostCenter string `json:"costCenter,omitempty"`
	TripID     string `json:"tripID,omitempty"`
	BookingID  string `json:"bookingID,omitempty"`
	VendorID   string `json:"vendorID,omitempty"`
	CustomerID string `json:"customerID,omitempty"`
	EmployeeID string `json:"employeeID,omitempty"`
}

// JournalLine is one debit or credit against one account.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Dimensions
}

// IsDebit reports whether the line sits on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// JournalEntry is a balanced set of lines representing one financial event.
type JournalEntry struct {
	EntryID           string          `json:"entryID"`
	TenantID          string          `json:"tenantID"`
	BranchID          string          `json:"branchID"`
	EntryNumber       *int64          `json:"entryNumber,omitempty"`
	EntryDate         time.Time       `json:"entryDate"`
	PostingDate       *time.Time      `json:"postingDate,omitempty"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference,omitempty"`
	Status            JournalStatus   `json:"status"`
	SourceModule      SourceModule    `json:"sourceModule"`
	SourceRecordID    string          `json:"sourceRecordID,omitempty"`
	FiscalYearID      string          `json:"fiscalYearID"`
	FiscalPeriodID    string          `json:"fiscalPeriodID"`
	FiscalYear        int             `json:"fiscalYear"`
	CurrencyCode      string          `json:"currencyCode"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	IsReversed        bool            `json:"isReversed"`
	ReversesEntryID   *string         `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string         `json:"reversedByEntryID,omitempty"`
	ReversalReason    string          `json:"reversalReason,omitempty"`
	ApprovedBy        *string         `json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time      `json:"approvedAt,omitempty"`
	PostedBy          *string         `json:"postedBy,omitempty"`
	PostedAt          *time.Time      `json:"postedAt,omitempty"`
	Lines             []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// LineInstruction is a caller supplied debit or credit for NewJournalEntry.
type LineInstruction struct {
	AccountID   string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Dimensions
}

// NewJournalEntryParams carries the inputs of NewJournalEntry.
type NewJournalEntryParams struct {
	EntryID        string
	TenantID       string
	BranchID       string
	EntryDate      time.Time
	Description    string
	Reference      string
	SourceModule   SourceModule
	SourceRecordID string
	CurrencyCode   string
	ExchangeRate   decimal.Decimal
	Lines          []LineInstruction
	NewLineID      func() string
	CreatedBy      string
	Now            time.Time
}

// RoundAmount rounds to the smallest currency unit.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// NewJournalEntry validates the instructions and builds a DRAFT entry.
func NewJournalEntry(p NewJournalEntryParams) (*JournalEntry, error) {
	if p.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant is required", apperrors.ErrValidation)
	}
	if p.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}
	if len(p.Lines) < 2 {
		return nil, fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	source := p.SourceModule
	if source == "" {
		source = SourceManual
	}
	rate := p.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	entry := &JournalEntry{
		EntryID:        p.EntryID,
		TenantID:       p.TenantID,
		BranchID:       p.BranchID,
		EntryDate:      DateOnly(p.EntryDate),
		Description:    strings.TrimSpace(p.Description),
		Reference:      p.Reference,
		Status:         Draft,
		SourceModule:   source,
		SourceRecordID: p.SourceRecordID,
		CurrencyCode:   p.CurrencyCode,
		ExchangeRate:   rate,
		AuditFields: AuditFields{
			CreatedAt:     p.Now,
			CreatedBy:     p.CreatedBy,
			LastUpdatedAt: p.Now,
			LastUpdatedBy: p.CreatedBy,
		},
	}

	entry.Lines = make([]JournalLine, 0, len(p.Lines))
	for i, in := range p.Lines {
		if in.AccountID == "" {
			return nil, fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		debit := RoundAmount(in.Debit)
		credit := RoundAmount(in.Credit)
		if debit.IsNegative() || credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if debit.IsPositive() == credit.IsPositive() {
			return nil, fmt.Errorf("%w: line %d must carry exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}
		dims := in.Dimensions
		if dims.BranchID == "" {
			dims.BranchID = p.BranchID
		}
		lineID := ""
		if p.NewLineID != nil {
			lineID = p.NewLineID()
		}
		entry.Lines = append(entry.Lines, JournalLine{
			LineID:       lineID,
			EntryID:      p.EntryID,
			LineNumber:   i + 1,
			AccountID:    in.AccountID,
			Description:  in.Description,
			DebitAmount:  debit,
			CreditAmount: credit,
			Dimensions:   dims,
		})
	}

	if err := entry.EnsureBalanced(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Totals sums the debit and credit sides of the lines.
func (e *JournalEntry) Totals() (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.DebitAmount)
		credit = credit.Add(l.CreditAmount)
	}
	return debit, credit
}

// EnsureBalanced recomputes the totals and fails when the sides differ.
func (e *JournalEntry) EnsureBalanced() error {
	debit, credit := e.Totals()
	debit, credit = RoundAmount(debit), RoundAmount(credit)
	e.TotalDebit, e.TotalCredit = debit, credit
	if !debit.Equal(credit) {
		return &apperrors.UnbalancedEntryError{TotalDebit: debit, TotalCredit: credit}
	}
	if debit.IsZero() {
		return fmt.Errorf("%w: journal entry has no amount", apperrors.ErrValidation)
	}
	return nil
}

// AccountIDs returns the distinct accounts touched by the entry, in line order.
func (e *JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// CanPost reports a StateError unless the entry is a DRAFT.
func (e *JournalEntry) CanPost() error {
	if e.Status != Draft {
		return apperrors.NewStateError("journal entry", e.EntryID, string(e.Status), "post")
	}
	return nil
}

// CanReverse reports a StateError unless the entry is POSTED, not reversed
// and not itself a reversal.
func (e *JournalEntry) CanReverse() error {
	if e.Status != Posted || e.IsReversed {
		return apperrors.NewStateError("journal entry", e.EntryID, string(e.Status), "reverse")
	}
	if e.ReversesEntryID != nil {
		return apperrors.NewStateError("journal entry", e.EntryID, "REVERSAL", "reverse")
	}
	return nil
}

// Mirror builds the reversal of a posted entry: every line has its debit and
// credit swapped. The result is a DRAFT linked to the original.
func (e *JournalEntry) Mirror(entryID string, date time.Time, reason string, newLineID func() string, userID string, now time.Time) *JournalEntry {
	origID := e.EntryID
	rev := &JournalEntry{
		EntryID:         entryID,
		TenantID:        e.TenantID,
		BranchID:        e.BranchID,
		EntryDate:       DateOnly(date),
		Description:     "Reversal of " + e.Description,
		Reference:       e.Reference,
		Status:          Draft,
		SourceModule:    SourceReversal,
		SourceRecordID:  e.EntryID,
		CurrencyCode:    e.CurrencyCode,
		ExchangeRate:    e.ExchangeRate,
		ReversesEntryID: &origID,
		ReversalReason:  reason,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	rev.Lines = make([]JournalLine, len(e.Lines))
	for i, l := range e.Lines {
		rev.Lines[i] = JournalLine{
			LineID:       newLineID(),
			EntryID:      entryID,
			LineNumber:   l.LineNumber,
			AccountID:    l.AccountID,
			Description:  l.Description,
			DebitAmount:  l.CreditAmount,
			CreditAmount: l.DebitAmount,
			Dimensions:   l.Dimensions,
		}
	}
	rev.TotalDebit, rev.TotalCredit = e.TotalCredit, e.TotalDebit
	return rev
}
