package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PeriodStatus is the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodSoftClose PeriodStatus = "SOFT_CLOSE"
	PeriodHardClose PeriodStatus = "HARD_CLOSE"
	PeriodArchived  PeriodStatus = "ARCHIVED"
)

// PeriodAction names a lifecycle transition.
type PeriodAction string

const (
	ActionSoftClose PeriodAction = "SOFT_CLOSE"
	ActionReopen    PeriodAction = "REOPEN"
	ActionHardClose PeriodAction = "HARD_CLOSE"
	ActionArchive   PeriodAction = "ARCHIVE"
)

var periodTransitions = map[PeriodAction]struct{ from, to PeriodStatus }{
	ActionSoftClose: {PeriodOpen, PeriodSoftClose},
	ActionReopen:    {PeriodSoftClose, PeriodOpen},
	ActionHardClose: {PeriodSoftClose, PeriodHardClose},
	ActionArchive:   {PeriodHardClose, PeriodArchived},
}

// FiscalPeriod is one month of a fiscal year.
type FiscalPeriod struct {
	FiscalPeriodID string       `json:"fiscalPeriodID"`
	FiscalYearID   string       `json:"fiscalYearID"`
	TenantID       string       `json:"tenantID"`
	YearLabel      int          `json:"yearLabel"`
	PeriodNumber   int          `json:"periodNumber"`
	Name           string       `json:"name"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Status         PeriodStatus `json:"status"`
	ClosedAt       *time.Time   `json:"closedAt,omitempty"`
	ClosedBy       *string      `json:"closedBy,omitempty"`
	AuditFields
}

// Contains reports whether date falls inside the period, both ends inclusive.
func (p *FiscalPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// AcceptsPostings reports whether new entries may be dated in the period.
func (p *FiscalPeriod) AcceptsPostings() bool {
	return p.Status == PeriodOpen || p.Status == PeriodSoftClose
}

// Transition applies action and returns the previous status.
func (p *FiscalPeriod) Transition(action PeriodAction) (PeriodStatus, error) {
	t, ok := periodTransitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown period action %q", apperrors.ErrValidation, action)
	}
	if p.Status != t.from {
		return "", apperrors.NewStateError("fiscal period", p.Name, string(p.Status), strings.ToLower(strings.ReplaceAll(string(action), "_", " ")))
	}
	prev := p.Status
	p.Status = t.to
	return prev, nil
}

// FiscalYear owns twelve consecutive monthly periods.
type FiscalYear struct {
	FiscalYearID   string         `json:"fiscalYearID"`
	TenantID       string         `json:"tenantID"`
	Name           string         `json:"name"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	IsClosed       bool           `json:"isClosed"`
	ClosedAt       *time.Time     `json:"closedAt,omitempty"`
	ClosedBy       *string        `json:"closedBy,omitempty"`
	ClosingEntryID *string        `json:"closingEntryID,omitempty"`
	Periods        []FiscalPeriod `json:"periods,omitempty"`
	AuditFields
}

// Label is the calendar year the fiscal year starts in; it scopes entry numbers.
func (y *FiscalYear) Label() int {
	return y.StartDate.Year()
}

// Overlaps reports whether two years share any day.
func (y *FiscalYear) Overlaps(other FiscalYear) bool {
	return !y.EndDate.Before(other.StartDate) && !other.EndDate.Before(y.StartDate)
}

// PeriodFor returns the period containing date.
func (y *FiscalYear) PeriodFor(date time.Time) (*FiscalPeriod, bool) {
	for i := range y.Periods {
		if y.Periods[i].Contains(date) {
			return &y.Periods[i], true
		}
	}
	return nil, false
}

// AllPeriodsClosed reports whether every period is HARD_CLOSE or ARCHIVED.
func (y *FiscalYear) AllPeriodsClosed() bool {
	if len(y.Periods) == 0 {
		return false
	}
	for _, p := range y.Periods {
		if p.Status != PeriodHardClose && p.Status != PeriodArchived {
			return false
		}
	}
	return true
}

// NewFiscalYearParams carries the inputs of NewFiscalYear.
type NewFiscalYearParams struct {
	FiscalYearID string
	TenantID     string
	Name         string
	StartDate    time.Time
	NewPeriodID  func() string
	CreatedBy    string
	Now          time.Time
}

// NewFiscalYear builds a year of twelve OPEN monthly periods from StartDate.
// The start date must be the first day of a month.
func NewFiscalYear(p NewFiscalYearParams) (*FiscalYear, error) {
	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: fiscal year start date is required", apperrors.ErrValidation)
	}
	start := DateOnly(p.StartDate)
	if start.Day() != 1 {
		return nil, fmt.Errorf("%w: fiscal year must start on the first day of a month", apperrors.ErrValidation)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = fmt.Sprintf("FY%d-%02d", start.Year(), (start.Year()+1)%100)
	}
	audit := AuditFields{CreatedAt: p.Now, CreatedBy: p.CreatedBy, LastUpdatedAt: p.Now, LastUpdatedBy: p.CreatedBy}

	year := &FiscalYear{
		FiscalYearID: p.FiscalYearID,
		TenantID:     p.TenantID,
		Name:         name,
		StartDate:    start,
		EndDate:      start.AddDate(1, 0, -1),
		AuditFields:  audit,
	}
	year.Periods = make([]FiscalPeriod, 12)
	for i := 0; i < 12; i++ {
		ps := start.AddDate(0, i, 0)
		year.Periods[i] = FiscalPeriod{
			FiscalPeriodID: p.NewPeriodID(),
			FiscalYearID:   p.FiscalYearID,
			TenantID:       p.TenantID,
			YearLabel:      year.Label(),
			PeriodNumber:   i + 1,
			Name:           ps.Format("Jan-2006"),
			StartDate:      ps,
			EndDate:        ps.AddDate(0, 1, -1),
			Status:         PeriodOpen,
			AuditFields:    audit,
		}
	}
	return year, nil
}

// YearCloseResult is returned by the year-end close.
type YearCloseResult struct {
	FiscalYear   FiscalYear      `json:"fiscalYear"`
	ClosingEntry *JournalEntry   `json:"closingEntry"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}

// ClosingLines zeroes every revenue and expense balance against the retained
// earnings account. Accounts with a zero year balance are skipped. It returns
// the lines together with total revenue, total expense and net income.
func ClosingLines(totals []AccountTotals, retainedEarningsID string) ([]LineInstruction, decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	revenue, expense := decimal.Zero, decimal.Zero
	lines := make([]LineInstruction, 0, len(totals)+1)
	for _, t := range totals {
		if t.AccountType != Revenue && t.AccountType != Expense {
			continue
		}
		raw := RoundAmount(t.TotalDebit.Sub(t.TotalCredit))
		if raw.IsZero() {
			continue
		}
		if t.AccountType == Revenue {
			revenue = revenue.Add(raw.Neg())
		} else {
			expense = expense.Add(raw)
		}
		// a debit balance is closed with a credit and vice versa
		line := LineInstruction{AccountID: t.AccountID, Description: "Year-end close " + t.Code}
		if raw.IsPositive() {
			line.Credit = raw
		} else {
			line.Debit = raw.Neg()
		}
		lines = append(lines, line)
	}
	net := revenue.Sub(expense)
	re := LineInstruction{AccountID: retainedEarningsID, Description: "Net income to retained earnings"}
	switch {
	case net.IsPositive():
		re.Credit = net
		lines = append(lines, re)
	case net.IsNegative():
		re.Debit = net.Neg()
		lines = append(lines, re)
	}
	return lines, revenue, expense, net
}
