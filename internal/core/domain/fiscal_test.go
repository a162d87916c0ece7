package domain

import (
	"testing"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestYear(t *testing.T) *FiscalYear {
	t.Helper()
	year, err := NewFiscalYear(NewFiscalYearParams{
		FiscalYearID: "fy1",
		TenantID:     "t1",
		StartDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		NewPeriodID:  seqIDs("p"),
		CreatedBy:    "u1",
		Now:          time.Now(),
	})
	require.NoError(t, err)
	return year
}

func TestNewFiscalYear_TwelveConsecutivePeriods(t *testing.T) {
	year := newTestYear(t)

	assert.Equal(t, "FY2025-26", year.Name)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), year.EndDate)
	require.Len(t, year.Periods, 12)
	assert.Equal(t, year.StartDate, year.Periods[0].StartDate)
	assert.Equal(t, year.EndDate, year.Periods[11].EndDate)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), year.Periods[10].EndDate)
	for i := 1; i < 12; i++ {
		assert.Equal(t, year.Periods[i-1].EndDate.AddDate(0, 0, 1), year.Periods[i].StartDate)
		assert.Equal(t, PeriodOpen, year.Periods[i].Status)
	}
	assert.Equal(t, 2025, year.Label())
}

func TestNewFiscalYear_MustStartOnFirst(t *testing.T) {
	_, err := NewFiscalYear(NewFiscalYearParams{StartDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), NewPeriodID: seqIDs("p")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFiscalYear_Overlaps(t *testing.T) {
	a := newTestYear(t)
	b := FiscalYear{StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)}
	c := FiscalYear{StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)}
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestFiscalPeriod_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    PeriodStatus
		action  PeriodAction
		to      PeriodStatus
		wantErr bool
	}{
		{"soft close open", PeriodOpen, ActionSoftClose, PeriodSoftClose, false},
		{"reopen soft closed", PeriodSoftClose, ActionReopen, PeriodOpen, false},
		{"hard close soft closed", PeriodSoftClose, ActionHardClose, PeriodHardClose, false},
		{"archive hard closed", PeriodHardClose, ActionArchive, PeriodArchived, false},
		{"hard close open", PeriodOpen, ActionHardClose, "", true},
		{"reopen hard closed", PeriodHardClose, ActionReopen, "", true},
		{"reopen open", PeriodOpen, ActionReopen, "", true},
		{"archive soft closed", PeriodSoftClose, ActionArchive, "", true},
		{"soft close archived", PeriodArchived, ActionSoftClose, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FiscalPeriod{Name: "Apr-2025", Status: tt.from}
			prev, err := p.Transition(tt.action)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrState)
				assert.Equal(t, tt.from, p.Status, "status unchanged on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, prev)
			assert.Equal(t, tt.to, p.Status)
		})
	}
}

func TestFiscalPeriod_AcceptsPostings(t *testing.T) {
	assert.True(t, (&FiscalPeriod{Status: PeriodOpen}).AcceptsPostings())
	assert.True(t, (&FiscalPeriod{Status: PeriodSoftClose}).AcceptsPostings())
	assert.False(t, (&FiscalPeriod{Status: PeriodHardClose}).AcceptsPostings())
	assert.False(t, (&FiscalPeriod{Status: PeriodArchived}).AcceptsPostings())
}

func TestFiscalYear_PeriodForAndAllPeriodsClosed(t *testing.T) {
	year := newTestYear(t)
	p, ok := year.PeriodFor(time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 3, p.PeriodNumber)

	_, ok = year.PeriodFor(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	assert.False(t, year.AllPeriodsClosed())
	for i := range year.Periods {
		year.Periods[i].Status = PeriodHardClose
	}
	assert.True(t, year.AllPeriodsClosed())
}

func TestFiscalYear_AllPeriodsClosed_ArchivedCounts(t *testing.T) {
	year := newTestYear(t)
	for i := range year.Periods {
		year.Periods[i].Status = PeriodHardClose
	}
	year.Periods[0].Status = PeriodArchived
	assert.True(t, year.AllPeriodsClosed())

	year.Periods[5].Status = PeriodSoftClose
	assert.False(t, year.AllPeriodsClosed())

	assert.False(t, (&FiscalYear{}).AllPeriodsClosed())
}

func TestClosingLines_Profit(t *testing.T) {
	totals := []AccountTotals{
		{AccountID: "rev", Code: "4101", AccountType: Revenue, TotalDebit: dec("0"), TotalCredit: dec("50000")},
		{AccountID: "cost", Code: "5101", AccountType: Expense, TotalDebit: dec("20000"), TotalCredit: dec("0")},
		{AccountID: "opex", Code: "6201", AccountType: Expense, TotalDebit: dec("10000"), TotalCredit: dec("0")},
		{AccountID: "cash", Code: "1101", AccountType: Asset, TotalDebit: dec("20000"), TotalCredit: dec("0")},
		{AccountID: "idle", Code: "6101", AccountType: Expense, TotalDebit: dec("5"), TotalCredit: dec("5")},
	}

	lines, revenue, expense, net := ClosingLines(totals, "re")

	assert.Equal(t, "50000.00", revenue.StringFixed(2))
	assert.Equal(t, "30000.00", expense.StringFixed(2))
	assert.Equal(t, "20000.00", net.StringFixed(2))
	require.Len(t, lines, 4)
	assert.Equal(t, "rev", lines[0].AccountID)
	assert.True(t, lines[0].Debit.Equal(dec("50000")))
	assert.True(t, lines[1].Credit.Equal(dec("20000")))
	last := lines[3]
	assert.Equal(t, "re", last.AccountID)
	assert.True(t, last.Credit.Equal(dec("20000")))

	entry, err := NewJournalEntry(NewJournalEntryParams{
		TenantID: "t1", EntryDate: time.Now(), Description: "close", Lines: lines, NewLineID: seqIDs("l"),
	})
	require.NoError(t, err)
	assert.True(t, entry.TotalDebit.Equal(dec("50000")))
}

func TestClosingLines_Loss(t *testing.T) {
	totals := []AccountTotals{
		{AccountID: "rev", AccountType: Revenue, TotalDebit: dec("0"), TotalCredit: dec("1000")},
		{AccountID: "opex", AccountType: Expense, TotalDebit: dec("1500"), TotalCredit: dec("0")},
	}
	lines, _, _, net := ClosingLines(totals, "re")
	assert.Equal(t, "-500.00", net.StringFixed(2))
	require.Len(t, lines, 3)
	assert.True(t, lines[2].Debit.Equal(dec("500")))
}
