package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseParams(lines ...LineInstruction) NewJournalEntryParams {
	return NewJournalEntryParams{
		EntryID:     "je-1",
		TenantID:    "t1",
		BranchID:    "b1",
		EntryDate:   time.Date(2025, 4, 10, 15, 30, 0, 0, time.UTC),
		Description: "Tour booking",
		Lines:       lines,
		NewLineID:   seqIDs("line"),
		CreatedBy:   "u1",
		Now:         time.Now(),
	}
}

func TestNewJournalEntry_Balanced(t *testing.T) {
	entry, err := NewJournalEntry(baseParams(
		LineInstruction{AccountID: "ar", Debit: dec("1180")},
		LineInstruction{AccountID: "rev", Credit: dec("1000")},
		LineInstruction{AccountID: "gst", Credit: dec("180")},
	))
	require.NoError(t, err)

	assert.Equal(t, Draft, entry.Status)
	assert.Equal(t, SourceManual, entry.SourceModule)
	assert.True(t, entry.TotalDebit.Equal(dec("1180")))
	assert.True(t, entry.TotalCredit.Equal(entry.TotalDebit))
	assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), entry.EntryDate)
	assert.Len(t, entry.Lines, 3)
	assert.Equal(t, "b1", entry.Lines[0].BranchID, "line inherits entry branch")
	assert.Equal(t, 3, entry.Lines[2].LineNumber)
	assert.True(t, entry.ExchangeRate.Equal(decimal.NewFromInt(1)))
}

func TestNewJournalEntry_RoundsBeforeComparing(t *testing.T) {
	// 33.333 + 66.667 rounds to 33.33 + 66.67 = 100.00
	entry, err := NewJournalEntry(baseParams(
		LineInstruction{AccountID: "a", Debit: dec("100")},
		LineInstruction{AccountID: "b", Credit: dec("33.333")},
		LineInstruction{AccountID: "c", Credit: dec("66.667")},
	))
	require.NoError(t, err)
	assert.Equal(t, "33.33", entry.Lines[1].CreditAmount.StringFixed(2))
}

func TestNewJournalEntry_Unbalanced(t *testing.T) {
	_, err := NewJournalEntry(baseParams(
		LineInstruction{AccountID: "a", Debit: dec("100")},
		LineInstruction{AccountID: "b", Credit: dec("99.99")},
	))
	require.Error(t, err)

	var unbalanced *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.Equal(t, "0.01", unbalanced.TotalDebit.Sub(unbalanced.TotalCredit).StringFixed(2))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewJournalEntry_LineValidation(t *testing.T) {
	tests := []struct {
		name  string
		lines []LineInstruction
	}{
		{"single line", []LineInstruction{{AccountID: "a", Debit: dec("1")}}},
		{"both sides", []LineInstruction{{AccountID: "a", Debit: dec("1"), Credit: dec("1")}, {AccountID: "b", Credit: dec("0")}}},
		{"neither side", []LineInstruction{{AccountID: "a"}, {AccountID: "b", Credit: dec("1")}}},
		{"negative", []LineInstruction{{AccountID: "a", Debit: dec("-1")}, {AccountID: "b", Credit: dec("-1")}}},
		{"missing account", []LineInstruction{{Debit: dec("1")}, {AccountID: "b", Credit: dec("1")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJournalEntry(baseParams(tt.lines...))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestJournalEntry_CanPostAndReverse(t *testing.T) {
	entry, err := NewJournalEntry(baseParams(
		LineInstruction{AccountID: "a", Debit: dec("10")},
		LineInstruction{AccountID: "b", Credit: dec("10")},
	))
	require.NoError(t, err)

	assert.NoError(t, entry.CanPost())
	assert.ErrorIs(t, entry.CanReverse(), apperrors.ErrState)

	entry.Status = Posted
	assert.ErrorIs(t, entry.CanPost(), apperrors.ErrState, "second post must fail")
	assert.NoError(t, entry.CanReverse())

	entry.IsReversed = true
	entry.Status = Reversed
	assert.ErrorIs(t, entry.CanReverse(), apperrors.ErrState)
}

func TestJournalEntry_Mirror(t *testing.T) {
	entry, err := NewJournalEntry(baseParams(
		LineInstruction{AccountID: "ar", Debit: dec("1180"), Dimensions: Dimensions{CustomerID: "c1"}},
		LineInstruction{AccountID: "rev", Credit: dec("1000")},
		LineInstruction{AccountID: "gst", Credit: dec("180")},
	))
	require.NoError(t, err)
	entry.Status = Posted

	rev := entry.Mirror("je-2", time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC), "duplicate booking", seqIDs("rl"), "u2", time.Now())

	require.Len(t, rev.Lines, len(entry.Lines))
	for i := range entry.Lines {
		assert.True(t, entry.Lines[i].DebitAmount.Equal(rev.Lines[i].CreditAmount))
		assert.True(t, entry.Lines[i].CreditAmount.Equal(rev.Lines[i].DebitAmount))
		assert.Equal(t, entry.Lines[i].AccountID, rev.Lines[i].AccountID)
	}
	assert.True(t, entry.TotalDebit.Equal(rev.TotalCredit))
	assert.True(t, entry.TotalCredit.Equal(rev.TotalDebit))
	assert.NoError(t, rev.EnsureBalanced())
	assert.Equal(t, "c1", rev.Lines[0].CustomerID)
	require.NotNil(t, rev.ReversesEntryID)
	assert.Equal(t, "je-1", *rev.ReversesEntryID)
	assert.Equal(t, SourceReversal, rev.SourceModule)

	rev.Status = Posted
	assert.ErrorIs(t, rev.CanReverse(), apperrors.ErrState, "a reversal cannot be reversed")
}

func TestJournalEntry_AccountIDsDistinct(t *testing.T) {
	entry, err := NewJournalEntry(baseParams(
		LineInstruction{AccountID: "a", Debit: dec("5")},
		LineInstruction{AccountID: "a", Debit: dec("5")},
		LineInstruction{AccountID: "b", Credit: dec("10")},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, entry.AccountIDs())
}
