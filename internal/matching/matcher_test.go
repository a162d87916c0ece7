package matching_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/matching"
)

var base = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func txn(id string, days int, amount, ref string) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID: id,
		TransactionDate:   base.AddDate(0, 0, days),
		Amount:            decimal.RequireFromString(amount),
		Reference:         ref,
	}
}

func debitRow(id string, days int, amount, ref string) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID: id,
		EntryID:       "je-" + id,
		EntryDate:     base.AddDate(0, 0, days),
		DebitAmount:   decimal.RequireFromString(amount),
		CreditAmount:  decimal.Zero,
		Reference:     ref,
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		txn      domain.BankTransaction
		row      domain.LedgerEntry
		wantOK   bool
		wantConf int
		wantType domain.MatchType
	}{
		{"same day", txn("t", 0, "500", ""), debitRow("l", 0, "500", ""), true, 100, domain.MatchExact},
		{"three days apart", txn("t", 3, "500", ""), debitRow("l", 0, "500", ""), true, 85, domain.MatchSuggested},
		{"three days apart with reference", txn("t", 3, "500", "UTR-9981"), debitRow("l", 0, "500", "utr-9981 booking"), true, 100, domain.MatchExact},
		{"within a paisa", txn("t", 1, "500.00", ""), debitRow("l", 0, "500.01", ""), true, 95, domain.MatchExact},
		{"amount differs", txn("t", 0, "500", ""), debitRow("l", 0, "500.02", ""), false, 0, domain.MatchNone},
		{"far apart", txn("t", 25, "500", ""), debitRow("l", 0, "500", ""), true, 0, domain.MatchNone},
		{"sign matters", txn("t", 0, "-500", ""), debitRow("l", 0, "500", ""), false, 0, domain.MatchNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, _, _, ok := matching.Score(tt.txn, tt.row)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantConf, conf)
				assert.Equal(t, tt.wantType, matching.Classify(conf))
			}
		})
	}
}

func TestScore_WithdrawalMatchesCredit(t *testing.T) {
	row := domain.LedgerEntry{LedgerEntryID: "l", EntryDate: base, DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("250")}
	conf, _, _, ok := matching.Score(txn("t", 0, "-250", ""), row)
	require.True(t, ok)
	assert.Equal(t, 100, conf)
}

func TestRun_PrefersHighestThenClosest(t *testing.T) {
	rows := []domain.LedgerEntry{
		debitRow("far", -4, "100", ""),
		debitRow("near-after", 2, "100", ""),
		debitRow("near-before", -2, "100", ""),
		debitRow("ref", -6, "100", "INV-7"),
	}
	results := matching.Run([]domain.BankTransaction{txn("t1", 0, "100", "inv-7")}, rows)
	require.Len(t, results, 1)
	// Three rows score 90; the closest date wins and the first of equals is kept.
	assert.Equal(t, "near-after", results[0].LedgerEntryID)
	assert.Equal(t, 90, results[0].Confidence)
	assert.Equal(t, domain.MatchSuggested, results[0].Type)
}

func TestRun_LedgerRowClaimedOnce(t *testing.T) {
	rows := []domain.LedgerEntry{debitRow("l1", 0, "100", "")}
	results := matching.Run([]domain.BankTransaction{
		txn("later", 2, "100", ""),
		txn("earlier", 0, "100", ""),
	}, rows)
	require.Len(t, results, 2)

	assert.Equal(t, "later", results[0].BankTransactionID)
	assert.Equal(t, domain.MatchNone, results[0].Type)
	assert.Empty(t, results[0].LedgerEntryID)

	assert.Equal(t, "earlier", results[1].BankTransactionID)
	assert.Equal(t, domain.MatchExact, results[1].Type)
	assert.Equal(t, "l1", results[1].LedgerEntryID)
	assert.Equal(t, "je-l1", results[1].EntryID)
}

func TestRun_Empty(t *testing.T) {
	assert.Empty(t, matching.Run(nil, nil))
}
