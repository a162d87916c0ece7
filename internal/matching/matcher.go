// Package matching pairs bank feed rows with unmatched ledger rows of the
// bank's GL account.
package matching

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

const (
	// ExactThreshold is the lowest confidence stored automatically.
	ExactThreshold = 95
	// PenaltyPerDay is subtracted for every day between the two dates.
	PenaltyPerDay = 5
	// ReferenceBonus is added when the references overlap.
	ReferenceBonus = 20
)

// AmountTolerance is the largest amount difference still considered equal.
var AmountTolerance = decimal.RequireFromString("0.01")

// Score returns the confidence that txn and row record the same movement,
// or false when their amounts differ.
func Score(txn domain.BankTransaction, row domain.LedgerEntry) (confidence, daysApart int, refMatched bool, ok bool) {
	if txn.Amount.Sub(row.BankAmount()).Abs().GreaterThan(AmountTolerance) {
		return 0, 0, false, false
	}
	daysApart = dayDiff(txn.TransactionDate, row.EntryDate)
	confidence = 100 - PenaltyPerDay*daysApart
	refMatched = referencesOverlap(txn.Reference, row.Reference)
	if refMatched {
		confidence += ReferenceBonus
	}
	return clamp(confidence), daysApart, refMatched, true
}

// Classify maps a confidence to its match type.
func Classify(confidence int) domain.MatchType {
	switch {
	case confidence >= ExactThreshold:
		return domain.MatchExact
	case confidence > 0:
		return domain.MatchSuggested
	default:
		return domain.MatchNone
	}
}

// Run finds the best ledger row for each transaction. Transactions are
// visited in date order and a matched ledger row is not offered again.
// Results are returned in the same order as txns.
func Run(txns []domain.BankTransaction, rows []domain.LedgerEntry) []domain.MatchResult {
	order := make([]int, len(txns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return txns[order[a]].TransactionDate.Before(txns[order[b]].TransactionDate)
	})

	claimed := make(map[string]struct{}, len(rows))
	results := make([]domain.MatchResult, len(txns))
	for _, i := range order {
		txn := txns[i]
		res := domain.MatchResult{BankTransactionID: txn.BankTransactionID, Amount: txn.Amount, Type: domain.MatchNone}

		best := -1
		for j, row := range rows {
			if _, taken := claimed[row.LedgerEntryID]; taken {
				continue
			}
			conf, days, ref, ok := Score(txn, row)
			if !ok || conf <= 0 {
				continue
			}
			if best < 0 || conf > res.Confidence || (conf == res.Confidence && days < res.DaysApart) {
				best = j
				res.Confidence, res.DaysApart, res.ReferenceMatched = conf, days, ref
			}
		}

		if best >= 0 {
			res.LedgerEntryID = rows[best].LedgerEntryID
			res.EntryID = rows[best].EntryID
			res.Type = Classify(res.Confidence)
			claimed[res.LedgerEntryID] = struct{}{}
		}
		results[i] = res
	}
	return results
}

func dayDiff(a, b time.Time) int {
	d := int(domain.DateOnly(a).Sub(domain.DateOnly(b)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

func referencesOverlap(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func clamp(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
