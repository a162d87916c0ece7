package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount mirrors one ledger asset account.
type BankAccount struct {
	BankAccountID         string           `json:"bankAccountID"`
	TenantID              string           `json:"tenantID"`
	BranchID              string           `json:"branchID,omitempty"`
	GLAccountID           string           `json:"glAccountID"`
	Name                  string           `json:"name"`
	BankName              string           `json:"bankName"`
	AccountNumberMasked   string           `json:"accountNumberMasked"`
	CurrencyCode          string           `json:"currencyCode"`
	OpeningBalance        decimal.Decimal  `json:"openingBalance"`
	CurrentBalance        decimal.Decimal  `json:"currentBalance"`
	LastReconciledDate    *time.Time       `json:"lastReconciledDate,omitempty"`
	LastReconciledBalance *decimal.Decimal `json:"lastReconciledBalance,omitempty"`
	IsActive              bool             `json:"isActive"`
	AuditFields
}

// MaskAccountNumber keeps only the last four characters visible.
func MaskAccountNumber(number string) string {
	n := strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("X", len(n)-4) + n[len(n)-4:]
}

// BankTransactionSource says where a bank transaction came from.
type BankTransactionSource string

const (
	BankSourceManual BankTransactionSource = "MANUAL"
	BankSourceImport BankTransactionSource = "IMPORT"
)

// BankTransaction is an append-only bank feed row. Amount is signed:
// positive for deposits, negative for withdrawals.
type BankTransaction struct {
	BankTransactionID    string                `json:"bankTransactionID"`
	TenantID             string                `json:"tenantID"`
	BankAccountID        string                `json:"bankAccountID"`
	TransactionDate      time.Time             `json:"transactionDate"`
	ValueDate            *time.Time            `json:"valueDate,omitempty"`
	Description          string                `json:"description"`
	Reference            string                `json:"reference,omitempty"`
	Amount               decimal.Decimal       `json:"amount"`
	Source               BankTransactionSource `json:"source"`
	ImportID             *string               `json:"importID,omitempty"`
	DedupKey             string                `json:"dedupKey"`
	IsReconciled         bool                  `json:"isReconciled"`
	ReconciliationID     *string               `json:"reconciliationID,omitempty"`
	MatchedLedgerEntryID *string               `json:"matchedLedgerEntryID,omitempty"`
	MatchedEntryID       *string               `json:"matchedEntryID,omitempty"`
	MatchConfidence      *int                  `json:"matchConfidence,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	CreatedBy            string                `json:"createdBy"`
}

// DedupKey identifies a statement row by date, amount and reference.
func DedupKey(date time.Time, amount decimal.Decimal, reference string) string {
	return fmt.Sprintf("%s|%s|%s", DateOnly(date).Format("2006-01-02"), amount.StringFixed(2), strings.ToUpper(strings.TrimSpace(reference)))
}

// ReconciliationStatus is the state of a reconciliation session.
type ReconciliationStatus string

const (
	ReconciliationInProgress ReconciliationStatus = "IN_PROGRESS"
	ReconciliationCompleted  ReconciliationStatus = "COMPLETED"
)

// BankReconciliation is a session matching a statement against the feed.
type BankReconciliation struct {
	ReconciliationID  string               `json:"reconciliationID"`
	TenantID          string               `json:"tenantID"`
	BankAccountID     string               `json:"bankAccountID"`
	StatementDate     time.Time            `json:"statementDate"`
	StatementBalance  decimal.Decimal      `json:"statementBalance"`
	Status            ReconciliationStatus `json:"status"`
	ReconciledBalance *decimal.Decimal     `json:"reconciledBalance,omitempty"`
	Difference        *decimal.Decimal     `json:"difference,omitempty"`
	StartedBy         string               `json:"startedBy"`
	StartedAt         time.Time            `json:"startedAt"`
	CompletedBy       *string              `json:"completedBy,omitempty"`
	CompletedAt       *time.Time           `json:"completedAt,omitempty"`
}

// MatchType classifies an auto-match result.
type MatchType string

const (
	MatchExact     MatchType = "EXACT"
	MatchSuggested MatchType = "SUGGESTED"
	MatchNone      MatchType = "UNMATCHED"
)

// MatchResult is the best ledger candidate found for one bank transaction.
type MatchResult struct {
	BankTransactionID string          `json:"bankTransactionID"`
	LedgerEntryID     string          `json:"ledgerEntryID,omitempty"`
	EntryID           string          `json:"entryID,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Type              MatchType       `json:"type"`
	Confidence        int             `json:"confidence"`
	DaysApart         int             `json:"daysApart"`
	ReferenceMatched  bool            `json:"referenceMatched"`
	Applied           bool            `json:"applied"`
}

// AutoMatchSummary counts results of one auto-match run.
type AutoMatchSummary struct {
	BankAccountID string        `json:"bankAccountID"`
	Results       []MatchResult `json:"results"`
	Exact         int           `json:"exact"`
	Suggested     int           `json:"suggested"`
	Unmatched     int           `json:"unmatched"`
	Applied       int           `json:"applied"`
}

// StatementRow is one parsed line of a bank statement.
type StatementRow struct {
	Line        int             `json:"line"`
	Date        time.Time       `json:"date"`
	ValueDate   *time.Time      `json:"valueDate,omitempty"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
}

// DedupKey returns the row's deduplication key.
func (r StatementRow) DedupKey() string {
	return DedupKey(r.Date, r.Amount, r.Reference)
}

// RowError reports why one statement line was not imported.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult counts the outcome of a statement import.
type ImportResult struct {
	ImportID   string     `json:"importID"`
	Imported   int        `json:"imported"`
	Duplicates int        `json:"duplicates"`
	Errors     int        `json:"errors"`
	RowErrors  []RowError `json:"rowErrors,omitempty"`
}

// StatementImport is the audit record of one import.
type StatementImport struct {
	ImportID      string     `json:"importID"`
	TenantID      string     `json:"tenantID"`
	BankAccountID string     `json:"bankAccountID"`
	FileName      string     `json:"fileName"`
	Profile       string     `json:"profile"`
	Imported      int        `json:"imported"`
	Duplicates    int        `json:"duplicates"`
	Errors        int        `json:"errors"`
	RowErrors     []RowError `json:"rowErrors,omitempty"`
	ImportedAt    time.Time  `json:"importedAt"`
	ImportedBy    string     `json:"importedBy"`
}

// SplitDuplicates separates rows already present in existing, or repeated
// earlier in the same batch, from rows that should be inserted.
func SplitDuplicates(rows []StatementRow, existing map[string]struct{}) (fresh []StatementRow, duplicates int) {
	seen := make(map[string]struct{}, len(existing)+len(rows))
	for k := range existing {
		seen[k] = struct{}{}
	}
	for _, r := range rows {
		k := r.DedupKey()
		if _, dup := seen[k]; dup {
			duplicates++
			continue
		}
		seen[k] = struct{}{}
		fresh = append(fresh, r)
	}
	return fresh, duplicates
}
