package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the immutable effect of one posted journal line.
type LedgerEntry struct {
	LedgerEntryID  string          `json:"ledgerEntryID"`
	TenantID       string          `json:"tenantID"`
	AccountID      string          `json:"accountID"`
	EntryID        string          `json:"entryID"`
	LineID         string          `json:"lineID"`
	EntryNumber    int64           `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Sequence       int64           `json:"sequence"`
	Dimensions
	CreatedAt time.Time `json:"createdAt"`
}

// BankAmount is the ledger row seen from the bank's side: debit minus credit.
func (l LedgerEntry) BankAmount() decimal.Decimal {
	return l.DebitAmount.Sub(l.CreditAmount)
}

// AccountLedger is a paginated view of one account between two dates.
type AccountLedger struct {
	Account        Account         `json:"account"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Entries        []LedgerEntry   `json:"entries"`
	NextToken      *string         `json:"nextToken,omitempty"`
}

// AccountTotals holds summed posting activity of one account.
type AccountTotals struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
}

// NetBalance returns the balance in the account's normal direction.
func (t AccountTotals) NetBalance() decimal.Decimal {
	return SignedByNormal(t.NormalBalance, t.TotalDebit, t.TotalCredit)
}

// SignedByNormal applies the running balance sign convention.
func SignedByNormal(nb NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if nb == NormalCredit {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// TrialBalanceRow is one account's line in a trial balance.
type TrialBalanceRow struct {
	AccountTotals
	Balance      decimal.Decimal `json:"balance"`
	DebitColumn  decimal.Decimal `json:"debitColumn"`
	CreditColumn decimal.Decimal `json:"creditColumn"`
}

// TrialBalance lists every posted account balance as of a date.
type TrialBalance struct {
	TenantID    string            `json:"tenantID"`
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Difference  decimal.Decimal   `json:"difference"`
	IsBalanced  bool              `json:"isBalanced"`
}

// BalanceEpsilon is the largest debit/credit gap still treated as balanced.
var BalanceEpsilon = decimal.RequireFromString("0.01")

// BuildTrialBalance places each account's net balance in the debit or credit
// column and checks the column totals.
func BuildTrialBalance(tenantID string, asOf time.Time, totals []AccountTotals) TrialBalance {
	tb := TrialBalance{
		TenantID:    tenantID,
		AsOf:        asOf,
		Rows:        make([]TrialBalanceRow, 0, len(totals)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, t := range totals {
		row := TrialBalanceRow{AccountTotals: t, Balance: t.NetBalance(), DebitColumn: decimal.Zero, CreditColumn: decimal.Zero}
		raw := t.TotalDebit.Sub(t.TotalCredit)
		if raw.IsPositive() {
			row.DebitColumn = raw
		} else {
			row.CreditColumn = raw.Neg()
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.DebitColumn)
		tb.TotalCredit = tb.TotalCredit.Add(row.CreditColumn)
		tb.Rows = append(tb.Rows, row)
	}
	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit)
	tb.IsBalanced = tb.Difference.Abs().LessThanOrEqual(BalanceEpsilon)
	return tb
}

// PartyType selects the dimension a sub-ledger filters on.
type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartyVendor   PartyType = "VENDOR"
	PartyEmployee PartyType = "EMPLOYEE"
)

// Valid reports whether p is a known party type.
func (p PartyType) Valid() bool {
	return p == PartyCustomer || p == PartyVendor || p == PartyEmployee
}

// NormalBalance is the side a party's outstanding balance sits on: customers
// owe us, vendors and employees are owed.
func (p PartyType) NormalBalance() NormalBalance {
	if p == PartyCustomer {
		return NormalDebit
	}
	return NormalCredit
}

// SubLedger shows every posting tagged with one party.
type SubLedger struct {
	PartyType PartyType       `json:"partyType"`
	PartyID   string          `json:"partyID"`
	AsOf      time.Time       `json:"asOf"`
	Entries   []LedgerEntry   `json:"entries"`
	Accounts  []AccountTotals `json:"accounts"`
	Balance   decimal.Decimal `json:"balance"`
}

// PartyBalance is one party's outstanding balance.
type PartyBalance struct {
	PartyID     string          `json:"partyID"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// ProfitDimension selects the tag profitability is grouped by.
type ProfitDimension string

const (
	DimensionTrip       ProfitDimension = "TRIP"
	DimensionCostCenter ProfitDimension = "COST_CENTER"
	DimensionBranch     ProfitDimension = "BRANCH"
)

// Valid reports whether d is a known dimension.
func (d ProfitDimension) Valid() bool {
	return d == DimensionTrip || d == DimensionCostCenter || d == DimensionBranch
}

// Account code prefixes used to bucket profitability.
const (
	PrefixRevenue    = "4"
	PrefixDirectCost = "5"
	PrefixOperating  = "6"
	PrefixCash       = "11"
)

// DimensionPosting is a summed posting of one account under one dimension key.
type DimensionPosting struct {
	Key         string          `json:"key"`
	AccountCode string          `json:"accountCode"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// Profitability is the result for one dimension key.
type Profitability struct {
	Key              string          `json:"key"`
	Revenue          decimal.Decimal `json:"revenue"`
	DirectCost       decimal.Decimal `json:"directCost"`
	OperatingExpense decimal.Decimal `json:"operatingExpense"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	MarginPercent    decimal.Decimal `json:"marginPercent"`
}

// BuildProfitability buckets postings by account code prefix.
// Keys are returned in first-seen order.
func BuildProfitability(postings []DimensionPosting) []Profitability {
	index := make(map[string]int)
	out := make([]Profitability, 0)
	for _, p := range postings {
		i, ok := index[p.Key]
		if !ok {
			i = len(out)
			index[p.Key] = i
			out = append(out, Profitability{
				Key:              p.Key,
				Revenue:          decimal.Zero,
				DirectCost:       decimal.Zero,
				OperatingExpense: decimal.Zero,
			})
		}
		switch {
		case strings.HasPrefix(p.AccountCode, PrefixRevenue):
			out[i].Revenue = out[i].Revenue.Add(p.TotalCredit.Sub(p.TotalDebit))
		case strings.HasPrefix(p.AccountCode, PrefixDirectCost):
			out[i].DirectCost = out[i].DirectCost.Add(p.TotalDebit.Sub(p.TotalCredit))
		case strings.HasPrefix(p.AccountCode, PrefixOperating):
			out[i].OperatingExpense = out[i].OperatingExpense.Add(p.TotalDebit.Sub(p.TotalCredit))
		}
	}
	hundred := decimal.NewFromInt(100)
	for i := range out {
		out[i].GrossProfit = out[i].Revenue.Sub(out[i].DirectCost)
		out[i].NetProfit = out[i].GrossProfit.Sub(out[i].OperatingExpense)
		out[i].MarginPercent = decimal.Zero
		if !out[i].Revenue.IsZero() {
			out[i].MarginPercent = out[i].NetProfit.Mul(hundred).Div(out[i].Revenue).Round(2)
		}
	}
	return out
}

// CashAccountPosition is one cash or bank account in a cash position report.
type CashAccountPosition struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// CashPosition aggregates cash and bank balances plus flows over a window.
type CashPosition struct {
	AsOf         time.Time             `json:"asOf"`
	From         time.Time             `json:"from"`
	Accounts     []CashAccountPosition `json:"accounts"`
	TotalBalance decimal.Decimal       `json:"totalBalance"`
	Inflow       decimal.Decimal       `json:"inflow"`
	Outflow      decimal.Decimal       `json:"outflow"`
	NetFlow      decimal.Decimal       `json:"netFlow"`
}
