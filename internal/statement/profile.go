package statement

import "strings"

type amountMode int

const (
	// amountSingle is one signed column.
	amountSingle amountMode = iota
	// amountSplit is a withdrawal column and a deposit column.
	amountSplit
)

// Profile describes the column layout of a bank CSV export.
type Profile struct {
	Name         string
	DateCol      string
	ValueDateCol string
	DescCol      string
	RefCol       string
	AmountMode   amountMode
	AmountCol    string
	DebitCol     string // withdrawals, stored negative
	CreditCol    string // deposits, stored positive
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}
	if p.AmountMode == amountSplit {
		return append(cols, p.DebitCol, p.CreditCol)
	}
	return append(cols, p.AmountCol)
}

// profiles are tried in order during auto-detection; the more specific
// layouts come first.
var profiles = []Profile{
	{
		Name:         "hdfc",
		DateCol:      "date",
		ValueDateCol: "value dt",
		DescCol:      "narration",
		RefCol:       "chq./ref.no.",
		AmountMode:   amountSplit,
		DebitCol:     "withdrawal amt.",
		CreditCol:    "deposit amt.",
	},
	{
		Name:         "icici",
		DateCol:      "transaction date",
		ValueDateCol: "value date",
		DescCol:      "transaction remarks",
		RefCol:       "cheque number",
		AmountMode:   amountSplit,
		DebitCol:     "withdrawal amount (inr )",
		CreditCol:    "deposit amount (inr )",
	},
	{
		Name:       "split",
		DateCol:    "date",
		DescCol:    "description",
		RefCol:     "reference",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Name:         "generic",
		DateCol:      "date",
		ValueDateCol: "value date",
		DescCol:      "description",
		RefCol:       "reference",
		AmountMode:   amountSingle,
		AmountCol:    "amount",
	},
}

// Profiles returns the names of the known layouts.
func Profiles() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

func findProfile(name string) (*Profile, bool) {
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, name) {
			return &profiles[i], true
		}
	}
	return nil, false
}
