package seed

import (
	"testing"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChart_ContainsWellKnownCodes(t *testing.T) {
	chart, err := Chart()
	require.NoError(t, err)

	byCode := make(map[string]AccountDef, len(chart))
	for _, a := range chart {
		byCode[a.Code] = a
	}

	wellKnown := map[string]domain.AccountType{
		domain.CodeCash:                  domain.Asset,
		domain.CodeBank:                  domain.Asset,
		domain.CodeAccountsReceivable:    domain.Asset,
		domain.CodeInputTaxCredit:        domain.Asset,
		domain.CodeInterBranchReceivable: domain.Asset,
		domain.CodeAccountsPayable:       domain.Liability,
		domain.CodeOutputTaxPayable:      domain.Liability,
		domain.CodeTDSPayable:            domain.Liability,
		domain.CodeSalariesPayable:       domain.Liability,
		domain.CodeInterBranchPayable:    domain.Liability,
		domain.CodeRetainedEarnings:      domain.Equity,
		domain.CodeTourRevenue:           domain.Revenue,
		domain.CodeRefunds:               domain.Revenue,
		domain.CodeVendorCost:            domain.Expense,
		domain.CodeSalaries:              domain.Expense,
		domain.CodeGeneralExpenses:       domain.Expense,
	}
	for code, typ := range wellKnown {
		a, ok := byCode[code]
		if assert.True(t, ok, "missing %s", code) {
			assert.Equal(t, typ, a.Type, code)
			assert.False(t, a.Header, "%s must be postable", code)
		}
	}
}

func TestParseChart_RejectsBadOrdering(t *testing.T) {
	_, err := parseChart([]byte(`
accounts:
  - {code: "1101", name: "Cash", type: ASSET, parent: "1100"}
  - {code: "1100", name: "Cash and Bank", type: ASSET, header: true}
`))
	assert.ErrorContains(t, err, "must be listed first")

	_, err = parseChart([]byte(`
accounts:
  - {code: "1000", name: "Assets", type: ASSET, header: true}
  - {code: "4101", name: "Revenue", type: REVENUE, parent: "1000"}
`))
	assert.ErrorContains(t, err, "type differs")
}

func TestTaxCodes(t *testing.T) {
	codes, err := TaxCodes()
	require.NoError(t, err)

	got := make(map[string]TaxCodeDef, len(codes))
	for _, c := range codes {
		got[c.Code] = c
	}
	for _, code := range []string{"GST5", "GST12", "GST18", "GST28", "GST_EXEMPT", "TDS194C", "TDS194J"} {
		assert.Contains(t, got, code)
	}
	assert.Equal(t, "18", got["GST18"].Rate.String())
	assert.Equal(t, domain.CategoryExempt, got["GST_EXEMPT"].Category)
	assert.Equal(t, "194C", got["TDS194C"].Section)
	assert.Equal(t, "30000", got["TDS194C"].Threshold.String())
}
