package accounting

import (
	"testing"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func gst(rate string, method domain.CalculationMethod, cat domain.TaxCategory) domain.TaxCode {
	return domain.TaxCode{Code: "GST" + rate, TaxType: domain.TaxGST, Category: cat, Rate: d(rate), CalculationMethod: method}
}

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name                                    string
		base                                    string
		code                                    domain.TaxCode
		place                                   domain.PlaceOfSupply
		taxable, cgst, sgst, igst, total, gross string
	}{
		{"exclusive intra", "1000", gst("18", domain.Exclusive, domain.CategoryStandard), domain.IntraState, "1000.00", "90.00", "90.00", "0.00", "180.00", "1180.00"},
		{"exclusive inter", "1000", gst("18", domain.Exclusive, domain.CategoryStandard), domain.InterState, "1000.00", "0.00", "0.00", "180.00", "180.00", "1180.00"},
		{"inclusive inter", "1180", gst("18", domain.Inclusive, domain.CategoryStandard), domain.InterState, "1000.00", "0.00", "0.00", "180.00", "180.00", "1180.00"},
		{"inclusive intra", "1180", gst("18", domain.Inclusive, domain.CategoryStandard), domain.IntraState, "1000.00", "90.00", "90.00", "0.00", "180.00", "1180.00"},
		{"export", "500", gst("5", domain.Exclusive, domain.CategoryStandard), domain.Export, "500.00", "0.00", "0.00", "25.00", "25.00", "525.00"},
		{"exempt", "1000", gst("18", domain.Exclusive, domain.CategoryExempt), domain.IntraState, "1000.00", "0.00", "0.00", "0.00", "0.00", "1000.00"},
		{"zero rated", "1000", gst("18", domain.Inclusive, domain.CategoryZeroRated), domain.InterState, "1000.00", "0.00", "0.00", "0.00", "0.00", "1000.00"},
		{"odd inclusive split", "100", gst("5", domain.Inclusive, domain.CategoryStandard), domain.IntraState, "95.24", "2.38", "2.38", "0.00", "4.76", "100.00"},
		{"odd exclusive intra", "999.99", gst("12", domain.Exclusive, domain.CategoryStandard), domain.IntraState, "999.99", "60.00", "60.00", "0.00", "120.00", "1119.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTax(d(tt.base), tt.code, tt.place)
			assert.Equal(t, tt.taxable, got.TaxableAmount.StringFixed(2))
			assert.Equal(t, tt.cgst, got.CGST.StringFixed(2))
			assert.Equal(t, tt.sgst, got.SGST.StringFixed(2))
			assert.Equal(t, tt.igst, got.IGST.StringFixed(2))
			assert.Equal(t, tt.total, got.TotalTax.StringFixed(2))
			assert.Equal(t, tt.gross, got.TotalAmount.StringFixed(2))
			assert.True(t, got.CGST.Add(got.SGST).Add(got.IGST).Equal(got.TotalTax))
		})
	}
}

func TestCalculateTDS(t *testing.T) {
	tds194C := domain.TaxCode{Code: "TDS194C", TaxType: domain.TaxTDS, Section: "194C", Rate: d("2"), ThresholdAmount: d("30000")}

	got := CalculateTDS(d("10000"), domain.TaxCode{Code: "TDS194C", Section: "194C", Rate: d("2")})
	assert.Equal(t, "200.00", got.TDSAmount.StringFixed(2))
	assert.Equal(t, "9800.00", got.NetPayable.StringFixed(2))

	below := CalculateTDS(d("10000"), tds194C)
	assert.True(t, below.TDSAmount.IsZero())
	assert.Equal(t, "10000.00", below.NetPayable.StringFixed(2))

	above := CalculateTDS(d("45000"), tds194C)
	assert.Equal(t, "900.00", above.TDSAmount.StringFixed(2))
	assert.Equal(t, "44100.00", above.NetPayable.StringFixed(2))
	assert.Equal(t, "194C", above.Section)
}

func TestNextRunningBalance(t *testing.T) {
	debit := domain.JournalLine{AccountID: "a", DebitAmount: d("100"), CreditAmount: decimal.Zero}
	credit := domain.JournalLine{AccountID: "a", DebitAmount: decimal.Zero, CreditAmount: d("40")}

	bal, err := NextRunningBalance(decimal.Zero, debit, domain.NormalDebit)
	assert.NoError(t, err)
	bal, err = NextRunningBalance(bal, credit, domain.NormalDebit)
	assert.NoError(t, err)
	assert.Equal(t, "60.00", bal.StringFixed(2))

	bal, err = NextRunningBalance(decimal.Zero, debit, domain.NormalCredit)
	assert.NoError(t, err)
	assert.Equal(t, "-100.00", bal.StringFixed(2))

	_, err = NextRunningBalance(decimal.Zero, debit, domain.NormalBalance("SIDEWAYS"))
	assert.Error(t, err)
}
