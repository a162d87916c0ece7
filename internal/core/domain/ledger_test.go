package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedByNormal(t *testing.T) {
	assert.Equal(t, "70.00", SignedByNormal(NormalDebit, dec("100"), dec("30")).StringFixed(2))
	assert.Equal(t, "-70.00", SignedByNormal(NormalCredit, dec("100"), dec("30")).StringFixed(2))
}

func TestBuildTrialBalance(t *testing.T) {
	totals := []AccountTotals{
		{AccountID: "cash", Code: "1101", AccountType: Asset, NormalBalance: NormalDebit, TotalDebit: dec("1180"), TotalCredit: dec("0")},
		{AccountID: "rev", Code: "4101", AccountType: Revenue, NormalBalance: NormalCredit, TotalDebit: dec("0"), TotalCredit: dec("1000")},
		{AccountID: "gst", Code: "2201", AccountType: Liability, NormalBalance: NormalCredit, TotalDebit: dec("0"), TotalCredit: dec("180")},
	}

	tb := BuildTrialBalance("t1", time.Now(), totals)

	require.Len(t, tb.Rows, 3)
	assert.True(t, tb.IsBalanced)
	assert.Equal(t, "1180.00", tb.TotalDebit.StringFixed(2))
	assert.Equal(t, "1180.00", tb.TotalCredit.StringFixed(2))
	assert.Equal(t, "1000.00", tb.Rows[1].Balance.StringFixed(2), "revenue shown positive in its normal direction")
	assert.Equal(t, "1000.00", tb.Rows[1].CreditColumn.StringFixed(2))
	assert.True(t, tb.Rows[1].DebitColumn.IsZero())
}

func TestBuildTrialBalance_FlagsImbalanceBeyondEpsilon(t *testing.T) {
	totals := []AccountTotals{
		{AccountID: "a", NormalBalance: NormalDebit, TotalDebit: dec("100.02"), TotalCredit: dec("0")},
		{AccountID: "b", NormalBalance: NormalCredit, TotalDebit: dec("0"), TotalCredit: dec("100")},
	}
	tb := BuildTrialBalance("t1", time.Now(), totals)
	assert.False(t, tb.IsBalanced)
	assert.Equal(t, "0.02", tb.Difference.StringFixed(2))

	totals[0].TotalDebit = dec("100.01")
	assert.True(t, BuildTrialBalance("t1", time.Now(), totals).IsBalanced)
}

func TestBuildProfitability(t *testing.T) {
	postings := []DimensionPosting{
		{Key: "trip-1", AccountCode: "4101", TotalDebit: dec("0"), TotalCredit: dec("10000")},
		{Key: "trip-1", AccountCode: "4901", TotalDebit: dec("1000"), TotalCredit: dec("0")},
		{Key: "trip-1", AccountCode: "5101", TotalDebit: dec("6000"), TotalCredit: dec("0")},
		{Key: "trip-1", AccountCode: "6201", TotalDebit: dec("900"), TotalCredit: dec("0")},
		{Key: "trip-1", AccountCode: "1201", TotalDebit: dec("11800"), TotalCredit: dec("0")},
		{Key: "trip-2", AccountCode: "5101", TotalDebit: dec("500"), TotalCredit: dec("0")},
	}

	out := BuildProfitability(postings)

	require.Len(t, out, 2)
	trip1 := out[0]
	assert.Equal(t, "trip-1", trip1.Key)
	assert.Equal(t, "9000.00", trip1.Revenue.StringFixed(2))
	assert.Equal(t, "6000.00", trip1.DirectCost.StringFixed(2))
	assert.Equal(t, "3000.00", trip1.GrossProfit.StringFixed(2))
	assert.Equal(t, "2100.00", trip1.NetProfit.StringFixed(2))
	assert.Equal(t, "23.33", trip1.MarginPercent.StringFixed(2))

	trip2 := out[1]
	assert.Equal(t, "-500.00", trip2.NetProfit.StringFixed(2))
	assert.True(t, trip2.MarginPercent.IsZero())
}

func TestPartyTypeNormalBalance(t *testing.T) {
	assert.Equal(t, NormalDebit, PartyCustomer.NormalBalance())
	assert.Equal(t, NormalCredit, PartyVendor.NormalBalance())
	assert.Equal(t, NormalCredit, PartyEmployee.NormalBalance())
}
