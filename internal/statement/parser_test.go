package statement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/SscSPs/travel_ledger/internal/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParse_Generic(t *testing.T) {
	csv := `Date,Description,Reference,Amount
2026-01-05,Booking BK-1001 receipt,UTR123,"11,800.00"
2026-01-06,Vendor payout,NEFT99,-2500.50
`
	rows, rowErrs, err := statement.Parse([]byte(csv), "")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, date(2026, 1, 5), rows[0].Date)
	assert.Equal(t, "Booking BK-1001 receipt", rows[0].Description)
	assert.Equal(t, "UTR123", rows[0].Reference)
	assert.True(t, decimal.RequireFromString("11800").Equal(rows[0].Amount))
	assert.Equal(t, 2, rows[0].Line)

	assert.True(t, decimal.RequireFromString("-2500.50").Equal(rows[1].Amount))
	assert.Equal(t, 3, rows[1].Line)
}

func TestParse_HDFCSplitColumnsWithPreamble(t *testing.T) {
	csv := `Statement of account
Account No;50100012345

Date;Narration;Chq./Ref.No.;Value Dt;Withdrawal Amt.;Deposit Amt.;Closing Balance
05/01/26;UPI-CUSTOMER;0000412;05/01/26;;1180.00;5180.00
06/01/26;NEFT-AIRLINE;0000413;07/01/26;1000.00;;4180.00
`
	rows, rowErrs, err := statement.Parse([]byte(csv), "hdfc")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.True(t, decimal.RequireFromString("1180").Equal(rows[0].Amount))
	assert.True(t, decimal.RequireFromString("-1000").Equal(rows[1].Amount))
	require.NotNil(t, rows[1].ValueDate)
	assert.Equal(t, date(2026, 1, 7), *rows[1].ValueDate)
	assert.Equal(t, "0000413", rows[1].Reference)
}

func TestParse_BadRowsAreReportedNotFatal(t *testing.T) {
	csv := `Date,Description,Reference,Amount
2026-01-05,Good,R1,100
not-a-date,Bad date,R2,100
2026-01-07,Bad amount,R3,abc
2026-01-08,,R4,10
2026-01-09,Zero,R5,0
2026-01-10,Good again,R6,(50.00)
`
	rows, rowErrs, err := statement.Parse([]byte(csv), "generic")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, decimal.RequireFromString("-50").Equal(rows[1].Amount))

	require.Len(t, rowErrs, 4)
	lines := make([]int, 0, len(rowErrs))
	for _, e := range rowErrs {
		lines = append(lines, e.Line)
		assert.NotEmpty(t, e.Message)
	}
	assert.Equal(t, []int{3, 4, 5, 6}, lines)
}

func TestParse_DrCrMarkers(t *testing.T) {
	csv := "Date|Description|Reference|Amount\n2026-02-01|Fee|F1|250.00 Dr\n2026-02-02|Refund|F2|99.10Cr\n"
	rows, rowErrs, err := statement.Parse([]byte(csv), "")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)
	assert.True(t, decimal.RequireFromString("-250").Equal(rows[0].Amount))
	assert.True(t, decimal.RequireFromString("99.10").Equal(rows[1].Amount))
}

func TestParse_Windows1252(t *testing.T) {
	src := "Date,Description,Reference,Amount\n2026-01-05,Hôtel Café Réunion,H1,100\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(src)
	require.NoError(t, err)

	rows, _, err := statement.Parse([]byte(encoded), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hôtel Café Réunion", rows[0].Description)
}

func TestParse_UTF16WithBOM(t *testing.T) {
	src := "Date,Description,Reference,Amount\n2026-01-05,Visa fee,V1,-75\n"
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(src)
	require.NoError(t, err)

	rows, _, err := statement.Parse([]byte(encoded), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Visa fee", rows[0].Description)
}

func TestParse_UTF8BOMIsStripped(t *testing.T) {
	src := "\xEF\xBB\xBFDate,Description,Reference,Amount\n2026-01-05,Tour,T1,10\n"
	rows, _, err := statement.Parse([]byte(src), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParse_Errors(t *testing.T) {
	_, _, err := statement.Parse([]byte("a,b\n1,2\n"), "")
	assert.ErrorIs(t, err, statement.ErrNoHeader)

	_, _, err = statement.Parse([]byte("Date,Description,Amount\n"), "nope")
	assert.ErrorIs(t, err, statement.ErrUnknownProfile)
}

func TestProfiles(t *testing.T) {
	assert.Contains(t, statement.Profiles(), "generic")
	assert.Contains(t, statement.Profiles(), "hdfc")
}
