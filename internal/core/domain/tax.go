package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxType distinguishes goods-and-services tax from withholding.
type TaxType string

const (
	TaxGST TaxType = "GST"
	TaxTDS TaxType = "TDS"
)

// TaxCategory controls whether a GST code charges tax at all.
type TaxCategory string

const (
	CategoryStandard  TaxCategory = "STANDARD"
	CategoryExempt    TaxCategory = "EXEMPT"
	CategoryZeroRated TaxCategory = "ZERO_RATED"
)

// CalculationMethod says whether the base amount already contains the tax.
type CalculationMethod string

const (
	Inclusive CalculationMethod = "INCLUSIVE"
	Exclusive CalculationMethod = "EXCLUSIVE"
)

// PlaceOfSupply decides how GST is split.
type PlaceOfSupply string

const (
	IntraState PlaceOfSupply = "INTRA_STATE"
	InterState PlaceOfSupply = "INTER_STATE"
	Export     PlaceOfSupply = "EXPORT"
)

// Valid reports whether p is a known place of supply.
func (p PlaceOfSupply) Valid() bool {
	return p == IntraState || p == InterState || p == Export
}

// ResolvePlaceOfSupply derives the place of supply from the two state codes.
// An unknown party state is treated as intra-state.
func ResolvePlaceOfSupply(branchStateCode, partyStateCode string, isExport bool) PlaceOfSupply {
	if isExport {
		return Export
	}
	if partyStateCode == "" || partyStateCode == branchStateCode {
		return IntraState
	}
	return InterState
}

// TaxCode is a tenant's tax rule.
type TaxCode struct {
	TaxCodeID         string            `json:"taxCodeID"`
	TenantID          string            `json:"tenantID"`
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	TaxType           TaxType           `json:"taxType"`
	Category          TaxCategory       `json:"category"`
	Rate              decimal.Decimal   `json:"rate"`
	CalculationMethod CalculationMethod `json:"calculationMethod"`
	Section           string            `json:"section,omitempty"`
	ThresholdAmount   decimal.Decimal   `json:"thresholdAmount"`
	InputAccountID    *string           `json:"inputAccountID,omitempty"`
	OutputAccountID   *string           `json:"outputAccountID,omitempty"`
	PayableAccountID  *string           `json:"payableAccountID,omitempty"`
	ValidFrom         time.Time         `json:"validFrom"`
	ValidTo           *time.Time        `json:"validTo,omitempty"`
	IsActive          bool              `json:"isActive"`
	AuditFields
}

// ValidOn reports whether the code applies on date.
func (c *TaxCode) ValidOn(date time.Time) bool {
	if !c.IsActive {
		return false
	}
	d := DateOnly(date)
	if d.Before(DateOnly(c.ValidFrom)) {
		return false
	}
	return c.ValidTo == nil || !d.After(DateOnly(*c.ValidTo))
}

// TaxCalculation is the output of a GST calculation.
type TaxCalculation struct {
	TaxCode       string          `json:"taxCode"`
	PlaceOfSupply PlaceOfSupply   `json:"placeOfSupply"`
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	Rate          decimal.Decimal `json:"rate"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// TDSCalculation is the output of a withholding calculation.
type TDSCalculation struct {
	TaxCode    string          `json:"taxCode"`
	Section    string          `json:"section,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Rate       decimal.Decimal `json:"rate"`
	TDSAmount  decimal.Decimal `json:"tdsAmount"`
	NetPayable decimal.Decimal `json:"netPayable"`
}

// TaxDirection tags a tax transaction.
type TaxDirection string

const (
	TaxInput       TaxDirection = "INPUT"
	TaxOutput      TaxDirection = "OUTPUT"
	TaxWithholding TaxDirection = "WITHHOLDING"
)

// Valid reports whether d is a known direction.
func (d TaxDirection) Valid() bool {
	return d == TaxInput || d == TaxOutput || d == TaxWithholding
}

// TaxTransaction is the immutable record of tax on one source transaction.
// Only IsReported and CreditUtilized change after insert.
type TaxTransaction struct {
	TaxTransactionID string          `json:"taxTransactionID"`
	TenantID         string          `json:"tenantID"`
	BranchID         string          `json:"branchID,omitempty"`
	Direction        TaxDirection    `json:"direction"`
	TaxCodeID        string          `json:"taxCodeID"`
	EntryID          *string         `json:"entryID,omitempty"`
	SourceModule     SourceModule    `json:"sourceModule"`
	SourceRecordID   string          `json:"sourceRecordID"`
	TransactionDate  time.Time       `json:"transactionDate"`
	PlaceOfSupply    PlaceOfSupply   `json:"placeOfSupply,omitempty"`
	PartyID          string          `json:"partyID,omitempty"`
	PartyTaxID       string          `json:"partyTaxID,omitempty"`
	Section          string          `json:"section,omitempty"`
	TaxableAmount    decimal.Decimal `json:"taxableAmount"`
	CGST             decimal.Decimal `json:"cgst"`
	SGST             decimal.Decimal `json:"sgst"`
	IGST             decimal.Decimal `json:"igst"`
	TDSAmount        decimal.Decimal `json:"tdsAmount"`
	TotalTax         decimal.Decimal `json:"totalTax"`
	IsReported       bool            `json:"isReported"`
	CreditUtilized   bool            `json:"creditUtilized"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// TaxSplitTotals sums tax by split for one direction.
type TaxSplitTotals struct {
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	Count         int             `json:"count"`
}

// ZeroSplitTotals returns totals with every amount set to zero.
func ZeroSplitTotals() TaxSplitTotals {
	return TaxSplitTotals{TaxableAmount: decimal.Zero, CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero, TotalTax: decimal.Zero}
}

// GSTSummary is a period's GST position.
type GSTSummary struct {
	From               time.Time       `json:"from"`
	To                 time.Time       `json:"to"`
	Output             TaxSplitTotals  `json:"output"`
	Input              TaxSplitTotals  `json:"input"`
	NetPayable         decimal.Decimal `json:"netPayable"`
	CreditCarryForward decimal.Decimal `json:"creditCarryForward"`
}

// NewGSTSummary nets output against input tax. Excess input becomes credit
// carried forward and net payable never goes negative.
func NewGSTSummary(from, to time.Time, output, input TaxSplitTotals) GSTSummary {
	s := GSTSummary{From: from, To: to, Output: output, Input: input, NetPayable: decimal.Zero, CreditCarryForward: decimal.Zero}
	diff := output.TotalTax.Sub(input.TotalTax)
	if diff.IsNegative() {
		s.CreditCarryForward = diff.Neg()
	} else {
		s.NetPayable = diff
	}
	return s
}

// TDSSectionTotal sums withholding for one section.
type TDSSectionTotal struct {
	Section     string          `json:"section"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	TDSAmount   decimal.Decimal `json:"tdsAmount"`
	Count       int             `json:"count"`
}

// TDSSummary is a period's withholding position.
type TDSSummary struct {
	From     time.Time         `json:"from"`
	To       time.Time         `json:"to"`
	Sections []TDSSectionTotal `json:"sections"`
	Total    decimal.Decimal   `json:"total"`
}

// InputCreditBalance is unutilized input tax credit as of a date.
type InputCreditBalance struct {
	AsOf      time.Time       `json:"asOf"`
	Available decimal.Decimal `json:"available"`
	Utilized  decimal.Decimal `json:"utilized"`
}
