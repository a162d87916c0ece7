package dto

import (
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTaxCodeRequest defines the data needed to create a tax code.
type CreateTaxCodeRequest struct {
	Code              string                   `json:"code" binding:"required"`
	Name              string                   `json:"name" binding:"required"`
	TaxType           domain.TaxType           `json:"taxType" binding:"required,oneof=GST TDS"`
	Category          domain.TaxCategory       `json:"category" binding:"omitempty,oneof=STANDARD EXEMPT ZERO_RATED"`
	Rate              decimal.Decimal          `json:"rate"`
	CalculationMethod domain.CalculationMethod `json:"calculationMethod" binding:"omitempty,oneof=INCLUSIVE EXCLUSIVE"`
	Section           string                   `json:"section"`
	ThresholdAmount   decimal.Decimal          `json:"thresholdAmount"`
	InputAccountID    *string                  `json:"inputAccountID"`
	OutputAccountID   *string                  `json:"outputAccountID"`
	PayableAccountID  *string                  `json:"payableAccountID"`
	ValidFrom         Date                     `json:"validFrom"`
	ValidTo           *Date                    `json:"validTo"`
}

// ListTaxCodesParams filters tax codes.
type ListTaxCodesParams struct {
	TaxType string `form:"type" binding:"omitempty,oneof=GST TDS"`
}

// CalculateTaxRequest asks for GST on a base amount. TaxCode accepts either a
// code or a tax code ID. When PlaceOfSupply is empty it is derived from the
// branch and party state codes.
type CalculateTaxRequest struct {
	TaxCode         string               `json:"taxCode" binding:"required"`
	BaseAmount      decimal.Decimal      `json:"baseAmount"`
	PlaceOfSupply   domain.PlaceOfSupply `json:"placeOfSupply" binding:"omitempty,oneof=INTRA_STATE INTER_STATE EXPORT"`
	BranchStateCode string               `json:"branchStateCode"`
	PartyStateCode  string               `json:"partyStateCode"`
	IsExport        bool                 `json:"isExport"`
	Date            *Date                `json:"date"`
}

// CalculateTDSRequest asks for withholding on a gross amount.
type CalculateTDSRequest struct {
	TaxCode string          `json:"taxCode" binding:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Date    *Date           `json:"date"`
}

// ListTaxTransactionsParams filters and pages tax transactions.
type ListTaxTransactionsParams struct {
	Direction string    `form:"direction" binding:"omitempty,oneof=INPUT OUTPUT WITHHOLDING"`
	From      time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To        time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	Limit     int       `form:"limit"`
	NextToken *string   `form:"nextToken"`
}

// ListTaxTransactionsResponse wraps a page of tax transactions.
type ListTaxTransactionsResponse struct {
	Transactions []domain.TaxTransaction `json:"transactions"`
	NextToken    *string                 `json:"nextToken,omitempty"`
}

// MarkReportedResponse reports how many transactions were flagged.
type MarkReportedResponse struct {
	Updated int64 `json:"updated"`
}
