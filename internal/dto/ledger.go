package dto

import "time"

// AccountLedgerParams selects the window and page of an account ledger.
type AccountLedgerParams struct {
	From      time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To        time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	Limit     int       `form:"limit"`
	NextToken *string   `form:"nextToken"`
}

// SubLedgerParams selects one party.
type SubLedgerParams struct {
	PartyType string    `form:"partyType" binding:"required,oneof=CUSTOMER VENDOR EMPLOYEE"`
	PartyID   string    `form:"partyID"`
	AsOf      time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ProfitabilityParams selects the dimension and window.
type ProfitabilityParams struct {
	Dimension string    `form:"dimension" binding:"required,oneof=TRIP COST_CENTER BRANCH"`
	From      time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To        time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// CashPositionParams selects the balance date and the flow window start.
type CashPositionParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02"`
	From time.Time `form:"from" time_format:"2006-01-02"`
}
