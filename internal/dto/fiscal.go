package dto

// CreateFiscalYearRequest defines the data needed to open a fiscal year.
type CreateFiscalYearRequest struct {
	Name      string `json:"name"`
	StartDate Date   `json:"startDate"`
}

// PeriodTransitionRequest carries the optional reason of a lifecycle move.
// Reopening requires it.
type PeriodTransitionRequest struct {
	Reason string `json:"reason"`
}

// CloseFiscalYearRequest selects the retained earnings account.
// When empty the well-known retained earnings code is used.
type CloseFiscalYearRequest struct {
	RetainedEarningsAccountID string `json:"retainedEarningsAccountID"`
}
