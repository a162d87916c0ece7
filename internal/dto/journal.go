package dto

import (
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit of a manual entry.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CostCenter  string          `json:"costCenter"`
	TripID      string          `json:"tripID"`
	BookingID   string          `json:"bookingID"`
	VendorID    string          `json:"vendorID"`
	CustomerID  string          `json:"customerID"`
	EmployeeID  string          `json:"employeeID"`
	BranchID    string          `json:"branchID"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	BranchID        string               `json:"branchID"`
	EntryDate       Date                 `json:"entryDate"`
	Description     string               `json:"description" binding:"required"`
	Reference       string               `json:"reference"`
	CurrencyCode    string               `json:"currencyCode"`
	ExchangeRate    decimal.Decimal      `json:"exchangeRate"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
	RequireApproval bool                 `json:"requireApproval"`
	AutoPost        bool                 `json:"autoPost"`
}

// ToLineInstructions converts the request lines.
func (r CreateJournalEntryRequest) ToLineInstructions() []domain.LineInstruction {
	lines := make([]domain.LineInstruction, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.LineInstruction{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Dimensions: domain.Dimensions{
				BranchID:   l.BranchID,
				CostCenter: l.CostCenter,
				TripID:     l.TripID,
				BookingID:  l.BookingID,
				VendorID:   l.VendorID,
				CustomerID: l.CustomerID,
				EmployeeID: l.EmployeeID,
			},
		}
	}
	return lines
}

// ReverseJournalEntryRequest defines the data needed to reverse a posted entry.
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
	Date   *Date  `json:"date"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status       string     `form:"status" binding:"omitempty,oneof=DRAFT PENDING_APPROVAL POSTED REVERSED"`
	BranchID     string     `form:"branchID"`
	SourceModule string     `form:"sourceModule"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
	Limit        int        `form:"limit"`
	NextToken    *string    `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []domain.JournalEntry `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// FindBySourceParams looks entries up by their origin.
type FindBySourceParams struct {
	SourceModule   string `form:"sourceModule" binding:"required"`
	SourceRecordID string `form:"sourceRecordID" binding:"required"`
}
