package dto

import (
	"time"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,accountcode"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"`
	IsHeader        bool               `json:"isHeader"`
	CurrencyCode    string             `json:"currencyCode"`
	Description     string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Code and type are rejected once the account is locked.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Code        *string             `json:"code" binding:"omitempty,accountcode"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType     string `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IncludeInactive bool   `form:"includeInactive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string               `json:"accountID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	ParentAccountID string               `json:"parentAccountID,omitempty"`
	Level           int                  `json:"level"`
	IsHeader        bool                 `json:"isHeader"`
	IsSystemAccount bool                 `json:"isSystemAccount"`
	Status          domain.AccountStatus `json:"status"`
	CurrencyCode    string               `json:"currencyCode"`
	Description     string               `json:"description"`
	Balance         decimal.Decimal      `json:"balance"`
	LockedAt        *time.Time           `json:"lockedAt,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		NormalBalance:   acc.NormalBalance,
		ParentAccountID: acc.ParentAccountID,
		Level:           acc.Level,
		IsHeader:        acc.IsHeader,
		IsSystemAccount: acc.IsSystemAccount,
		Status:          acc.Status,
		CurrencyCode:    acc.CurrencyCode,
		Description:     acc.Description,
		Balance:         acc.Balance,
		LockedAt:        acc.LockedAt,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// SeedResult reports what a seeding run created.
type SeedResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// SetupResult reports the outcome of tenant setup.
type SetupResult struct {
	Accounts SeedResult `json:"accounts"`
	TaxCodes SeedResult `json:"taxCodes"`
}
