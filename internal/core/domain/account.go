package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// NormalBalanceFor derives the normal balance from the account type.
func NormalBalanceFor(t AccountType) NormalBalance {
	if t == Asset || t == Expense {
		return NormalDebit
	}
	return NormalCredit
}

// AccountStatus is the lifecycle status of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
	AccountLocked   AccountStatus = "LOCKED"
)

// Account is a node of a tenant's chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`
	TenantID        string          `json:"tenantID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	NormalBalance   NormalBalance   `json:"normalBalance"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Level           int             `json:"level"`
	IsHeader        bool            `json:"isHeader"`
	IsSystemAccount bool            `json:"isSystemAccount"`
	Status          AccountStatus   `json:"status"`
	CurrencyCode    string          `json:"currencyCode"`
	Description     string          `json:"description"`
	Balance         decimal.Decimal `json:"balance"`
	LockedAt        *time.Time      `json:"lockedAt,omitempty"`
	AuditFields
}

// NewAccountParams carries the inputs of NewAccount.
type NewAccountParams struct {
	AccountID       string
	TenantID        string
	Code            string
	Name            string
	AccountType     AccountType
	Parent          *Account
	IsHeader        bool
	IsSystemAccount bool
	CurrencyCode    string
	Description     string
	CreatedBy       string
	Now             time.Time
}

// NewAccount builds a validated account. Rows loaded from storage bypass this
// and are scanned straight into Account.
func NewAccount(p NewAccountParams) (*Account, error) {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !p.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, p.AccountType)
	}

	level := 1
	parentID := ""
	if p.Parent != nil {
		if p.Parent.TenantID != p.TenantID {
			return nil, fmt.Errorf("%w: parent account %s belongs to another tenant", apperrors.ErrValidation, p.Parent.AccountID)
		}
		if !p.Parent.IsHeader {
			return nil, fmt.Errorf("%w: parent account %s is not a header account", apperrors.ErrValidation, p.Parent.Code)
		}
		if p.Parent.AccountType != p.AccountType {
			return nil, fmt.Errorf("%w: account type %s does not match parent type %s", apperrors.ErrValidation, p.AccountType, p.Parent.AccountType)
		}
		level = p.Parent.Level + 1
		parentID = p.Parent.AccountID
	}

	return &Account{
		AccountID:       p.AccountID,
		TenantID:        p.TenantID,
		Code:            code,
		Name:            strings.TrimSpace(p.Name),
		AccountType:     p.AccountType,
		NormalBalance:   NormalBalanceFor(p.AccountType),
		ParentAccountID: parentID,
		Level:           level,
		IsHeader:        p.IsHeader,
		IsSystemAccount: p.IsSystemAccount,
		Status:          AccountActive,
		CurrencyCode:    p.CurrencyCode,
		Description:     p.Description,
		Balance:         decimal.Zero,
		AuditFields: AuditFields{
			CreatedAt:     p.Now,
			CreatedBy:     p.CreatedBy,
			LastUpdatedAt: p.Now,
			LastUpdatedBy: p.CreatedBy,
		},
	}, nil
}

// IsLocked reports whether the account has received a posting.
func (a *Account) IsLocked() bool {
	return a.Status == AccountLocked || a.LockedAt != nil
}

// CanPost checks whether a journal line may target the account.
func (a *Account) CanPost() error {
	if a.IsHeader {
		return &apperrors.NonPostableAccountError{AccountID: a.AccountID, Code: a.Code}
	}
	if a.Status == AccountInactive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, a.Code)
	}
	return nil
}

// ChangeStructure applies code/type edits, rejecting them once the account is locked.
func (a *Account) ChangeStructure(code *string, accountType *AccountType) error {
	if code != nil && *code != a.Code {
		if a.IsLocked() {
			return &apperrors.AccountLockedError{AccountID: a.AccountID, Code: a.Code, Field: "code"}
		}
		if strings.TrimSpace(*code) == "" {
			return fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
		}
		a.Code = strings.TrimSpace(*code)
	}
	if accountType != nil && *accountType != a.AccountType {
		if a.IsLocked() {
			return &apperrors.AccountLockedError{AccountID: a.AccountID, Code: a.Code, Field: "accountType"}
		}
		if !accountType.Valid() {
			return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *accountType)
		}
		a.AccountType = *accountType
		a.NormalBalance = NormalBalanceFor(*accountType)
	}
	return nil
}

// Deactivate marks the account inactive. System accounts are protected.
func (a *Account) Deactivate() error {
	if a.IsSystemAccount {
		return fmt.Errorf("%w: system account %s cannot be deactivated", apperrors.ErrValidation, a.Code)
	}
	if a.Status == AccountInactive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, a.Code)
	}
	a.Status = AccountInactive
	return nil
}

// Well-known account codes used by the event handlers and year-end close.
const (
	CodeCash                  = "1101"
	CodeBank                  = "1102"
	CodeAccountsReceivable    = "1201"
	CodeInputTaxCredit        = "1301"
	CodeInterBranchReceivable = "1501"
	CodeAccountsPayable       = "2101"
	CodeOutputTaxPayable      = "2201"
	CodeTDSPayable            = "2301"
	CodeSalariesPayable       = "2501"
	CodeInterBranchPayable    = "2601"
	CodeRetainedEarnings      = "3201"
	CodeTourRevenue           = "4101"
	CodeRefunds               = "4901"
	CodeVendorCost            = "5101"
	CodeSalaries              = "6101"
	CodeGeneralExpenses       = "6201"
)
