package dto

import (
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	GLAccountID    string          `json:"glAccountID" binding:"required"`
	BranchID       string          `json:"branchID"`
	Name           string          `json:"name" binding:"required"`
	BankName       string          `json:"bankName" binding:"required"`
	AccountNumber  string          `json:"accountNumber" binding:"required"`
	CurrencyCode   string          `json:"currencyCode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// RecordBankTransactionRequest records one manual bank feed row.
// Amount is positive for deposits and negative for withdrawals.
type RecordBankTransactionRequest struct {
	TransactionDate Date            `json:"transactionDate"`
	ValueDate       *Date           `json:"valueDate"`
	Description     string          `json:"description" binding:"required"`
	Reference       string          `json:"reference"`
	Amount          decimal.Decimal `json:"amount"`
}

// ListBankTransactionsParams pages the bank feed.
type ListBankTransactionsParams struct {
	UnreconciledOnly bool    `form:"unreconciled"`
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
}

// ListBankTransactionsResponse wraps a page of bank transactions.
type ListBankTransactionsResponse struct {
	Transactions []domain.BankTransaction `json:"transactions"`
	NextToken    *string                  `json:"nextToken,omitempty"`
}

// StartReconciliationRequest opens a reconciliation session.
type StartReconciliationRequest struct {
	StatementDate    Date            `json:"statementDate"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
}

// ReconcileTransactionsRequest tags transactions with a session.
type ReconcileTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1,dive,required"`
}

// ReconcileTransactionsResponse reports the number of tagged transactions.
type ReconcileTransactionsResponse struct {
	Reconciled int `json:"reconciled"`
}

// AutoMatchParams controls an auto-match run.
type AutoMatchParams struct {
	Apply bool `form:"apply"`
}

// ImportStatementRequest carries an uploaded statement.
type ImportStatementRequest struct {
	FileName string
	Profile  string
	Content  []byte
}
