package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount_DerivesLevelAndNormalBalance(t *testing.T) {
	parent := &Account{AccountID: "p", TenantID: "t1", Code: "1100", AccountType: Asset, IsHeader: true, Level: 2}

	acc, err := NewAccount(NewAccountParams{
		AccountID: "a", TenantID: "t1", Code: " 1101 ", Name: "Cash in Hand",
		AccountType: Asset, Parent: parent, CreatedBy: "u1", Now: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, acc.Level)
	assert.Equal(t, "1101", acc.Code)
	assert.Equal(t, "p", acc.ParentAccountID)
	assert.Equal(t, NormalDebit, acc.NormalBalance)
	assert.Equal(t, AccountActive, acc.Status)
}

func TestNewAccount_ParentRules(t *testing.T) {
	tests := []struct {
		name   string
		parent *Account
	}{
		{"other tenant", &Account{TenantID: "t2", IsHeader: true, AccountType: Revenue}},
		{"not header", &Account{TenantID: "t1", IsHeader: false, AccountType: Revenue}},
		{"type mismatch", &Account{TenantID: "t1", IsHeader: true, AccountType: Expense}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAccount(NewAccountParams{TenantID: "t1", Code: "4101", Name: "Tours", AccountType: Revenue, Parent: tt.parent})
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNormalBalanceFor(t *testing.T) {
	assert.Equal(t, NormalDebit, NormalBalanceFor(Asset))
	assert.Equal(t, NormalDebit, NormalBalanceFor(Expense))
	assert.Equal(t, NormalCredit, NormalBalanceFor(Liability))
	assert.Equal(t, NormalCredit, NormalBalanceFor(Equity))
	assert.Equal(t, NormalCredit, NormalBalanceFor(Revenue))
}

func TestAccount_CanPost(t *testing.T) {
	header := &Account{AccountID: "h", Code: "1100", IsHeader: true, Status: AccountActive}
	var np *apperrors.NonPostableAccountError
	assert.True(t, errors.As(header.CanPost(), &np))

	inactive := &Account{Code: "1101", Status: AccountInactive}
	assert.ErrorIs(t, inactive.CanPost(), apperrors.ErrValidation)

	locked := &Account{Code: "1101", Status: AccountLocked}
	assert.NoError(t, locked.CanPost())
}

func TestAccount_ChangeStructureWhenLocked(t *testing.T) {
	now := time.Now()
	acc := &Account{AccountID: "a", Code: "1101", AccountType: Asset, Status: AccountLocked, LockedAt: &now}

	code := "1199"
	var locked *apperrors.AccountLockedError
	require.True(t, errors.As(acc.ChangeStructure(&code, nil), &locked))
	assert.Equal(t, "code", locked.Field)

	typ := Liability
	require.True(t, errors.As(acc.ChangeStructure(nil, &typ), &locked))
	assert.Equal(t, "accountType", locked.Field)

	same := "1101"
	assert.NoError(t, acc.ChangeStructure(&same, nil), "unchanged code is not an edit")
}

func TestAccount_ChangeStructureWhenUnlocked(t *testing.T) {
	acc := &Account{Code: "1101", AccountType: Asset, NormalBalance: NormalDebit, Status: AccountActive}
	typ := Liability
	require.NoError(t, acc.ChangeStructure(nil, &typ))
	assert.Equal(t, NormalCredit, acc.NormalBalance)
}

func TestAccount_Deactivate(t *testing.T) {
	sys := &Account{Code: "3201", IsSystemAccount: true, Status: AccountActive}
	assert.ErrorIs(t, sys.Deactivate(), apperrors.ErrValidation)

	acc := &Account{Code: "6201", Status: AccountLocked}
	require.NoError(t, acc.Deactivate())
	assert.Equal(t, AccountInactive, acc.Status)
	assert.ErrorIs(t, acc.Deactivate(), apperrors.ErrConflict)
}
