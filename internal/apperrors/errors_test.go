package apperrors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsUnwrapToCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
	}{
		{"non postable", &NonPostableAccountError{AccountID: "a1", Code: "1000"}, ErrValidation},
		{"locked", &AccountLockedError{AccountID: "a1", Code: "1101", Field: "code"}, ErrValidation},
		{"unbalanced", &UnbalancedEntryError{TotalDebit: decimal.NewFromInt(10), TotalCredit: decimal.NewFromInt(9)}, ErrValidation},
		{"period closed", &FiscalPeriodClosedError{Date: time.Now(), PeriodName: "Apr-2025", Status: "HARD_CLOSE"}, ErrValidation},
		{"state", NewStateError("journal entry", "e1", "POSTED", "post"), ErrState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.category)
		})
	}
}

func TestUnbalancedEntryErrorMessage(t *testing.T) {
	err := &UnbalancedEntryError{TotalDebit: decimal.RequireFromString("100.50"), TotalCredit: decimal.NewFromInt(100)}
	assert.Equal(t, "journal entry is unbalanced: debits 100.50, credits 100.00, difference 0.50", err.Error())
}

func TestFiscalPeriodClosedErrorWithoutPeriod(t *testing.T) {
	err := &FiscalPeriodClosedError{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "no fiscal period exists for 2025-03-01", err.Error())

	var target *FiscalPeriodClosedError
	assert.True(t, errors.As(fmt.Errorf("create: %w", err), &target))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(500, "failed to commit", ErrConcurrency)
	assert.ErrorIs(t, err, ErrConcurrency)
	assert.Equal(t, "failed to commit: concurrent modification", err.Error())
	assert.ErrorIs(t, NewNotFoundError("journal x"), ErrNotFound)
}
