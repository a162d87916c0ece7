package apperrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned when an unexpected failure is hidden from the caller.
var ErrInternal = errors.New("internal error")

// ErrState indicates an illegal lifecycle transition (posting a non-draft entry,
// hard-closing a period with pending drafts, reversing twice, ...).
var ErrState = errors.New("invalid state transition")

// ErrConcurrency indicates a lost update detected by the storage layer.
// Callers should retry with a fresh read.
var ErrConcurrency = errors.New("concurrent modification")

// ErrIntegrity indicates a multi-row operation was aborted and rolled back.
var ErrIntegrity = errors.New("integrity violation")

// AppError wraps an infrastructure error with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NonPostableAccountError is returned when a line targets a header account.
type NonPostableAccountError struct {
	AccountID string
	Code      string
}

func (e *NonPostableAccountError) Error() string {
	return fmt.Sprintf("account %s (%s) is a header account and cannot receive postings", e.Code, e.AccountID)
}

func (e *NonPostableAccountError) Unwrap() error { return ErrValidation }

// AccountLockedError is returned when a structural field of a locked account is edited.
type AccountLockedError struct {
	AccountID string
	Code      string
	Field     string
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account %s (%s) has postings; %s can no longer change", e.Code, e.AccountID, e.Field)
}

func (e *AccountLockedError) Unwrap() error { return ErrValidation }

// UnbalancedEntryError is returned when debits and credits differ after rounding.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is unbalanced: debits %s, credits %s, difference %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.TotalDebit.Sub(e.TotalCredit).StringFixed(2))
}

func (e *UnbalancedEntryError) Unwrap() error { return ErrValidation }

// FiscalPeriodClosedError is returned when a date falls outside any postable period.
type FiscalPeriodClosedError struct {
	Date       time.Time
	PeriodName string
	Status     string
}

func (e *FiscalPeriodClosedError) Error() string {
	if e.PeriodName == "" {
		return fmt.Sprintf("no fiscal period exists for %s", e.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("fiscal period %s is %s; %s cannot be posted", e.PeriodName, e.Status, e.Date.Format("2006-01-02"))
}

func (e *FiscalPeriodClosedError) Unwrap() error { return ErrValidation }

// StateError reports an action that is illegal in the entity's current status.
type StateError struct {
	Entity  string
	ID      string
	Current string
	Action  string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s %s %s in status %s", e.Action, e.Entity, e.ID, e.Current)
}

func (e *StateError) Unwrap() error { return ErrState }

// NewStateError builds a StateError.
func NewStateError(entity, id, current, action string) *StateError {
	return &StateError{Entity: entity, ID: id, Current: current, Action: action}
}
