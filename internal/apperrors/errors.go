package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller's access level does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidAmount indicates a monetary amount that is zero or negative where a positive one is required.
var ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)

// ErrImmutableField indicates an attempt to change a ledger entry field that is fixed after creation.
var ErrImmutableField = fmt.Errorf("%w: only description and notes can be changed", ErrValidation)

// ErrInsufficientCapital indicates the current period's capital cannot cover an order cost.
var ErrInsufficientCapital = errors.New("insufficient capital")

// ErrInsufficientBalance indicates a budget account cannot cover a withdrawal.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrAlreadyCompleted indicates the order was completed earlier. Not a hard failure.
var ErrAlreadyCompleted = errors.New("order already completed")

// ErrAlreadyRolledOver indicates the current period has already been rolled over.
var ErrAlreadyRolledOver = errors.New("period already rolled over")

// ErrConcurrencyConflict indicates the transaction lost a race with another writer and may be retried.
var ErrConcurrencyConflict = errors.New("concurrent update conflict")

// InsufficientFundsError carries the amount that was available when a balance check failed.
// It unwraps to ErrInsufficientCapital or ErrInsufficientBalance.
type InsufficientFundsError struct {
	Kind      error
	Account   string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s in %s: available %s, requested %s",
		e.Kind.Error(), e.Account, e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return e.Kind
}

// AppError wraps an infrastructure failure with a stable code for callers.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes used with NewAppError.
const (
	CodeDatabase  = "DATABASE_ERROR"
	CodeInternal  = "INTERNAL_ERROR"
	CodeMigration = "MIGRATION_ERROR"
)

// NewAppError creates a new AppError.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
