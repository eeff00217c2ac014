package errors

import (
	"errors"
	"fmt"
)

var (
	// Not-found errors. Soft-deleted records count as absent.
	ErrUserNotFound    = errors.New("user not found")
	ErrBankNotFound    = errors.New("bank not found")
	ErrAccountNotFound = errors.New("bank account not found")
	ErrPspNotFound     = errors.New("psp not found")
	ErrVpaNotFound     = errors.New("vpa not found")

	// Uniqueness violations on create
	ErrDuplicateResource = errors.New("resource already exists")
	ErrDuplicateVpa      = errors.New("vpa address already exists")

	// Validation errors
	ErrOwnershipMismatch = errors.New("record does not belong to the user")
	ErrIfscMismatch      = errors.New("ifsc code does not match the selected bank")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrPasswordMismatch  = errors.New("new password and confirmation do not match")
	ErrInvalidAmount     = errors.New("amount must be positive")

	// Balance errors
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Limits
	ErrAccountLimitReached = errors.New("maximum number of linked accounts reached")
)

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrBankNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrPspNotFound) ||
		errors.Is(err, ErrVpaNotFound)
}

// InsufficientBalanceError carries the requested and available amounts (in paise)
// for the caller-visible message. The available amount is a snapshot taken before
// the failed conditional update and may be stale relative to it.
type InsufficientBalanceError struct {
	AccountID string
	Requested int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance in account %s: requested %d.%02d, available %d.%02d",
		e.AccountID, e.Requested/100, e.Requested%100, e.Available/100, e.Available%100)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// DuplicateError reports which field of which resource collided on create.
type DuplicateError struct {
	Resource string
	Field    string
	Value    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s '%s' already exists", e.Resource, e.Field, e.Value)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateResource
}

// NewDuplicateError creates a new duplicate-resource error.
func NewDuplicateError(resource, field, value string) *DuplicateError {
	return &DuplicateError{Resource: resource, Field: field, Value: value}
}
