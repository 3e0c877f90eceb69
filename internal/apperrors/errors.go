package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrTransient indicates a storage failure that may succeed when retried,
// such as a serialization failure or a deadlock inside a transaction.
var ErrTransient = errors.New("transient storage error")

// AppError carries a user facing message next to one of the sentinel errors above.
// errors.Is(appErr, ErrValidation) works through Unwrap.
type AppError struct {
	Code    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the sentinel code and the underlying cause.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Code != nil {
		errs = append(errs, e.Code)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError builds an AppError for the given sentinel code.
func NewAppError(code error, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError is a shorthand for a formatted ErrValidation.
func NewValidationError(format string, args ...any) *AppError {
	return &AppError{Code: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a missing resource of the given kind.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{Code: ErrNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}
