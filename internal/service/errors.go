package service

import (
	"errors"
)

// Error kinds. Handlers map these to HTTP status codes.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Error is a client-facing failure: a message plus optional context fields
// (for example requiredAmount and currentBalance on a failed debit).
type Error struct {
	Kind    error
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// With attaches a context field and returns e.
func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func validationError(message string) *Error { return newError(ErrValidation, message) }

func notFoundError(message string) *Error { return newError(ErrNotFound, message) }

func forbiddenError(message string) *Error { return newError(ErrForbidden, message) }

func conflictError(message string) *Error { return newError(ErrConflict, message) }
