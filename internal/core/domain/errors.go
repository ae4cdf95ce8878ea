package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Account errors
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrInvalidPassword      = errors.New("invalid password")
)

// StatusError is returned when credentials or a token check out but the
// account lifecycle state forbids access. The carried reason maps onto the
// HTTP-level denial contract.
type StatusError struct {
	Reason DenialReason
}

func (e *StatusError) Error() string {
	return e.Reason.Message()
}

// NewStatusError wraps a denial reason as an error
func NewStatusError(reason DenialReason) *StatusError {
	return &StatusError{Reason: reason}
}
