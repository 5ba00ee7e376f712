// Package apperror defines the closed error taxonomy every failure in the
// auth and upstream layers is normalized into. No other error shape crosses
// a component boundary.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one of the fixed error kinds.
type Code string

const (
	// CodeAuthRequired means no valid session was presented.
	CodeAuthRequired Code = "AUTH_REQUIRED"
	// CodeTokenExpired means the access token lapsed and no refresh token
	// is available; the user must re-run the login flow.
	CodeTokenExpired Code = "TOKEN_EXPIRED"
	// CodeTokenRevoked means the provider no longer honors the
	// authorization; the session cookie must be cleared.
	CodeTokenRevoked Code = "TOKEN_REVOKED"
	// CodeRateLimited means the provider throttled the request.
	CodeRateLimited Code = "RATE_LIMITED"
	// CodeUpstreamFailure covers transport failures and provider contract
	// violations.
	CodeUpstreamFailure Code = "UPSTREAM_FAILURE"
	// CodeUnknown is the normalization target for any foreign error.
	CodeUnknown Code = "UNKNOWN"
)

// DefaultStatus returns the HTTP status conventionally paired with the code.
func (c Code) DefaultStatus() int {
	switch c {
	case CodeAuthRequired, CodeTokenExpired, CodeTokenRevoked:
		return http.StatusUnauthorized
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single failure value surfaced across component boundaries.
// Cause is diagnostic only and is never serialized to clients.
type Error struct {
	Code    Code
	Message string
	Status  int

	// ResetAt is the rate-limit reset instant in epoch milliseconds.
	// Zero means unknown. Only meaningful for CodeRateLimited.
	ResetAt int64

	cause error
}

// New constructs an Error with the code's default HTTP status.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Status: code.DefaultStatus()}
}

// WithStatus overrides the HTTP status (e.g. to carry an upstream status).
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// WithCause attaches the underlying failure for diagnostics.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// WithResetAt records the rate-limit reset instant in epoch milliseconds.
func (e *Error) WithResetAt(resetAt int64) *Error {
	e.ResetAt = resetAt
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// From normalizes any error into an *Error. A value that already is one
// passes through unchanged; anything else becomes CodeUnknown with the
// original retained as an opaque cause so internal detail never leaks
// verbatim to a client.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(CodeUnknown, "unexpected application error").WithCause(err)
}

// CodeOf returns the taxonomy code of err, or CodeUnknown for foreign errors.
func CodeOf(err error) Code {
	return From(err).Code
}
