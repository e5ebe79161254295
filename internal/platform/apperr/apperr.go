// Copyright (c) 2026 Darass. All rights reserved.

/*
Package apperr defines the centralized error handling framework for the Darass
authentication service.

It provides a rich error type that bridges the gap between the token/identity
domain and the HTTP error envelope the comment widget consumes.

Architecture:

  - AppError: A struct carrying a numeric machine-readable Code and a
    user-friendly message.
  - Stability: Codes are part of the public API contract — the embedded
    widget switches on them and they must never be renumbered.
  - Mapping: Explicit mapping from AppError to HTTP status codes.

Every error that leaves the service layer should be wrapped as an [AppError]
to ensure consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Machine Codes

// Numeric error codes returned in the {message, code} envelope.
//
// The 8xx range covers authentication failures, the 9xx range covers
// transport-level and generic failures.
const (
	CodeInvalidAuthorizationCode = 800
	CodeUnknownProvider          = 801
	CodeProviderUnavailable      = 802
	CodeMissingRefreshToken      = 803
	CodeInvalidToken             = 804

	CodeValidation   = 900
	CodeUnauthorized = 901
	CodeRateLimited  = 903
	CodeNotFound     = 904
	CodeInternal     = 999
)

// AppError is the canonical error type for the Darass API.
//
// It carries an HTTP status code, a numeric machine code, and a client-safe
// message.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to
// clients to avoid leaking internal implementation details (e.g. provider
// responses, SQL queries).
type AppError struct {
	// Code is the stable numeric error identifier.
	Code int `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Authentication Failures (login flow)

// InvalidAuthorizationCode creates the 401 [AppError] returned when a
// provider rejects the one-time authorization code.
func InvalidAuthorizationCode(cause error) *AppError {
	return &AppError{
		Code:       CodeInvalidAuthorizationCode,
		Message:    "The OAuth authorization code is invalid or has expired",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// UnknownProvider creates the 401 [AppError] returned when no OAuth provider
// is registered under the requested name.
func UnknownProvider(name string) *AppError {
	return &AppError{
		Code:       CodeUnknownProvider,
		Message:    "Unsupported OAuth provider: " + name,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// ProviderUnavailable creates the 503 [AppError] returned when the provider
// could not be reached before the request deadline.
func ProviderUnavailable(cause error) *AppError {
	return &AppError{
		Code:       CodeProviderUnavailable,
		Message:    "The OAuth provider is temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// # Token Failures (refresh flow)

// The embedded widget distinguishes refresh failures from login failures by
// status class: a 5xx tells it to drop the session and restart the OAuth
// dance, so these two map to 500.

// MissingRefreshToken creates the [AppError] returned when no refresh token
// cookie was presented at all.
func MissingRefreshToken() *AppError {
	return &AppError{
		Code:       CodeMissingRefreshToken,
		Message:    "No refresh token cookie was provided",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// InvalidToken creates the [AppError] returned when a presented token fails
// verification: bad signature, malformed payload, expired, or a token of the
// wrong type.
func InvalidToken(cause error) *AppError {
	return &AppError{
		Code:       CodeInvalidToken,
		Message:    "The token is invalid or has expired",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Generic Failures

// Unauthorized creates a 401 [AppError] for the bearer-token middleware.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] for malformed or missing input.
func ValidationError(msg string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries the given machine code.
func HasCode(err error, code int) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
