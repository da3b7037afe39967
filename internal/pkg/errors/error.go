package xerrors

import (
	"errors"
	"fmt"
)

// Auth failures. All map to 401 except ErrAuthNotConfigured, which signals a
// missing store-side verification function and maps to 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthNotConfigured  = errors.New("credential verification function not configured")
	ErrMissingToken       = errors.New("authorization token not provided")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrWrongTokenType     = errors.New("token is not an admin token")
	ErrPrincipalInactive  = errors.New("admin not found or inactive")
)

// Dispatch and upstream failures.
var (
	ErrNoRecipients        = errors.New("no recipients resolved")
	ErrUpstreamTimeout     = errors.New("upstream request timed out")
	ErrUpstreamUnavailable = errors.New("upstream connection refused")
	ErrUpstreamNetwork     = errors.New("upstream network error")
)

// Common reusable application errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternal      = errors.New("internal server error")
	ErrNotConfigured = errors.New("required configuration missing")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap extracts the underlying wrapped error.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
