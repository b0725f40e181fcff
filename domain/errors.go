package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeNetwork            ErrorCode = "NETWORK"
	ErrCodeUnexpectedResponse ErrorCode = "UNEXPECTED_RESPONSE"
	ErrCodeInvalidSession     ErrorCode = "INVALID_SESSION"
	ErrCodeOAuthDenied        ErrorCode = "OAUTH_DENIED"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalid            ErrorCode = "INVALID"
	ErrCodeInternal           ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	// ErrInvalidCredentials means the identity server rejected the supplied
	// username/password pair. The user should correct the input and retry.
	ErrInvalidCredentials = NewError(ErrCodeInvalidCredentials, "invalid username or password")
	// ErrNetwork covers transport failures (timeout, DNS, connection reset).
	// The request may succeed if simply retried.
	ErrNetwork = NewError(ErrCodeNetwork, "identity server unreachable")
	// ErrUnexpectedResponse means the server answered but the payload could
	// not be normalized into a session. Retrying the same input will not help.
	ErrUnexpectedResponse = NewError(ErrCodeUnexpectedResponse, "unexpected identity server response")
	// ErrInvalidSession means SetAuth was handed a malformed session. This is
	// an integration defect, not a user error.
	ErrInvalidSession = NewError(ErrCodeInvalidSession, "invalid session")
	// ErrOAuthDenied means the provider reported that the user declined
	// consent or the authorization otherwise failed upstream.
	ErrOAuthDenied = NewError(ErrCodeOAuthDenied, "oauth authorization denied")
	// ErrSessionNotFound is returned by repositories when no record is stored
	// under the session key. Rehydration treats it as a cold start.
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session record not found")
	// ErrCorruptRecord is returned by repositories when a stored record cannot
	// be decoded. Rehydration treats it the same as a missing record.
	ErrCorruptRecord = NewError(ErrCodeInvalid, "session record corrupt")
	// ErrUnknownProvider is returned when an OAuth provider name is not registered.
	ErrUnknownProvider = NewError(ErrCodeNotFound, "unknown oauth provider")
	// ErrStaleOAuthState is returned when a callback carries a state value
	// that does not match any pending attempt.
	ErrStaleOAuthState = NewError(ErrCodeOAuthDenied, "oauth state unknown or expired")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
