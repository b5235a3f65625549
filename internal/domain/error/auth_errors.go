package error

import "errors"

// Authentication domain errors.
var (
	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("authorization header is required")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrRateLimited is returned when a client exceeded its request budget.
	ErrRateLimited = errors.New("too many requests")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (01XXXX)
	ErrCodeMissingToken AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidToken AuthErrorCode = "AUTH-010002"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-010003"

	// Throttling errors (02XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-020001"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
