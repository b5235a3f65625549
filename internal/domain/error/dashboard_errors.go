// Package error defines domain-specific errors for the finance dashboard.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrMissingRangeKey is returned when no range key is provided.
	ErrMissingRangeKey = errors.New("range is required")

	// ErrUnknownRangeKey is returned when a range key is outside the supported set.
	// It is a configuration error and is never replaced by a default range.
	ErrUnknownRangeKey = errors.New("range must be one of: 7D, 1M, 3M, 6M, ALL")

	// ErrInvalidTransactionType is returned when a transaction type is neither INCOME nor EXPENSE.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrMalformedTransactionDate is returned when a transaction date cannot be parsed.
	ErrMalformedTransactionDate = errors.New("malformed transaction date")

	// ErrInvalidAccountID is returned when an account id is not a valid UUID.
	ErrInvalidAccountID = errors.New("invalid account id")

	// ErrInvalidReferenceTime is returned when a supplied reference time cannot be parsed.
	ErrInvalidReferenceTime = errors.New("invalid reference time, expected RFC3339")

	// ErrInvalidPayload is returned when a request body cannot be decoded.
	ErrInvalidPayload = errors.New("invalid request payload")

	// ErrAccountNotFound is returned when the requested account does not belong to the user.
	ErrAccountNotFound = errors.New("account not found")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingRangeKey      DashboardErrorCode = "DSH-010001"
	ErrCodeUnknownRangeKey      DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidAccountID     DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidReferenceTime DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidPayload       DashboardErrorCode = "DSH-010005"

	// Lookup errors (02XXXX)
	ErrCodeAccountNotFound DashboardErrorCode = "DSH-020001"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
