// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid reports whether the type belongs to the closed {INCOME, EXPENSE} set.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a financial transaction loaded for the dashboard.
// Amount is a non-negative magnitude; the direction is carried by Type.
// A zero Date marks a missing or unparsable date.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string // Only meaningful for expenses
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasValidDate reports whether the transaction carries a usable date.
func (t *Transaction) HasValidDate() bool {
	return !t.Date.IsZero()
}

// Validate returns why the transaction cannot be aggregated, or nil.
func (t *Transaction) Validate() error {
	if !t.HasValidDate() {
		return domainerror.ErrMalformedTransactionDate
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", domainerror.ErrInvalidTransactionType, t.Type)
	}
	return nil
}

// transactionDateLayouts are tried in order by ParseTransactionDate.
var transactionDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTransactionDate parses a raw transaction date. Layouts without a zone
// are interpreted in loc.
func ParseTransactionDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty", domainerror.ErrMalformedTransactionDate)
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range transactionDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domainerror.ErrMalformedTransactionDate, raw)
}
