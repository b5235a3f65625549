package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a user's account as listed on the dashboard.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      string
	Balance   decimal.Decimal
	IsDefault bool
}
