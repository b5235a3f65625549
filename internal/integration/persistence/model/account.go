package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Type      string          `gorm:"type:varchar(30);not null;default:'checking'"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsDefault bool            `gorm:"default:false"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null;index"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Type:      m.Type,
		Balance:   m.Balance,
		IsDefault: m.IsDefault,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:        account.ID,
		UserID:    account.UserID,
		Name:      account.Name,
		Type:      account.Type,
		Balance:   account.Balance,
		IsDefault: account.IsDefault,
	}
}
