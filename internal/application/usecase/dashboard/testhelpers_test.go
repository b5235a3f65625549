package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

var testLoc = time.FixedZone("BRT", -3*60*60)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, testLoc)
}

func newTx(accountID uuid.UUID, date time.Time, amount string, txType entity.TransactionType, category string) *entity.Transaction {
	return &entity.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Date:      date,
		Amount:    decimal.RequireFromString(amount),
		Type:      txType,
		Category:  category,
	}
}

func income(accountID uuid.UUID, date time.Time, amount string) *entity.Transaction {
	return newTx(accountID, date, amount, entity.TransactionTypeIncome, "")
}

func expense(accountID uuid.UUID, date time.Time, amount, category string) *entity.Transaction {
	return newTx(accountID, date, amount, entity.TransactionTypeExpense, category)
}
