package dashboard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// AccountSummary is an account card as shown on the dashboard.
type AccountSummary struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Balance    decimal.Decimal `json:"balance"`
	IsDefault  bool            `json:"is_default"`
	IsPositive bool            `json:"is_positive"`
}

// SelectDefaultAccount picks the account flagged as default, else the first
// account. It returns false when there are no accounts.
func SelectDefaultAccount(accounts []*entity.Account) (uuid.UUID, bool) {
	var first *entity.Account
	for _, acc := range accounts {
		if acc == nil {
			continue
		}
		if acc.IsDefault {
			return acc.ID, true
		}
		if first == nil {
			first = acc
		}
	}

	if first == nil {
		return uuid.Nil, false
	}
	return first.ID, true
}

// SummarizeAccounts converts accounts to their dashboard cards, keeping order.
func SummarizeAccounts(accounts []*entity.Account) []AccountSummary {
	summaries := make([]AccountSummary, 0, len(accounts))
	for _, acc := range accounts {
		if acc == nil {
			continue
		}
		summaries = append(summaries, AccountSummary{
			ID:         acc.ID,
			Name:       acc.Name,
			Type:       acc.Type,
			Balance:    acc.Balance,
			IsDefault:  acc.IsDefault,
			IsPositive: !acc.Balance.IsNegative(),
		})
	}
	return summaries
}

func containsAccount(accounts []*entity.Account, id uuid.UUID) bool {
	for _, acc := range accounts {
		if acc != nil && acc.ID == id {
			return true
		}
	}
	return false
}
