package dashboard

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// DefaultRecentTransactionLimit is the number of rows in the recent transactions card.
const DefaultRecentTransactionLimit = 5

// RecentTransaction is a row of the recent transactions card.
type RecentTransaction struct {
	ID          uuid.UUID              `json:"id"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Type        entity.TransactionType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
}

// RecentTransactions returns the account's newest transactions, at most limit.
// Records with an unusable date or type are left out.
func RecentTransactions(transactions []*entity.Transaction, accountID uuid.UUID, limit int) []RecentTransaction {
	if limit <= 0 {
		limit = DefaultRecentTransactionLimit
	}

	candidates := make([]*entity.Transaction, 0)
	for _, tx := range transactions {
		if tx == nil || tx.AccountID != accountID || !tx.HasValidDate() || !tx.Type.IsValid() {
			continue
		}
		candidates = append(candidates, tx)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date.After(candidates[j].Date)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	recent := make([]RecentTransaction, 0, len(candidates))
	for _, tx := range candidates {
		recent = append(recent, RecentTransaction{
			ID:          tx.ID,
			Date:        tx.Date,
			Description: tx.Description,
			Category:    tx.Category,
			Type:        tx.Type,
			Amount:      tx.Amount,
		})
	}
	return recent
}
