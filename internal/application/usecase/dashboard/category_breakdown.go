package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CategoryBucket holds the expense total of one category.
type CategoryBucket struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// CategoryBreakdown is the current-month expense-by-category view.
type CategoryBreakdown struct {
	MonthLabel          string
	TotalMonthlyExpense decimal.Decimal
	Buckets             []CategoryBucket
	Skipped             SkipReport
}

// AggregateCategories sums the account's expenses of now's calendar month by
// category. Buckets keep the order in which categories first appear, and an
// empty category is grouped as its own bucket like any other value.
func AggregateCategories(
	transactions []*entity.Transaction,
	accountID uuid.UUID,
	now time.Time,
) CategoryBreakdown {
	loc := now.Location()

	var skipped SkipReport
	buckets := make([]CategoryBucket, 0)
	index := make(map[string]int)

	for _, tx := range transactions {
		if tx == nil || tx.AccountID != accountID {
			continue
		}
		if err := tx.Validate(); err != nil {
			skipped.record(err)
			continue
		}
		if tx.Type != entity.TransactionTypeExpense || !sameMonth(tx.Date.In(loc), now) {
			continue
		}

		i, ok := index[tx.Category]
		if !ok {
			buckets = append(buckets, CategoryBucket{Category: tx.Category, Amount: decimal.Zero})
			i = len(buckets) - 1
			index[tx.Category] = i
		}
		buckets[i].Amount = buckets[i].Amount.Add(tx.Amount)
	}

	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Amount)
	}

	breakdown := CategoryBreakdown{
		MonthLabel:          FormatMonthLabel(now),
		TotalMonthlyExpense: total,
		Buckets:             []CategoryBucket{},
		Skipped:             skipped,
	}
	if total.IsZero() {
		return breakdown
	}

	for i := range buckets {
		buckets[i].Percentage, _ = buckets[i].Amount.Mul(hundred).Div(total).Float64()
	}
	breakdown.Buckets = buckets

	return breakdown
}
