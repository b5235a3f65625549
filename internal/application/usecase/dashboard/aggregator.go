package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// DailyBucket holds the income and expense sums of one calendar day.
type DailyBucket struct {
	Date    time.Time       `json:"date"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// PeriodTotals holds the grand totals of a series.
type PeriodTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// IsProfit reports whether the net balance is non-negative.
func (t PeriodTotals) IsProfit() bool {
	return !t.Net.IsNegative()
}

// DailySeries is the sparse, chronologically ordered time-series view.
type DailySeries struct {
	Buckets []DailyBucket
	Totals  PeriodTotals
	Skipped SkipReport
}

// AggregateDaily groups transactions by calendar day in loc and sums amounts
// by type. Days without transactions produce no bucket.
func AggregateDaily(transactions []*entity.Transaction, loc *time.Location) DailySeries {
	if loc == nil {
		loc = time.Local
	}

	var skipped SkipReport
	buckets := make([]DailyBucket, 0)
	index := make(map[civilDate]int)

	for _, tx := range transactions {
		if tx == nil {
			continue
		}
		if err := tx.Validate(); err != nil {
			skipped.record(err)
			continue
		}

		day := StartOfDay(tx.Date.In(loc))
		key := civilDateOf(day)
		i, ok := index[key]
		if !ok {
			buckets = append(buckets, DailyBucket{
				Date:    day,
				Label:   FormatDayLabel(day),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			})
			i = len(buckets) - 1
			index[key] = i
		}

		// The amount is summed as given; its sign is never flipped by type.
		if tx.Type == entity.TransactionTypeIncome {
			buckets[i].Income = buckets[i].Income.Add(tx.Amount)
		} else {
			buckets[i].Expense = buckets[i].Expense.Add(tx.Amount)
		}
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].Date.Before(buckets[b].Date)
	})

	totals := PeriodTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, b := range buckets {
		totals.Income = totals.Income.Add(b.Income)
		totals.Expense = totals.Expense.Add(b.Expense)
	}
	totals.Net = totals.Income.Sub(totals.Expense)

	return DailySeries{
		Buckets: buckets,
		Totals:  totals,
		Skipped: skipped,
	}
}

// BuildTimeSeries narrows transactions to the window selected by key and
// aggregates them by day in now's location.
func BuildTimeSeries(
	transactions []*entity.Transaction,
	key RangeKey,
	now time.Time,
) (DailySeries, DateRange, error) {
	rng, err := ResolveDateRange(key, now)
	if err != nil {
		return DailySeries{}, DateRange{}, err
	}

	filtered, skipped := FilterByRange(transactions, rng)
	series := AggregateDaily(filtered, now.Location())
	series.Skipped = series.Skipped.Add(skipped)

	return series, rng, nil
}
