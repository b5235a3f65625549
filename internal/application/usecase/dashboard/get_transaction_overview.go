package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// GetTransactionOverviewInput represents the input for the income/expense chart.
type GetTransactionOverviewInput struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID // Optional, all accounts when nil
	RangeKey  RangeKey
}

// TimeSeriesView is the income/expense chart payload.
type TimeSeriesView struct {
	RangeKey RangeKey      `json:"range_key"`
	Period   DateRange     `json:"period"`
	Series   []DailyBucket `json:"series"`
	Totals   PeriodTotals  `json:"totals"`
	Skipped  SkipReport    `json:"skipped"`
}

// GetTransactionOverviewUseCase builds the daily income/expense series of a user.
type GetTransactionOverviewUseCase struct {
	dashboardRepo DashboardRepository
	memo          summaryMemo
	opts          Options
}

// NewGetTransactionOverviewUseCase creates a new GetTransactionOverviewUseCase instance.
// cache may be nil to disable memoization.
func NewGetTransactionOverviewUseCase(
	dashboardRepo DashboardRepository,
	cache adapter.SummaryCache,
	opts Options,
) *GetTransactionOverviewUseCase {
	opts = opts.withDefaults()
	return &GetTransactionOverviewUseCase{
		dashboardRepo: dashboardRepo,
		memo:          summaryMemo{cache: cache, ttl: opts.CacheTTL},
		opts:          opts,
	}
}

// Execute returns the series and totals for the requested range.
func (uc *GetTransactionOverviewUseCase) Execute(
	ctx context.Context,
	input GetTransactionOverviewInput,
) (*TimeSeriesView, error) {
	if !input.RangeKey.IsValid() {
		return nil, unknownRangeKeyError(string(input.RangeKey))
	}

	now := uc.opts.now()

	version, err := uc.dashboardRepo.GetDataVersion(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get data version: %w", err)
	}

	key := summaryKey("overview", input.UserID, input.AccountID, input.RangeKey, now, version)
	var cached TimeSeriesView
	if uc.memo.load(ctx, key, &cached) {
		return &cached, nil
	}

	transactions, err := uc.dashboardRepo.ListTransactions(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	view, err := buildTimeSeriesView(transactions, input.RangeKey, now)
	if err != nil {
		return nil, err
	}

	if view.Skipped.Total() > 0 {
		slog.Warn("Skipped malformed transactions in overview",
			"user_id", input.UserID,
			"invalid_type", view.Skipped.InvalidType,
			"malformed_date", view.Skipped.MalformedDate,
		)
	}

	uc.memo.store(ctx, key, view)
	return view, nil
}
