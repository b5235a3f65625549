package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// GetExpenseBreakdownInput represents the input for the monthly expense card.
type GetExpenseBreakdownInput struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID // Optional, the default account when nil
}

// ExpenseBreakdownView is the current-month expense card with its companions.
type ExpenseBreakdownView struct {
	HasData             bool                `json:"has_data"`
	AccountID           *uuid.UUID          `json:"account_id,omitempty"`
	MonthLabel          string              `json:"month_label"`
	TotalMonthlyExpense decimal.Decimal     `json:"total_monthly_expense"`
	Categories          []CategoryBucket    `json:"categories"`
	RecentTransactions  []RecentTransaction `json:"recent_transactions"`
	Accounts            []AccountSummary    `json:"accounts"`
	Skipped             SkipReport          `json:"skipped"`
}

// GetExpenseBreakdownUseCase builds the category breakdown of one account.
type GetExpenseBreakdownUseCase struct {
	dashboardRepo DashboardRepository
	memo          summaryMemo
	opts          Options
}

// NewGetExpenseBreakdownUseCase creates a new GetExpenseBreakdownUseCase instance.
// cache may be nil to disable memoization.
func NewGetExpenseBreakdownUseCase(
	dashboardRepo DashboardRepository,
	cache adapter.SummaryCache,
	opts Options,
) *GetExpenseBreakdownUseCase {
	opts = opts.withDefaults()
	return &GetExpenseBreakdownUseCase{
		dashboardRepo: dashboardRepo,
		memo:          summaryMemo{cache: cache, ttl: opts.CacheTTL},
		opts:          opts,
	}
}

// Execute resolves the account and aggregates its expenses for the current month.
func (uc *GetExpenseBreakdownUseCase) Execute(
	ctx context.Context,
	input GetExpenseBreakdownInput,
) (*ExpenseBreakdownView, error) {
	now := uc.opts.now()

	version, err := uc.dashboardRepo.GetDataVersion(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get data version: %w", err)
	}

	key := summaryKey("breakdown", input.UserID, input.AccountID, "", now, version)
	var cached ExpenseBreakdownView
	if uc.memo.load(ctx, key, &cached) {
		return &cached, nil
	}

	var (
		accounts     []*entity.Account
		transactions []*entity.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = uc.dashboardRepo.ListAccounts(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = uc.dashboardRepo.ListTransactions(gctx, input.UserID, input.AccountID)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &ExpenseBreakdownView{
		MonthLabel:          FormatMonthLabel(now),
		TotalMonthlyExpense: decimal.Zero,
		Categories:          []CategoryBucket{},
		RecentTransactions:  []RecentTransaction{},
		Accounts:            SummarizeAccounts(accounts),
	}

	var accountID uuid.UUID
	if input.AccountID != nil {
		if !containsAccount(accounts, *input.AccountID) {
			return nil, domainerror.NewDashboardError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		accountID = *input.AccountID
	} else {
		var ok bool
		accountID, ok = SelectDefaultAccount(accounts)
		if !ok {
			uc.memo.store(ctx, key, view)
			return view, nil
		}
	}

	breakdown := AggregateCategories(transactions, accountID, now)
	if breakdown.Skipped.Total() > 0 {
		slog.Warn("Skipped malformed transactions in expense breakdown",
			"user_id", input.UserID,
			"account_id", accountID,
			"invalid_type", breakdown.Skipped.InvalidType,
			"malformed_date", breakdown.Skipped.MalformedDate,
		)
	}

	view.HasData = true
	view.AccountID = &accountID
	view.TotalMonthlyExpense = breakdown.TotalMonthlyExpense
	view.Categories = breakdown.Buckets
	view.RecentTransactions = RecentTransactions(transactions, accountID, uc.opts.RecentLimit)
	view.Skipped = breakdown.Skipped

	uc.memo.store(ctx, key, view)
	return view, nil
}
