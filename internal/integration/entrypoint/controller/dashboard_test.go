package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
)

type staticRepository struct {
	transactions []*entity.Transaction
	accounts     []*entity.Account
}

func (r *staticRepository) GetDataVersion(context.Context, uuid.UUID) (*dashboard.DataVersion, error) {
	return &dashboard.DataVersion{TransactionCount: len(r.transactions), AccountCount: len(r.accounts)}, nil
}

func (r *staticRepository) ListTransactions(context.Context, uuid.UUID, *uuid.UUID) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *staticRepository) ListAccounts(context.Context, uuid.UUID) ([]*entity.Account, error) {
	return r.accounts, nil
}

var (
	testLoc = time.UTC
	testNow = time.Date(2025, time.July, 30, 14, 0, 0, 0, time.UTC)
)

func newTestRouter(repo dashboard.DashboardRepository, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	opts := dashboard.Options{
		Clock:    func() time.Time { return testNow },
		Location: testLoc,
	}
	ctrl := NewDashboardController(
		dashboard.NewGetTransactionOverviewUseCase(repo, nil, opts),
		dashboard.NewGetExpenseBreakdownUseCase(repo, nil, opts),
		dashboard.NewPreviewTimeSeriesUseCase(opts),
		testLoc,
	)

	r := gin.New()
	r.GET("/ranges", ctrl.ListRanges)

	authed := r.Group("/")
	authed.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(string(middleware.UserIDKey), userID)
		}
		c.Next()
	})
	authed.GET("/overview", ctrl.GetOverview)
	authed.GET("/expense-breakdown", ctrl.GetExpenseBreakdown)
	authed.POST("/preview", ctrl.Preview)
	return r
}

func perform(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestDashboardController_ListRanges(t *testing.T) {
	w := perform(newTestRouter(&staticRepository{}, uuid.Nil), http.MethodGet, "/ranges", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.RangesResponse](t, w)
	require.Len(t, resp.Data, 5)
	assert.Equal(t, "7D", resp.Data[0].Key)
	require.NotNil(t, resp.Data[1].Days)
	assert.Equal(t, 30, *resp.Data[1].Days)
	assert.Equal(t, "ALL", resp.Data[4].Key)
	assert.Nil(t, resp.Data[4].Days)
}

func TestDashboardController_GetOverview(t *testing.T) {
	userID := uuid.New()
	account := uuid.New()
	repo := &staticRepository{
		transactions: []*entity.Transaction{
			{ID: uuid.New(), AccountID: account, Date: time.Date(2025, time.July, 28, 9, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(10), Type: entity.TransactionTypeExpense},
			{ID: uuid.New(), AccountID: account, Date: time.Date(2025, time.July, 28, 19, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(5), Type: entity.TransactionTypeExpense},
			{ID: uuid.New(), AccountID: account, Date: time.Date(2025, time.July, 30, 8, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100), Type: entity.TransactionTypeIncome},
		},
	}
	r := newTestRouter(repo, userID)

	t.Run("returns the series", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/overview?range=7D", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.OverviewResponse](t, w)
		assert.Equal(t, "Last 7 Days", resp.Data.RangeLabel)
		assert.Equal(t, "2025-07-23", resp.Data.Period.StartDate)
		assert.Equal(t, "2025-07-30", resp.Data.Period.EndDate)
		require.Len(t, resp.Data.Series, 2)
		assert.Equal(t, "Jul 28", resp.Data.Series[0].Label)
		assert.Equal(t, 15.0, resp.Data.Series[0].Expense)
		assert.Equal(t, 85.0, resp.Data.Totals.Net)
		assert.True(t, resp.Data.Totals.IsProfit)
	})

	t.Run("rejects an unknown range", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/overview?range=1Y", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeUnknownRangeKey), decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("requires a range", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/overview", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeMissingRangeKey), decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("rejects a malformed account id", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/overview?range=1M&account_id=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidAccountID), decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		w := perform(newTestRouter(repo, uuid.Nil), http.MethodGet, "/overview?range=1M", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDashboardController_GetExpenseBreakdown(t *testing.T) {
	userID := uuid.New()
	account := &entity.Account{ID: uuid.New(), Name: "Checking", Balance: decimal.NewFromInt(250)}
	repo := &staticRepository{
		accounts: []*entity.Account{account},
		transactions: []*entity.Transaction{
			{ID: uuid.New(), AccountID: account.ID, Date: time.Date(2025, time.July, 3, 9, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(75), Type: entity.TransactionTypeExpense, Category: "Rent"},
			{ID: uuid.New(), AccountID: account.ID, Date: time.Date(2025, time.July, 4, 9, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(25), Type: entity.TransactionTypeExpense, Category: "Food"},
		},
	}
	r := newTestRouter(repo, userID)

	t.Run("returns the default account breakdown", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/expense-breakdown", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.ExpenseBreakdownResponse](t, w)
		assert.True(t, resp.Data.HasData)
		assert.Equal(t, "July 2025", resp.Data.MonthLabel)
		assert.Equal(t, 100.0, resp.Data.TotalMonthlyExpense)
		require.Len(t, resp.Data.Categories, 2)
		assert.Equal(t, "Rent", resp.Data.Categories[0].Category)
		assert.InDelta(t, 75, resp.Data.Categories[0].Percentage, 1e-9)
		assert.Len(t, resp.Data.RecentTransactions, 2)
		require.Len(t, resp.Data.Accounts, 1)
		assert.True(t, resp.Data.Accounts[0].IsPositive)
	})

	t.Run("returns 404 for a foreign account", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/expense-breakdown?account_id="+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeAccountNotFound), decode[dto.ErrorResponse](t, w).Code)
	})
}

func TestDashboardController_Preview(t *testing.T) {
	r := newTestRouter(&staticRepository{}, uuid.New())

	t.Run("aggregates posted transactions and counts skips", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/preview", map[string]any{
			"range": "1M",
			"now":   "2025-07-30T14:00:00Z",
			"transactions": []map[string]any{
				{"date": "2025-07-28", "amount": 10, "type": "EXPENSE", "category": "Food"},
				{"date": "2025-07-28T20:00:00Z", "amount": "5", "type": "EXPENSE", "category": "Food"},
				{"date": "2025-07-29", "amount": 40, "type": "INCOME"},
				{"date": "not-a-date", "amount": 1, "type": "INCOME"},
				{"date": "2025-07-29", "amount": 1, "type": "TRANSFER"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[dto.OverviewResponse](t, w)
		require.Len(t, resp.Data.Series, 2)
		assert.Equal(t, 15.0, resp.Data.Series[0].Expense)
		assert.Equal(t, 25.0, resp.Data.Totals.Net)
		assert.Equal(t, 1, resp.Data.Skipped.InvalidType)
		assert.Equal(t, 1, resp.Data.Skipped.MalformedDate)
		assert.Equal(t, 2, resp.Data.Skipped.Total)
	})

	t.Run("rejects an unknown range", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/preview", map[string]any{"range": "2W"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeUnknownRangeKey), decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("rejects a malformed reference time", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/preview", map[string]any{"range": "7D", "now": "yesterday"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidReferenceTime), decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("rejects an invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/preview", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, string(domainerror.ErrCodeInvalidPayload), decode[dto.ErrorResponse](t, w).Code)
	})
}
