package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// RangeOptionResponse describes one selectable range.
type RangeOptionResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Days  *int   `json:"days"` // null for ALL
}

// RangesResponse represents the response for the ranges API.
type RangesResponse struct {
	Data []RangeOptionResponse `json:"data"`
}

// ToRangesResponse lists the supported ranges in display order.
func ToRangesResponse(keys []dashboard.RangeKey) RangesResponse {
	options := make([]RangeOptionResponse, len(keys))
	for i, key := range keys {
		options[i] = RangeOptionResponse{
			Key:   string(key),
			Label: key.Label(),
		}
		if days, ok := key.Days(); ok {
			options[i].Days = &days
		}
	}
	return RangesResponse{Data: options}
}

// PeriodResponse represents an inclusive date window.
type PeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DailyPointResponse represents one day of the income/expense chart.
type DailyPointResponse struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// TotalsResponse represents the totals card of the chart.
type TotalsResponse struct {
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Net      float64 `json:"net"`
	IsProfit bool    `json:"is_profit"`
}

// SkippedResponse reports records left out as malformed.
type SkippedResponse struct {
	InvalidType   int `json:"invalid_type"`
	MalformedDate int `json:"malformed_date"`
	Total         int `json:"total"`
}

// OverviewData represents the data section of the overview response.
type OverviewData struct {
	Range      string               `json:"range"`
	RangeLabel string               `json:"range_label"`
	Period     PeriodResponse       `json:"period"`
	Series     []DailyPointResponse `json:"series"`
	Totals     TotalsResponse       `json:"totals"`
	Skipped    SkippedResponse      `json:"skipped"`
}

// OverviewResponse represents the response for the overview and preview APIs.
type OverviewResponse struct {
	Data OverviewData `json:"data"`
}

// ToOverviewResponse converts a TimeSeriesView to OverviewResponse DTO.
func ToOverviewResponse(view *dashboard.TimeSeriesView) OverviewResponse {
	series := make([]DailyPointResponse, len(view.Series))
	for i, b := range view.Series {
		series[i] = DailyPointResponse{
			Date:    b.Date.Format(dateLayout),
			Label:   b.Label,
			Income:  toFloat(b.Income),
			Expense: toFloat(b.Expense),
		}
	}

	return OverviewResponse{
		Data: OverviewData{
			Range:      string(view.RangeKey),
			RangeLabel: view.RangeKey.Label(),
			Period: PeriodResponse{
				StartDate: view.Period.Start.Format(dateLayout),
				EndDate:   view.Period.End.Format(dateLayout),
			},
			Series: series,
			Totals: TotalsResponse{
				Income:   toFloat(view.Totals.Income),
				Expense:  toFloat(view.Totals.Expense),
				Net:      toFloat(view.Totals.Net),
				IsProfit: view.Totals.IsProfit(),
			},
			Skipped: toSkippedResponse(view.Skipped),
		},
	}
}

// CategoryAmountResponse represents one slice of the expense breakdown.
type CategoryAmountResponse struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// RecentTransactionResponse represents a row of the recent transactions card.
type RecentTransactionResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
}

// AccountResponse represents an account card.
type AccountResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Balance    float64 `json:"balance"`
	IsDefault  bool    `json:"is_default"`
	IsPositive bool    `json:"is_positive"`
}

// ExpenseBreakdownData represents the data section of the expense breakdown response.
type ExpenseBreakdownData struct {
	HasData             bool                        `json:"has_data"`
	AccountID           *string                     `json:"account_id"`
	MonthLabel          string                      `json:"month_label"`
	TotalMonthlyExpense float64                     `json:"total_monthly_expense"`
	Categories          []CategoryAmountResponse    `json:"categories"`
	RecentTransactions  []RecentTransactionResponse `json:"recent_transactions"`
	Accounts            []AccountResponse           `json:"accounts"`
	Skipped             SkippedResponse             `json:"skipped"`
}

// ExpenseBreakdownResponse represents the response for the expense breakdown API.
type ExpenseBreakdownResponse struct {
	Data ExpenseBreakdownData `json:"data"`
}

// ToExpenseBreakdownResponse converts an ExpenseBreakdownView to ExpenseBreakdownResponse DTO.
func ToExpenseBreakdownResponse(view *dashboard.ExpenseBreakdownView) ExpenseBreakdownResponse {
	categories := make([]CategoryAmountResponse, len(view.Categories))
	for i, c := range view.Categories {
		categories[i] = CategoryAmountResponse{
			Category:   c.Category,
			Amount:     toFloat(c.Amount),
			Percentage: c.Percentage,
		}
	}

	recent := make([]RecentTransactionResponse, len(view.RecentTransactions))
	for i, tx := range view.RecentTransactions {
		recent[i] = RecentTransactionResponse{
			ID:          tx.ID.String(),
			Date:        tx.Date.Format(dateLayout),
			Description: tx.Description,
			Category:    tx.Category,
			Type:        string(tx.Type),
			Amount:      toFloat(tx.Amount),
		}
	}

	accounts := make([]AccountResponse, len(view.Accounts))
	for i, a := range view.Accounts {
		accounts[i] = AccountResponse{
			ID:         a.ID.String(),
			Name:       a.Name,
			Type:       a.Type,
			Balance:    toFloat(a.Balance),
			IsDefault:  a.IsDefault,
			IsPositive: a.IsPositive,
		}
	}

	var accountID *string
	if view.AccountID != nil {
		s := view.AccountID.String()
		accountID = &s
	}

	return ExpenseBreakdownResponse{
		Data: ExpenseBreakdownData{
			HasData:             view.HasData,
			AccountID:           accountID,
			MonthLabel:          view.MonthLabel,
			TotalMonthlyExpense: toFloat(view.TotalMonthlyExpense),
			Categories:          categories,
			RecentTransactions:  recent,
			Accounts:            accounts,
			Skipped:             toSkippedResponse(view.Skipped),
		},
	}
}

// PreviewTransactionRequest is a raw transaction posted for preview.
type PreviewTransactionRequest struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// PreviewRequest represents the request body for the preview API.
type PreviewRequest struct {
	Range        string                      `json:"range"`
	Now          string                      `json:"now"` // Optional RFC3339 reference time
	Transactions []PreviewTransactionRequest `json:"transactions"`
}

// ToEntities converts the posted transactions. Dates that cannot be parsed
// are left zero so the pipeline counts them as malformed, and types are
// passed through unchecked.
func (r PreviewRequest) ToEntities(loc *time.Location) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(r.Transactions))
	for i, raw := range r.Transactions {
		id, err := uuid.Parse(raw.ID)
		if err != nil {
			id = uuid.New()
		}
		accountID, _ := uuid.Parse(raw.AccountID)
		date, _ := entity.ParseTransactionDate(raw.Date, loc)

		transactions[i] = &entity.Transaction{
			ID:          id,
			AccountID:   accountID,
			Date:        date,
			Amount:      raw.Amount,
			Type:        entity.TransactionType(raw.Type),
			Category:    raw.Category,
			Description: raw.Description,
		}
	}
	return transactions
}

func toSkippedResponse(s dashboard.SkipReport) SkippedResponse {
	return SkippedResponse{
		InvalidType:   s.InvalidType,
		MalformedDate: s.MalformedDate,
		Total:         s.Total(),
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
