// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getTransactionOverviewUseCase *dashboard.GetTransactionOverviewUseCase
	getExpenseBreakdownUseCase    *dashboard.GetExpenseBreakdownUseCase
	previewTimeSeriesUseCase      *dashboard.PreviewTimeSeriesUseCase
	location                      *time.Location
}

// NewDashboardController creates a new dashboard controller instance.
// location interprets posted dates that carry no zone.
func NewDashboardController(
	getTransactionOverviewUseCase *dashboard.GetTransactionOverviewUseCase,
	getExpenseBreakdownUseCase *dashboard.GetExpenseBreakdownUseCase,
	previewTimeSeriesUseCase *dashboard.PreviewTimeSeriesUseCase,
	location *time.Location,
) *DashboardController {
	if location == nil {
		location = time.Local
	}
	return &DashboardController{
		getTransactionOverviewUseCase: getTransactionOverviewUseCase,
		getExpenseBreakdownUseCase:    getExpenseBreakdownUseCase,
		previewTimeSeriesUseCase:      previewTimeSeriesUseCase,
		location:                      location,
	}
}

// ListRanges handles GET /dashboard/ranges requests.
func (c *DashboardController) ListRanges(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToRangesResponse(dashboard.RangeKeys()))
}

// GetOverview handles GET /dashboard/overview requests.
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	rangeKey, err := dashboard.ParseRangeKey(ctx.Query("range"))
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	accountID, err := parseAccountID(ctx.Query("account_id"))
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	input := dashboard.GetTransactionOverviewInput{
		UserID:    userID,
		AccountID: accountID,
		RangeKey:  rangeKey,
	}

	output, err := c.getTransactionOverviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// GetExpenseBreakdown handles GET /dashboard/expense-breakdown requests.
func (c *DashboardController) GetExpenseBreakdown(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, err := parseAccountID(ctx.Query("account_id"))
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	input := dashboard.GetExpenseBreakdownInput{
		UserID:    userID,
		AccountID: accountID,
	}

	output, err := c.getExpenseBreakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseBreakdownResponse(output))
}

// Preview handles POST /dashboard/preview requests.
func (c *DashboardController) Preview(ctx *gin.Context) {
	var req dto.PreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   domainerror.ErrInvalidPayload.Error(),
			Code:    string(domainerror.ErrCodeInvalidPayload),
			Details: err.Error(),
		})
		return
	}

	rangeKey, err := dashboard.ParseRangeKey(req.Range)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	input := dashboard.PreviewTimeSeriesInput{
		RangeKey:     rangeKey,
		Transactions: req.ToEntities(c.location),
	}

	if strings.TrimSpace(req.Now) != "" {
		now, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			c.handleDashboardError(ctx, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidReferenceTime,
				domainerror.ErrInvalidReferenceTime.Error(),
				domainerror.ErrInvalidReferenceTime,
			))
			return
		}
		input.Now = &now
	}

	output, err := c.previewTimeSeriesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// parseAccountID parses an optional account id query parameter.
func parseAccountID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidAccountID,
			"account_id must be a valid UUID",
			domainerror.ErrInvalidAccountID,
		)
	}
	return &id, nil
}

// handleDashboardError maps domain errors to HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		statusCode := c.getStatusCodeForDashboardError(dashErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	slog.Error("Dashboard request failed",
		"path", ctx.FullPath(),
		"error", err,
	)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func (c *DashboardController) getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingRangeKey,
		domainerror.ErrCodeUnknownRangeKey,
		domainerror.ErrCodeInvalidAccountID,
		domainerror.ErrCodeInvalidReferenceTime,
		domainerror.ErrCodeInvalidPayload:
		return http.StatusBadRequest
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
