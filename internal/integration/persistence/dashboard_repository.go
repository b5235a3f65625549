// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetDataVersion fingerprints the user's dashboard data with row counts and
// the most recent update time.
func (r *dashboardRepository) GetDataVersion(
	ctx context.Context,
	userID uuid.UUID,
) (*dashboard.DataVersion, error) {
	var txCount, accountCount int64

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ?", userID).
		Count(&txCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("user_id = ?", userID).
		Count(&accountCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	latestTx, err := r.latestUpdate(ctx, &model.TransactionModel{}, userID)
	if err != nil {
		return nil, err
	}
	latestAccount, err := r.latestUpdate(ctx, &model.AccountModel{}, userID)
	if err != nil {
		return nil, err
	}

	latest := latestTx
	if latest == nil || (latestAccount != nil && latestAccount.After(*latest)) {
		latest = latestAccount
	}

	return &dashboard.DataVersion{
		TransactionCount: int(txCount),
		AccountCount:     int(accountCount),
		LatestUpdate:     latest,
	}, nil
}

// latestUpdate plucks the newest updated_at of a user's rows in the table of m.
func (r *dashboardRepository) latestUpdate(ctx context.Context, m any, userID uuid.UUID) (*time.Time, error) {
	var updates []time.Time

	err := r.db.WithContext(ctx).
		Model(m).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(1).
		Pluck("updated_at", &updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest update: %w", err)
	}

	if len(updates) == 0 {
		return nil, nil
	}
	return &updates[0], nil
}

// ListTransactions returns the user's transactions in chronological order.
func (r *dashboardRepository) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	accountID *uuid.UUID,
) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID)

	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}

	var transactionModels []model.TransactionModel
	err := query.
		Order("date ASC, created_at ASC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// ListAccounts returns the user's accounts in creation order.
func (r *dashboardRepository) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, name ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}
