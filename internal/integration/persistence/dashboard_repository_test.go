package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.AccountModel{}, &model.TransactionModel{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedTransaction(t *testing.T, db *gorm.DB, userID, accountID uuid.UUID, date *time.Time, amount, txType string, updatedAt time.Time) *model.TransactionModel {
	t.Helper()

	m := &model.TransactionModel{
		ID:        uuid.New(),
		UserID:    userID,
		AccountID: accountID,
		Date:      date,
		Amount:    decimal.RequireFromString(amount),
		Type:      txType,
		Category:  "Food",
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestDashboardRepository_ListTransactions(t *testing.T) {
	db := openTestDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	checking := uuid.New()
	savings := uuid.New()
	base := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

	later := seedTransaction(t, db, userID, checking, ptr(base.AddDate(0, 0, 5)), "10.50", "EXPENSE", base)
	earlier := seedTransaction(t, db, userID, savings, ptr(base), "100", "INCOME", base)
	seedTransaction(t, db, uuid.New(), checking, ptr(base), "999", "INCOME", base)
	undated := seedTransaction(t, db, userID, checking, nil, "1", "EXPENSE", base)

	t.Run("returns the user's transactions", func(t *testing.T) {
		txs, err := repo.ListTransactions(ctx, userID, nil)
		require.NoError(t, err)
		require.Len(t, txs, 3)

		ids := []uuid.UUID{txs[0].ID, txs[1].ID, txs[2].ID}
		assert.Contains(t, ids, later.ID)
		assert.Contains(t, ids, earlier.ID)
		assert.Contains(t, ids, undated.ID)
	})

	t.Run("restricts to one account", func(t *testing.T) {
		txs, err := repo.ListTransactions(ctx, userID, &savings)
		require.NoError(t, err)
		require.Len(t, txs, 1)

		assert.Equal(t, earlier.ID, txs[0].ID)
		assert.Equal(t, "100", txs[0].Amount.String())
		assert.Equal(t, "INCOME", string(txs[0].Type))
		assert.True(t, base.Equal(txs[0].Date))
	})

	t.Run("maps a missing date to the zero time", func(t *testing.T) {
		txs, err := repo.ListTransactions(ctx, userID, &checking)
		require.NoError(t, err)

		for _, tx := range txs {
			if tx.ID == undated.ID {
				assert.False(t, tx.HasValidDate())
				return
			}
		}
		t.Fatal("undated transaction not returned")
	})
}

func TestDashboardRepository_ListAccounts(t *testing.T) {
	db := openTestDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	created := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	accounts := []*model.AccountModel{
		{ID: uuid.New(), UserID: userID, Name: "Savings", Type: "savings", Balance: decimal.NewFromInt(50), IsDefault: true, CreatedAt: created.Add(time.Hour)},
		{ID: uuid.New(), UserID: userID, Name: "Checking", Type: "checking", Balance: decimal.NewFromInt(-20), CreatedAt: created},
		{ID: uuid.New(), UserID: uuid.New(), Name: "Foreign", Type: "checking", CreatedAt: created},
	}
	for _, a := range accounts {
		a.UpdatedAt = a.CreatedAt
		require.NoError(t, db.Create(a).Error)
	}

	result, err := repo.ListAccounts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "Checking", result[0].Name)
	assert.Equal(t, "-20", result[0].Balance.String())
	assert.Equal(t, "Savings", result[1].Name)
	assert.True(t, result[1].IsDefault)
}

func TestDashboardRepository_GetDataVersion(t *testing.T) {
	db := openTestDB(t)
	repo := NewDashboardRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	accountID := uuid.New()
	base := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty data has no latest update", func(t *testing.T) {
		version, err := repo.GetDataVersion(ctx, userID)
		require.NoError(t, err)

		assert.Zero(t, version.TransactionCount)
		assert.Zero(t, version.AccountCount)
		assert.Nil(t, version.LatestUpdate)
	})

	seedTransaction(t, db, userID, accountID, ptr(base), "1", "INCOME", base)
	first, err := repo.GetDataVersion(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TransactionCount)
	require.NotNil(t, first.LatestUpdate)
	assert.True(t, base.Equal(*first.LatestUpdate))

	t.Run("changes when a transaction is added", func(t *testing.T) {
		seedTransaction(t, db, userID, accountID, ptr(base), "2", "EXPENSE", base.Add(time.Minute))

		version, err := repo.GetDataVersion(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 2, version.TransactionCount)
		assert.NotEqual(t, first.Token(), version.Token())
	})

	t.Run("changes when an account is updated", func(t *testing.T) {
		before, err := repo.GetDataVersion(ctx, userID)
		require.NoError(t, err)

		account := &model.AccountModel{
			ID: accountID, UserID: userID, Name: "Checking",
			CreatedAt: base, UpdatedAt: base.Add(time.Hour),
		}
		require.NoError(t, db.Create(account).Error)

		after, err := repo.GetDataVersion(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 1, after.AccountCount)
		assert.True(t, base.Add(time.Hour).Equal(*after.LatestUpdate))
		assert.NotEqual(t, before.Token(), after.Token())
	})
}
