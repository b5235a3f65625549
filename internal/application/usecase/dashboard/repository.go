package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// DashboardRepository defines the read operations the dashboard needs.
type DashboardRepository interface {
	// GetDataVersion returns a fingerprint of the user's transactions and accounts.
	GetDataVersion(ctx context.Context, userID uuid.UUID) (*DataVersion, error)

	// ListTransactions returns the user's transactions, optionally restricted to one account.
	ListTransactions(ctx context.Context, userID uuid.UUID, accountID *uuid.UUID) ([]*entity.Transaction, error)

	// ListAccounts returns the user's accounts in display order.
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)
}

// DataVersion identifies a snapshot of a user's dashboard data.
type DataVersion struct {
	TransactionCount int
	AccountCount     int
	LatestUpdate     *time.Time
}

// Token renders the version as a cache key segment.
func (v *DataVersion) Token() string {
	if v == nil {
		return "none"
	}
	var latest int64
	if v.LatestUpdate != nil {
		latest = v.LatestUpdate.UnixNano()
	}
	return fmt.Sprintf("%d.%d.%d", v.TransactionCount, v.AccountCount, latest)
}
