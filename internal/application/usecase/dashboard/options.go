package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// DefaultSummaryCacheTTL bounds how long a memoized view is served.
const DefaultSummaryCacheTTL = 5 * time.Minute

// Options configures the dashboard use cases.
type Options struct {
	// Clock returns the reference instant; defaults to time.Now.
	Clock func() time.Time
	// Location defines calendar days and months; defaults to time.Local.
	Location *time.Location
	// CacheTTL is the lifetime of memoized views; defaults to DefaultSummaryCacheTTL.
	CacheTTL time.Duration
	// RecentLimit is the size of the recent transactions card.
	RecentLimit int
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultSummaryCacheTTL
	}
	if o.RecentLimit <= 0 {
		o.RecentLimit = DefaultRecentTransactionLimit
	}
	return o
}

func (o Options) now() time.Time {
	return o.Clock().In(o.Location)
}

// summaryMemo memoizes views in an optional SummaryCache. Cache failures are
// logged and otherwise ignored.
type summaryMemo struct {
	cache adapter.SummaryCache
	ttl   time.Duration
}

func (m summaryMemo) load(ctx context.Context, key string, dest any) bool {
	if m.cache == nil {
		return false
	}
	hit, err := m.cache.Get(ctx, key, dest)
	if err != nil {
		slog.Warn("Summary cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (m summaryMemo) store(ctx context.Context, key string, value any) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Set(ctx, key, value, m.ttl); err != nil {
		slog.Warn("Summary cache write failed", "key", key, "error", err)
	}
}

// summaryKey covers every input that influences a view: the data version,
// the account, the range and the calendar day of now.
func summaryKey(
	view string,
	userID uuid.UUID,
	accountID *uuid.UUID,
	rangeKey RangeKey,
	now time.Time,
	version *DataVersion,
) string {
	account := "all"
	if accountID != nil {
		account = accountID.String()
	}
	if rangeKey == "" {
		rangeKey = "-"
	}
	return fmt.Sprintf("dashboard:%s:%s:%s:%s:%s:%s",
		view,
		userID,
		account,
		rangeKey,
		now.Format("2006-01-02Z07:00"),
		version.Token(),
	)
}
