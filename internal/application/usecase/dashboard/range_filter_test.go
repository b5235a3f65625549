package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

func TestParseRangeKey(t *testing.T) {
	t.Run("accepts every supported key", func(t *testing.T) {
		for _, raw := range []string{"7D", "1M", "3M", "6M", "ALL"} {
			key, err := ParseRangeKey(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, RangeKey(raw), key)
		}
	})

	t.Run("rejects unknown keys without defaulting", func(t *testing.T) {
		for _, raw := range []string{"1Y", "all", "30D", "7d"} {
			key, err := ParseRangeKey(raw)
			require.Error(t, err, raw)
			assert.Empty(t, key)
			assert.True(t, errors.Is(err, domainerror.ErrUnknownRangeKey))

			var dashErr *domainerror.DashboardError
			require.True(t, errors.As(err, &dashErr))
			assert.Equal(t, domainerror.ErrCodeUnknownRangeKey, dashErr.Code)
		}
	})

	t.Run("reports a missing key", func(t *testing.T) {
		_, err := ParseRangeKey("  ")
		assert.True(t, errors.Is(err, domainerror.ErrMissingRangeKey))
	})
}

func TestRangeKeys(t *testing.T) {
	assert.Equal(t, []RangeKey{Range7D, Range1M, Range3M, Range6M, RangeAll}, RangeKeys())

	days, ok := Range3M.Days()
	assert.True(t, ok)
	assert.Equal(t, 90, days)

	_, ok = RangeAll.Days()
	assert.False(t, ok)
	assert.Equal(t, "All Time", RangeAll.Label())
}

func TestResolveDateRange(t *testing.T) {
	now := at(2025, time.July, 30, 14, 0)

	tests := []struct {
		key   RangeKey
		start time.Time
	}{
		{Range7D, at(2025, time.July, 23, 0, 0)},
		{Range1M, at(2025, time.June, 30, 0, 0)},
		{Range3M, at(2025, time.May, 1, 0, 0)},
		{Range6M, at(2025, time.January, 31, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			rng, err := ResolveDateRange(tt.key, now)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(rng.Start), "start %s", rng.Start)
			assert.True(t, EndOfDay(now).Equal(rng.End), "end %s", rng.End)
		})
	}

	t.Run("ALL starts on the epoch day", func(t *testing.T) {
		rng, err := ResolveDateRange(RangeAll, now)
		require.NoError(t, err)
		assert.True(t, rng.Contains(time.Unix(0, 0)))
		assert.True(t, rng.Start.Equal(StartOfDay(time.Unix(0, 0).In(testLoc))))
	})

	t.Run("unknown key fails", func(t *testing.T) {
		_, err := ResolveDateRange("2W", now)
		assert.True(t, errors.Is(err, domainerror.ErrUnknownRangeKey))
	})
}

func TestFilterByRange(t *testing.T) {
	now := at(2025, time.July, 30, 14, 0)
	account := uuid.New()
	rng, err := ResolveDateRange(Range1M, now)
	require.NoError(t, err)

	beforeStart := expense(account, at(2025, time.June, 29, 23, 59), "1", "Food")
	atStart := expense(account, at(2025, time.June, 30, 0, 0), "2", "Food")
	lateToday := income(account, time.Date(2025, time.July, 30, 23, 59, 59, 0, testLoc), "3")
	tomorrow := income(account, at(2025, time.July, 31, 0, 0), "4")
	undated := &entity.Transaction{ID: uuid.New(), Type: entity.TransactionTypeIncome}

	filtered, skipped := FilterByRange(
		[]*entity.Transaction{lateToday, beforeStart, nil, undated, atStart, tomorrow},
		rng,
	)

	assert.Equal(t, []*entity.Transaction{lateToday, atStart}, filtered)
	assert.Equal(t, SkipReport{MalformedDate: 1}, skipped)
}

func TestFilterByRange_AllExcludesOnlyOutOfWindowDates(t *testing.T) {
	now := at(2025, time.July, 30, 14, 0)
	account := uuid.New()
	rng, err := ResolveDateRange(RangeAll, now)
	require.NoError(t, err)

	epoch := income(account, time.Unix(0, 0), "1")
	recent := income(account, at(2025, time.July, 1, 9, 0), "1")
	future := income(account, at(2025, time.August, 2, 9, 0), "1")

	filtered, _ := FilterByRange([]*entity.Transaction{epoch, recent, future}, rng)
	assert.Equal(t, []*entity.Transaction{epoch, recent}, filtered)
}
