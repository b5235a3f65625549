package dashboard

import (
	"strings"
	"time"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// RangeKey selects a relative time window ending today.
type RangeKey string

const (
	Range7D  RangeKey = "7D"
	Range1M  RangeKey = "1M"
	Range3M  RangeKey = "3M"
	Range6M  RangeKey = "6M"
	RangeAll RangeKey = "ALL"
)

type rangeSpec struct {
	label string
	days  int // 0 means unbounded
}

var rangeSpecs = map[RangeKey]rangeSpec{
	Range7D:  {label: "Last 7 Days", days: 7},
	Range1M:  {label: "Last Month", days: 30},
	Range3M:  {label: "Last 3 Months", days: 90},
	Range6M:  {label: "Last 6 Months", days: 180},
	RangeAll: {label: "All Time"},
}

var rangeOrder = []RangeKey{Range7D, Range1M, Range3M, Range6M, RangeAll}

// RangeKeys returns the supported range keys in display order.
func RangeKeys() []RangeKey {
	keys := make([]RangeKey, len(rangeOrder))
	copy(keys, rangeOrder)
	return keys
}

// IsValid reports whether k is one of the supported range keys.
func (k RangeKey) IsValid() bool {
	_, ok := rangeSpecs[k]
	return ok
}

// Label returns the human-readable name of the range.
func (k RangeKey) Label() string {
	return rangeSpecs[k].label
}

// Days returns the number of days covered by the range. The boolean is false
// for ALL and for unknown keys.
func (k RangeKey) Days() (int, bool) {
	spec, ok := rangeSpecs[k]
	if !ok || spec.days == 0 {
		return 0, false
	}
	return spec.days, true
}

// ParseRangeKey validates a raw range key. Keys are matched exactly.
func ParseRangeKey(raw string) (RangeKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domainerror.NewDashboardError(
			domainerror.ErrCodeMissingRangeKey,
			"range is required",
			domainerror.ErrMissingRangeKey,
		)
	}

	key := RangeKey(raw)
	if !key.IsValid() {
		return "", unknownRangeKeyError(raw)
	}
	return key, nil
}

func unknownRangeKeyError(raw string) error {
	return domainerror.NewDashboardError(
		domainerror.ErrCodeUnknownRangeKey,
		"unknown range \""+raw+"\"",
		domainerror.ErrUnknownRangeKey,
	)
}

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ResolveDateRange computes the window selected by key relative to now.
// Day boundaries are taken in now's location.
func ResolveDateRange(key RangeKey, now time.Time) (DateRange, error) {
	spec, ok := rangeSpecs[key]
	if !ok {
		return DateRange{}, unknownRangeKeyError(string(key))
	}

	var start time.Time
	if spec.days > 0 {
		start = StartOfDay(now.AddDate(0, 0, -spec.days))
	} else {
		start = StartOfDay(time.Unix(0, 0).In(now.Location()))
	}

	return DateRange{
		Start: start,
		End:   EndOfDay(now),
	}, nil
}

// FilterByRange keeps the transactions dated within rng, preserving input order.
// Transactions without a usable date are dropped and counted.
func FilterByRange(transactions []*entity.Transaction, rng DateRange) ([]*entity.Transaction, SkipReport) {
	var skipped SkipReport
	filtered := make([]*entity.Transaction, 0, len(transactions))

	for _, tx := range transactions {
		if tx == nil {
			continue
		}
		if !tx.HasValidDate() {
			skipped.MalformedDate++
			continue
		}
		if rng.Contains(tx.Date) {
			filtered = append(filtered, tx)
		}
	}

	return filtered, skipped
}
