package dashboard

import (
	"context"
	"time"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// PreviewTimeSeriesInput carries an in-memory transaction collection.
type PreviewTimeSeriesInput struct {
	RangeKey     RangeKey
	Now          *time.Time // Optional reference instant
	Transactions []*entity.Transaction
}

// PreviewTimeSeriesUseCase runs the time-series pipeline over a supplied
// collection without touching persistence.
type PreviewTimeSeriesUseCase struct {
	opts Options
}

// NewPreviewTimeSeriesUseCase creates a new PreviewTimeSeriesUseCase instance.
func NewPreviewTimeSeriesUseCase(opts Options) *PreviewTimeSeriesUseCase {
	return &PreviewTimeSeriesUseCase{opts: opts.withDefaults()}
}

// Execute aggregates the supplied transactions.
func (uc *PreviewTimeSeriesUseCase) Execute(
	_ context.Context,
	input PreviewTimeSeriesInput,
) (*TimeSeriesView, error) {
	now := uc.opts.now()
	if input.Now != nil {
		now = input.Now.In(uc.opts.Location)
	}
	return buildTimeSeriesView(input.Transactions, input.RangeKey, now)
}

func buildTimeSeriesView(transactions []*entity.Transaction, key RangeKey, now time.Time) (*TimeSeriesView, error) {
	series, rng, err := BuildTimeSeries(transactions, key, now)
	if err != nil {
		return nil, err
	}

	return &TimeSeriesView{
		RangeKey: key,
		Period:   rng,
		Series:   series.Buckets,
		Totals:   series.Totals,
		Skipped:  series.Skipped,
	}, nil
}
