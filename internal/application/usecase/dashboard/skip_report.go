package dashboard

import (
	"errors"

	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// SkipReport counts records left out of an aggregation because they were
// malformed. Skipped records never abort the computation.
type SkipReport struct {
	InvalidType   int `json:"invalid_type"`
	MalformedDate int `json:"malformed_date"`
}

// Total returns the number of skipped records.
func (s SkipReport) Total() int {
	return s.InvalidType + s.MalformedDate
}

// Add returns the sum of two reports.
func (s SkipReport) Add(other SkipReport) SkipReport {
	return SkipReport{
		InvalidType:   s.InvalidType + other.InvalidType,
		MalformedDate: s.MalformedDate + other.MalformedDate,
	}
}

// record counts a validation failure. It reports false for errors that are
// not skip reasons.
func (s *SkipReport) record(err error) bool {
	switch {
	case errors.Is(err, domainerror.ErrMalformedTransactionDate):
		s.MalformedDate++
	case errors.Is(err, domainerror.ErrInvalidTransactionType):
		s.InvalidType++
	default:
		return false
	}
	return true
}
