// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SummaryCache stores computed dashboard views keyed by their full input tuple.
type SummaryCache interface {
	// Get loads the value stored under key into dest. It returns false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
