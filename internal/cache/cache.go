package cache

import (
	"context"
	"time"
)

// StatsCache fronts the short-lived dashboard payloads (POS live stats) so
// polling clients do not hammer the ledger.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// NoopStatsCache is used when no Redis address is configured.
type NoopStatsCache struct{}

func (NoopStatsCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}

func (NoopStatsCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (NoopStatsCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
