package adapters

import (
	"context"
	"time"

	"fxgate/internal/domain"
)

type RateProvider interface {
	FetchLatest(ctx context.Context, base string) (domain.RateSnapshot, error)
	FetchRange(ctx context.Context, base string, start, end time.Time) ([]domain.DailyRates, error)
}

type SnapshotCache interface {
	Get(base string) (domain.RateSnapshot, bool)
	Set(base string, snapshot domain.RateSnapshot, ttl time.Duration)
}
