package currency

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fxgate/internal/adapters"
	"fxgate/internal/domain"
	"fxgate/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	snapshotTTL = 30 * time.Minute
	dateLayout  = "2006-01-02"

	DefaultPage     = 1
	DefaultPageSize = 10
)

// Service owns the rate business rules: cached latest-rate lookups,
// conversion under the exclusion policy and paginated historical windows.
//
// The exclusion policy checks only the conversion target; source currencies
// pass through unchecked.
type Service struct {
	cache    adapters.SnapshotCache
	provider adapters.RateProvider
	excluded domain.ExclusionSet
	metrics  *metrics.Metrics
}

func NewService(cache adapters.SnapshotCache, provider adapters.RateProvider, excluded domain.ExclusionSet, m *metrics.Metrics) *Service {
	return &Service{cache: cache, provider: provider, excluded: excluded, metrics: m}
}

// LatestRates returns the most recent rates for base, serving from cache
// while the 30 minute TTL holds. Concurrent misses for the same base may
// each hit the provider; last write wins.
func (s *Service) LatestRates(ctx context.Context, base string) (domain.RateSnapshot, error) {
	base = normalizeCode(base)

	if snap, ok := s.cache.Get(base); ok {
		s.metrics.CacheHitsTotal.Inc()
		return snap, nil
	}
	s.metrics.CacheMissesTotal.Inc()

	fetchID := uuid.NewString()
	logrus.WithFields(logrus.Fields{"fetch_id": fetchID, "base": base}).Info("Cache miss, fetching latest rates")

	snap, err := s.provider.FetchLatest(ctx, base)
	if err != nil {
		s.metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		logrus.WithError(err).WithFields(logrus.Fields{"fetch_id": fetchID, "base": base}).Error("Latest rates fetch failed")
		return domain.RateSnapshot{}, err
	}
	s.metrics.UpstreamRequestsTotal.WithLabelValues("success").Inc()

	s.cache.Set(base, snap, snapshotTTL)
	return snap, nil
}

// Convert converts amount from one currency to another using the latest
// rates for the source currency. The product is exact decimal arithmetic,
// no rounding applied.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	to = normalizeCode(to)
	if s.excluded.Contains(to) {
		return decimal.Decimal{}, &domain.PolicyViolationError{Currency: to}
	}

	snap, err := s.LatestRates(ctx, from)
	if err != nil {
		return decimal.Decimal{}, err
	}

	rate, ok := snap.Rates[to]
	if !ok {
		return decimal.Decimal{}, &domain.NotFoundError{Currency: to}
	}

	s.metrics.ConversionsTotal.Inc()
	return amount.Mul(rate), nil
}

// HistoricalRates returns one page of per-day rates for the inclusive date
// window, ascending by date. The range is fetched fresh on every call;
// historical windows are not cached. A page past the end of the series
// yields an empty result.
func (s *Service) HistoricalRates(ctx context.Context, base string, start, end time.Time, page, pageSize int) ([]domain.HistoricalRate, error) {
	if page < 1 {
		return nil, &domain.ValidationError{Reason: fmt.Sprintf("page must be >= 1, got %d", page)}
	}
	if pageSize < 1 {
		return nil, &domain.ValidationError{Reason: fmt.Sprintf("page size must be >= 1, got %d", pageSize)}
	}
	base = normalizeCode(base)
	s.metrics.HistoricalRequestsTotal.Inc()

	series, err := s.provider.FetchRange(ctx, base, start, end)
	if err != nil {
		s.metrics.UpstreamRequestsTotal.WithLabelValues("error").Inc()
		logrus.WithError(err).WithFields(logrus.Fields{"base": base}).Error("Historical rates fetch failed")
		return nil, err
	}
	s.metrics.UpstreamRequestsTotal.WithLabelValues("success").Inc()

	rates := make([]domain.HistoricalRate, 0, len(series))
	for _, day := range series {
		date, parseErr := time.Parse(dateLayout, day.Date)
		if parseErr != nil {
			return nil, &domain.ParseError{
				Reason: fmt.Sprintf("invalid date %q in historical response", day.Date),
				Err:    parseErr,
			}
		}
		rates = append(rates, domain.HistoricalRate{Date: date, Rates: day.Rates})
	}

	return paginate(rates, page, pageSize), nil
}

func paginate(rates []domain.HistoricalRate, page, pageSize int) []domain.HistoricalRate {
	offset := (page - 1) * pageSize
	if offset >= len(rates) {
		return []domain.HistoricalRate{}
	}
	end := offset + pageSize
	if end > len(rates) {
		end = len(rates)
	}
	return rates[offset:end]
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
