package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	ConversionsTotal        prometheus.Counter
	HistoricalRequestsTotal prometheus.Counter

	UpstreamRequestsTotal *prometheus.CounterVec
}

// New registers the service counters on reg. Tests pass a fresh registry to
// avoid duplicate registration on the default one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rate_cache_hits_total",
			Help: "Total number of snapshot cache hits",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "rate_cache_misses_total",
			Help: "Total number of snapshot cache misses",
		}),
		ConversionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "conversions_total",
			Help: "Total number of successful currency conversions",
		}),
		HistoricalRequestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "historical_requests_total",
			Help: "Total number of historical rate requests",
		}),
		UpstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream provider fetches by outcome",
		}, []string{"outcome"}),
	}
}
