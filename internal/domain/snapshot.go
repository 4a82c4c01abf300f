package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is an immutable set of exchange rates relative to Base,
// captured at FetchedAt. Snapshots are replaced wholesale on refresh, never
// mutated in place.
type RateSnapshot struct {
	Base      string
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
}

// DailyRates is a single row of a provider date-range response. Date carries
// the raw provider string; parsing it is up to the service layer.
type DailyRates struct {
	Date  string
	Rates map[string]decimal.Decimal
}

// HistoricalRate is one day of a historical window with the date parsed.
type HistoricalRate struct {
	Date  time.Time
	Rates map[string]decimal.Decimal
}
