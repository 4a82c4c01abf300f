package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"fxgate/internal/domain"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

const (
	maxRetries       = 3
	defaultRetryBase = 2 * time.Second
	dateLayout       = "2006-01-02"
)

// Client calls the Frankfurter exchange rate API. Non-2xx responses are
// retried up to maxRetries times with exponential backoff (2s, 4s, 8s after
// the first, second and third try); transport and payload errors fail
// immediately.
type Client struct {
	http      *http.Client
	baseURL   string
	retryBase time.Duration
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		retryBase: defaultRetryBase,
	}
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type rangeResponse struct {
	Base      string                                `json:"base"`
	StartDate string                                `json:"start_date"`
	EndDate   string                                `json:"end_date"`
	Rates     map[string]map[string]decimal.Decimal `json:"rates"`
}

// FetchLatest returns the latest rates relative to base.
func (c *Client) FetchLatest(ctx context.Context, base string) (domain.RateSnapshot, error) {
	endpoint := fmt.Sprintf("%s/latest?from=%s", c.baseURL, url.QueryEscape(base))

	var body latestResponse
	if err := c.getJSON(ctx, endpoint, base, &body); err != nil {
		return domain.RateSnapshot{}, err
	}
	if body.Rates == nil {
		return domain.RateSnapshot{}, &domain.ParseError{
			Reason: fmt.Sprintf("missing rates field in latest response for currency %q", base),
		}
	}

	return domain.RateSnapshot{Base: base, Rates: body.Rates, FetchedAt: time.Now()}, nil
}

// FetchRange returns per-day rates for the inclusive start..end window,
// ascending by date.
func (c *Client) FetchRange(ctx context.Context, base string, start, end time.Time) ([]domain.DailyRates, error) {
	endpoint := fmt.Sprintf("%s/%s..%s?from=%s",
		c.baseURL, start.Format(dateLayout), end.Format(dateLayout), url.QueryEscape(base))

	var body rangeResponse
	if err := c.getJSON(ctx, endpoint, base, &body); err != nil {
		return nil, err
	}
	if body.Rates == nil {
		return nil, &domain.ParseError{
			Reason: fmt.Sprintf("missing rates field in range response for currency %q", base),
		}
	}

	// rates come back as a JSON object, restore ascending date order
	dates := slices.Collect(maps.Keys(body.Rates))
	slices.Sort(dates)

	series := make([]domain.DailyRates, 0, len(dates))
	for _, d := range dates {
		series = append(series, domain.DailyRates{Date: d, Rates: body.Rates[d]})
	}
	return series, nil
}

// getJSON performs one logical GET under the retry policy and decodes a 2xx
// body into out. Backoff sleeps abort when ctx is canceled.
func (c *Client) getJSON(ctx context.Context, endpoint, base string, out any) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(c.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request for currency %q: %w", base, err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return &domain.UpstreamError{Err: fmt.Errorf("request for currency %q: %w", base, err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return retry.RetryableError(&domain.UpstreamError{StatusCode: resp.StatusCode})
		}

		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.ParseError{
				Reason: fmt.Sprintf("failed to decode response for currency %q", base),
				Err:    err,
			}
		}
		return nil
	})
}
