package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxgate/internal/currency"
	"fxgate/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCurrencyService struct{ mock.Mock }

func (m *MockCurrencyService) LatestRates(ctx context.Context, base string) (domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	snap, _ := args.Get(0).(domain.RateSnapshot)
	return snap, args.Error(1)
}

func (m *MockCurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

func (m *MockCurrencyService) HistoricalRates(ctx context.Context, base string, start, end time.Time, page, pageSize int) ([]domain.HistoricalRate, error) {
	args := m.Called(ctx, base, start, end, page, pageSize)
	rates, _ := args.Get(0).([]domain.HistoricalRate)
	return rates, args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

// --- GetLatestRates ---

func TestHandler_GetLatestRates_Success(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	snap := domain.RateSnapshot{
		Base:  "EUR",
		Rates: map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.1")},
	}
	mockService.On("LatestRates", mock.Anything, "EUR").Return(snap, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/latest?base=eur", nil)
	rr := httptest.NewRecorder()

	h.GetLatestRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var res LatestRatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "EUR", res.Base)
	require.True(t, res.Rates["USD"].Equal(decimal.RequireFromString("1.1")))
	mockService.AssertExpectations(t)
}

func TestHandler_GetLatestRates_MissingBase(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/latest", nil)
	rr := httptest.NewRecorder()

	h.GetLatestRates(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, currency.ErrCodeRequired.Error(), ej.Error)
	mockService.AssertNotCalled(t, "LatestRates", mock.Anything, mock.Anything)
}

func TestHandler_GetLatestRates_ServiceError(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	wantErr := &domain.UpstreamError{StatusCode: 502}
	mockService.On("LatestRates", mock.Anything, "EUR").Return(domain.RateSnapshot{}, wantErr).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/latest?base=EUR", nil)
	rr := httptest.NewRecorder()

	h.GetLatestRates(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertExpectations(t)
}

// --- ConvertCurrency ---

func TestHandler_ConvertCurrency_Success(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	amount := decimal.RequireFromString("100")
	converted := decimal.RequireFromString("85")
	mockService.On("Convert", mock.Anything, amount, "EUR", "GBP").Return(converted, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert?amount=100&from=eur&to=gbp", nil)
	rr := httptest.NewRecorder()

	h.ConvertCurrency(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "EUR", res.From)
	require.Equal(t, "GBP", res.To)
	require.True(t, res.ConvertedAmount.Equal(converted))
	mockService.AssertExpectations(t)
}

func TestHandler_ConvertCurrency_InvalidAmount(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert?amount=abc&from=EUR&to=GBP", nil)
	rr := httptest.NewRecorder()

	h.ConvertCurrency(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ConvertCurrency_PolicyViolation(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	amount := decimal.RequireFromString("100")
	mockService.On("Convert", mock.Anything, amount, "EUR", "TRY").
		Return(decimal.Decimal{}, &domain.PolicyViolationError{Currency: "TRY"}).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert?amount=100&from=EUR&to=TRY", nil)
	rr := httptest.NewRecorder()

	h.ConvertCurrency(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "currency conversion for TRY is not allowed", ej.Error)
}

func TestHandler_ConvertCurrency_TargetNotFound(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	amount := decimal.RequireFromString("100")
	mockService.On("Convert", mock.Anything, amount, "EUR", "JPY").
		Return(decimal.Decimal{}, &domain.NotFoundError{Currency: "JPY"}).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert?amount=100&from=EUR&to=JPY", nil)
	rr := httptest.NewRecorder()

	h.ConvertCurrency(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "currency JPY not found in rates", ej.Error)
}

func TestHandler_ConvertCurrency_InternalError(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	amount := decimal.RequireFromString("100")
	mockService.On("Convert", mock.Anything, amount, "EUR", "GBP").
		Return(decimal.Decimal{}, &domain.UpstreamError{StatusCode: 500}).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert?amount=100&from=EUR&to=GBP", nil)
	rr := httptest.NewRecorder()

	h.ConvertCurrency(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

// --- GetHistoricalRates ---

func TestHandler_GetHistoricalRates_DefaultsPagination(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	rates := []domain.HistoricalRate{
		{Date: start, Rates: map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.1")}},
	}
	mockService.On("HistoricalRates", mock.Anything, "EUR", start, end, 1, 10).Return(rates, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/history?base=EUR&start=2024-01-01&end=2024-01-10", nil)
	rr := httptest.NewRecorder()

	h.GetHistoricalRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var res HistoricalRatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "EUR", res.Base)
	require.Equal(t, "2024-01-01", res.StartDate)
	require.Equal(t, "2024-01-10", res.EndDate)
	require.Len(t, res.Rates, 1)
	require.Equal(t, "2024-01-01", res.Rates[0].Date)
	mockService.AssertExpectations(t)
}

func TestHandler_GetHistoricalRates_ExplicitPagination(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mockService.On("HistoricalRates", mock.Anything, "EUR", start, end, 2, 3).
		Return([]domain.HistoricalRate{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/history?base=EUR&start=2024-01-01&end=2024-01-10&page=2&page_size=3", nil)
	rr := httptest.NewRecorder()

	h.GetHistoricalRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_GetHistoricalRates_BadDates(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	cases := []struct {
		name  string
		query string
	}{
		{name: "bad start", query: "base=EUR&start=01/02/2024&end=2024-01-10"},
		{name: "bad end", query: "base=EUR&start=2024-01-01&end=notadate"},
		{name: "end before start", query: "base=EUR&start=2024-01-10&end=2024-01-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/history?"+tc.query, nil)
			rr := httptest.NewRecorder()

			h.GetHistoricalRates(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
	mockService.AssertNotCalled(t, "HistoricalRates",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetHistoricalRates_NonNumericPage(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/history?base=EUR&start=2024-01-01&end=2024-01-10&page=abc", nil)
	rr := httptest.NewRecorder()

	h.GetHistoricalRates(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "HistoricalRates",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetHistoricalRates_ServiceError(t *testing.T) {
	mockService := new(MockCurrencyService)
	h := NewCurrencyHandler(mockService)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mockService.On("HistoricalRates", mock.Anything, "EUR", start, end, 1, 10).
		Return(nil, &domain.UpstreamError{StatusCode: 503}).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/history?base=EUR&start=2024-01-01&end=2024-01-10", nil)
	rr := httptest.NewRecorder()

	h.GetHistoricalRates(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertExpectations(t)
}
