package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fxgate/internal/domain"

	"github.com/shopspring/decimal"
)

type CurrencyService interface {
	LatestRates(ctx context.Context, base string) (domain.RateSnapshot, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	HistoricalRates(ctx context.Context, base string, start, end time.Time, page, pageSize int) ([]domain.HistoricalRate, error)
}

type Handler struct {
	service CurrencyService
}

func NewCurrencyHandler(service CurrencyService) *Handler {
	return &Handler{service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
