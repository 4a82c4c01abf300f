package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fxgate/internal/currency"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type HistoricalRateView struct {
	Date  string                     `json:"date" example:"2024-01-04"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type HistoricalRatesResponse struct {
	Base      string               `json:"base" example:"EUR"`
	StartDate string               `json:"start_date" example:"2024-01-01"`
	EndDate   string               `json:"end_date" example:"2024-01-10"`
	Rates     []HistoricalRateView `json:"rates"`
}

// GetHistoricalRates godoc
// @Summary Historical exchange rates
// @Description Retrieve a paginated window of per-day rates for a base currency
// @Tags Currency
// @Produce json
// @Param base query string true "Base currency code" example(EUR)
// @Param start query string true "Window start date" example(2024-01-01)
// @Param end query string true "Window end date" example(2024-01-10)
// @Param page query int false "Page number, starts at 1" example(1)
// @Param page_size query int false "Entries per page" example(10)
// @Success 200 {object} HistoricalRatesResponse
// @Failure 400 {object} errorResponse
// @Router /currency/history [get]
func (h *Handler) GetHistoricalRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base := strings.ToUpper(strings.TrimSpace(q.Get("base")))
	if err := currency.ValidateCode(base); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, err := time.Parse(dateLayout, q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end date must not precede start date")
		return
	}

	page, err := queryInt(q, "page", currency.DefaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	pageSize, err := queryInt(q, "page_size", currency.DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page size")
		return
	}

	rates, err := h.service.HistoricalRates(r.Context(), base, start, end, page, pageSize)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistoricalRates", "base": base}).Error("failed to get historical rates")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views := make([]HistoricalRateView, 0, len(rates))
	for _, hr := range rates {
		views = append(views, HistoricalRateView{Date: hr.Date.Format(dateLayout), Rates: hr.Rates})
	}

	writeJSON(w, http.StatusOK, HistoricalRatesResponse{
		Base:      base,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Rates:     views,
	})
}

func queryInt(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
