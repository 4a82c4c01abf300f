package handler

import (
	"net/http"
	"strings"

	"fxgate/internal/currency"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type LatestRatesResponse struct {
	Base  string                     `json:"base" example:"EUR"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// GetLatestRates godoc
// @Summary Latest exchange rates
// @Description Retrieve the latest exchange rates for a base currency
// @Tags Currency
// @Produce json
// @Param base query string true "Base currency code" example(EUR)
// @Success 200 {object} LatestRatesResponse
// @Failure 400 {object} errorResponse
// @Router /currency/latest [get]
func (h *Handler) GetLatestRates(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("base")))
	if err := currency.ValidateCode(base); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.service.LatestRates(r.Context(), base)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetLatestRates", "base": base}).Error("failed to get latest rates")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, LatestRatesResponse{
		Base:  snap.Base,
		Rates: snap.Rates,
	})
}
