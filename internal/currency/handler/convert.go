package handler

import (
	"errors"
	"net/http"
	"strings"

	"fxgate/internal/currency"
	"fxgate/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	From            string          `json:"from" example:"EUR"`
	To              string          `json:"to" example:"GBP"`
	Amount          decimal.Decimal `json:"amount" example:"100"`
	ConvertedAmount decimal.Decimal `json:"converted_amount" example:"85.00"`
}

// ConvertCurrency godoc
// @Summary Convert an amount between currencies
// @Description Convert an amount using the latest rates; some target currencies are disallowed by policy
// @Tags Currency
// @Produce json
// @Param amount query string true "Amount to convert" example(100)
// @Param from query string true "Source currency code" example(EUR)
// @Param to query string true "Target currency code" example(GBP)
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse "validation or policy failure"
// @Failure 404 {object} errorResponse "target currency not quoted"
// @Failure 500 {object} errorResponse
// @Router /currency/convert [get]
func (h *Handler) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := strings.ToUpper(strings.TrimSpace(q.Get("from")))
	to := strings.ToUpper(strings.TrimSpace(q.Get("to")))

	if err := currency.ValidateCode(from); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := currency.ValidateCode(to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(q.Get("amount")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	converted, err := h.service.Convert(r.Context(), amount, from, to)
	if err != nil {
		var policyErr *domain.PolicyViolationError
		var notFoundErr *domain.NotFoundError
		switch {
		case errors.As(err, &policyErr):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &notFoundErr):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			msg := "ups, couldn't convert currency this time"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "ConvertCurrency", "from": from, "to": to}).Error(msg)
			writeError(w, http.StatusInternalServerError, msg)
		}
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		From:            from,
		To:              to,
		Amount:          amount,
		ConvertedAmount: converted,
	})
}
