package api

import (
	_ "fxgate/docs"
	"fxgate/internal/currency/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(currencyHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/api/v1/currency/latest", currencyHandler.GetLatestRates)
	router.Get("/api/v1/currency/convert", currencyHandler.ConvertCurrency)
	router.Get("/api/v1/currency/history", currencyHandler.GetHistoricalRates)
	return router
}
