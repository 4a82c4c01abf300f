package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxgate/internal/adapters/cache"
	"fxgate/internal/adapters/frankfurter"
	"fxgate/internal/api"
	"fxgate/internal/config"
	"fxgate/internal/currency"
	"fxgate/internal/currency/handler"
	"fxgate/internal/domain"
	"fxgate/internal/metrics"
	httpserver "fxgate/internal/platform/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Run wires the application components and starts the HTTP server
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Snapshot cache
	snapshotCache, err := cache.NewSnapshotCache(appCfg.Cache.MaxEntries)
	if err != nil {
		logrus.WithError(err).Error("Failed to create snapshot cache")
		return err
	}
	defer snapshotCache.Close()
	logrus.Info("✅ Snapshot cache created")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.Upstream.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Upstream provider client
	upstreamBaseURL := strings.TrimSuffix(appCfg.Upstream.BaseURL, "/")
	if upstreamBaseURL == "" {
		return fmt.Errorf("upstream base url is required")
	}
	rateProvider := frankfurter.NewClient(baseHTTPClient, upstreamBaseURL)

	// Services
	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	excluded := domain.NewExclusionSet(appCfg.Policy.ExcludedCurrencies)
	currencyService := currency.NewService(snapshotCache, rateProvider, excluded, appMetrics)
	logrus.Infof("✅ Conversion exclusion policy loaded (%d currencies)", len(excluded))

	// Handlers and router
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	router := api.NewRouter(currencyHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
