package main

import (
	"os"

	"fxgate/internal/app"

	"github.com/sirupsen/logrus"
)

// @title fxgate API
// @version 1.0
// @description HTTP facade over an exchange rate provider: latest rates, currency conversion and paginated historical windows.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
