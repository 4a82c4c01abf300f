package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Upstream struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Cache struct {
	MaxEntries int64 `mapstructure:"max_entries"`
}

type Policy struct {
	ExcludedCurrencies []string `mapstructure:"excluded_currencies"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Logging    Logging    `mapstructure:"logging"`
	Upstream   Upstream   `mapstructure:"upstream"`
	Cache      Cache      `mapstructure:"cache"`
	Policy     Policy     `mapstructure:"policy"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional, config.yaml and env vars are the source of truth
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("upstream.base_url", "https://api.frankfurter.app")
	viper.SetDefault("upstream.timeout_seconds", 10)
	viper.SetDefault("cache.max_entries", 1024)
	viper.SetDefault("policy.excluded_currencies", []string{"TRY", "PLN", "THB", "MXN"})

	_ = viper.BindEnv("http_server.port", "HTTP_PORT")
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")
	_ = viper.BindEnv("upstream.base_url", "UPSTREAM_BASE_URL")
	_ = viper.BindEnv("upstream.timeout_seconds", "UPSTREAM_TIMEOUT_SECONDS")
	_ = viper.BindEnv("cache.max_entries", "CACHE_MAX_ENTRIES")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
