// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Known rate provider names, usable in providers.order.
const (
	ProviderExchangeRateHost = "exchangerate_host"
	ProviderOpenERAPI        = "open_er_api"
	ProviderFrankfurter      = "frankfurter"
)

// Config holds the complete application configuration.
type Config struct {
	Server           ServerConfig
	Redis            RedisConfig
	Gemini           GeminiConfig
	Geocoder         GeocoderConfig
	MarketData       MarketDataConfig   `mapstructure:"marketdata"`
	Providers        ProvidersConfig
	ExchangeRateHost RateProviderConfig `mapstructure:"exchangerate_host"`
	OpenERAPI        RateProviderConfig `mapstructure:"open_er_api"`
	Frankfurter      RateProviderConfig `mapstructure:"frankfurter"`
	Cache            CacheConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int  `mapstructure:"port"`
	ServeSwagger bool `mapstructure:"serve_swagger"`
}

// RedisConfig holds the optional cache Redis connection settings.
// An empty CacheAddr disables provider response caching.
type RedisConfig struct {
	CacheAddr string `mapstructure:"cache_addr"`
}

// GeminiConfig holds settings for the generative model used to
// retrieve structured country finance metadata.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	TimeoutSec  int     `mapstructure:"timeout_sec"`
}

// GeocoderConfig holds settings for the Google geocoding service.
// An empty APIKey disables geocoding; lookups then resolve to "not found".
type GeocoderConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// MarketDataConfig holds settings for the market index quote provider.
type MarketDataConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// ProvidersConfig controls the rate provider fallback chain.
type ProvidersConfig struct {
	// Order is the priority order in which rate providers are tried.
	Order []string `mapstructure:"order"`
}

// RateProviderConfig holds per-provider HTTP settings.
type RateProviderConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	ProviderRateTTLSec int `mapstructure:"provider_rate_ttl_sec"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Config search paths
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("./internal/config")

	viper.SetEnvPrefix("COUNTRYFIN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.serve_swagger", true)
	viper.SetDefault("redis.cache_addr", "")
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.temperature", 0.2)
	viper.SetDefault("gemini.timeout_sec", 30)
	viper.SetDefault("geocoder.base_url", "https://maps.googleapis.com/maps/api/geocode")
	viper.SetDefault("geocoder.api_key", "")
	viper.SetDefault("geocoder.timeout_sec", 5)
	viper.SetDefault("marketdata.base_url", "https://query1.finance.yahoo.com")
	viper.SetDefault("marketdata.timeout_sec", 10)
	viper.SetDefault("providers.order", []string{
		ProviderExchangeRateHost, ProviderOpenERAPI, ProviderFrankfurter,
	})
	viper.SetDefault("exchangerate_host.base_url", "https://api.exchangerate.host")
	viper.SetDefault("exchangerate_host.timeout_sec", 10)
	viper.SetDefault("open_er_api.base_url", "https://open.er-api.com")
	viper.SetDefault("open_er_api.timeout_sec", 10)
	viper.SetDefault("frankfurter.base_url", "https://api.frankfurter.app")
	viper.SetDefault("frankfurter.timeout_sec", 10)
	viper.SetDefault("cache.provider_rate_ttl_sec", 300)

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	if c.Gemini.APIKey == "" {
		errs = append(errs, fmt.Errorf("gemini.api_key is required (set COUNTRYFIN_GEMINI_API_KEY)"))
	}
	if c.Gemini.Model == "" {
		errs = append(errs, fmt.Errorf("gemini.model is required"))
	}
	if c.Gemini.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("gemini.timeout_sec must be positive, got %d", c.Gemini.TimeoutSec))
	}

	if len(c.Providers.Order) == 0 {
		errs = append(errs, fmt.Errorf("providers.order must name at least one rate provider"))
	}
	for _, name := range c.Providers.Order {
		switch name {
		case ProviderExchangeRateHost, ProviderOpenERAPI, ProviderFrankfurter:
		default:
			errs = append(errs, fmt.Errorf("providers.order: unknown provider %q", name))
		}
	}

	if c.MarketData.BaseURL == "" {
		errs = append(errs, fmt.Errorf("marketdata.base_url is required"))
	}

	if c.Redis.CacheAddr != "" && c.Cache.ProviderRateTTLSec <= 0 {
		errs = append(errs, fmt.Errorf("cache.provider_rate_ttl_sec must be positive when redis.cache_addr is set, got %d", c.Cache.ProviderRateTTLSec))
	}

	return errors.Join(errs...)
}
