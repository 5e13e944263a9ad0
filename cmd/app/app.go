// Package main is the entry point for the country finance service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"countryfinance/internal/config"
	"countryfinance/internal/geocoder"
	"countryfinance/internal/marketdata"
	"countryfinance/internal/metrics"
	"countryfinance/internal/profile"
	"countryfinance/internal/provider"
	"countryfinance/internal/service"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	rdbCache   *redis.Client
	registry   *prometheus.Registry
	httpServer *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initCache(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	return app, nil
}

// close releases the Redis connection
func (app *App) close() error {
	if app.rdbCache != nil {
		if err := app.rdbCache.Close(); err != nil {
			return fmt.Errorf("redis cache close: %w", err)
		}
	}
	return nil
}

// initCache connects to the optional cache Redis. No address means provider
// responses are simply not cached.
func (app *App) initCache() error {
	if app.cfg.Redis.CacheAddr == "" {
		app.logger.Infow("Provider response caching disabled (no redis.cache_addr)")
		return nil
	}

	app.rdbCache = redis.NewClient(&redis.Options{
		Addr: app.cfg.Redis.CacheAddr,
	})
	if err := app.rdbCache.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("connect to Redis (cache, %s): %w", app.cfg.Redis.CacheAddr, err)
	}
	app.logger.Infow("Connected to Redis cache", "addr", app.cfg.Redis.CacheAddr)

	return nil
}

func (app *App) initServices() error {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(app.registry)

	gemini, err := profile.NewGeminiGenerator(context.Background(), app.cfg.Gemini)
	if err != nil {
		return fmt.Errorf("init gemini generator: %w", err)
	}
	profiles := profile.NewRequester(gemini, app.logger)

	rates, err := app.newRatesChain(m)
	if err != nil {
		return err
	}

	indices := marketdata.NewYahooChartClient(app.cfg.MarketData.BaseURL, app.cfg.MarketData.TimeoutSec, app.logger)
	geo := app.newGeocoder()

	financeService := service.NewCountryFinanceService(profiles, rates, indices, geo, app.logger, m)

	app.initHTTP(financeService)
	return nil
}

// newRatesChain builds the rate provider fallback chain in the configured
// priority order, wrapping each provider with the Redis cache when available.
func (app *App) newRatesChain(m *metrics.Metrics) (*provider.FallbackChain, error) {
	ttl := time.Duration(app.cfg.Cache.ProviderRateTTLSec) * time.Second

	providers := make([]provider.RatesProvider, 0, len(app.cfg.Providers.Order))
	for _, name := range app.cfg.Providers.Order {
		var p provider.RatesProvider
		switch name {
		case config.ProviderExchangeRateHost:
			p = provider.NewExchangeRateHostProvider(app.cfg.ExchangeRateHost.BaseURL, app.cfg.ExchangeRateHost.TimeoutSec)
		case config.ProviderOpenERAPI:
			p = provider.NewOpenERAPIProvider(app.cfg.OpenERAPI.BaseURL, app.cfg.OpenERAPI.TimeoutSec)
		case config.ProviderFrankfurter:
			p = provider.NewFrankfurterProvider(app.cfg.Frankfurter.BaseURL, app.cfg.Frankfurter.TimeoutSec)
		default:
			return nil, fmt.Errorf("unknown rate provider %q in providers.order", name)
		}

		if app.rdbCache != nil {
			p = provider.NewCachedRatesProvider(p, app.rdbCache, ttl)
		}
		providers = append(providers, p)
	}

	app.logger.Infow("Rate provider chain configured", "order", app.cfg.Providers.Order)
	return provider.NewFallbackChain(app.logger, m, providers...), nil
}

func (app *App) newGeocoder() geocoder.Geocoder {
	if app.cfg.Geocoder.APIKey == "" {
		app.logger.Infow("Geocoding disabled (no geocoder.api_key)")
		return geocoder.Disabled{}
	}
	return geocoder.NewGoogleGeocoder(app.cfg.Geocoder.BaseURL, app.cfg.Geocoder.APIKey, app.cfg.Geocoder.TimeoutSec)
}

// Run starts the HTTP server, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or component failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown performs ordered teardown: HTTP server first, then connections.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 1. Stop accepting new HTTP requests, drain in-flight
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	// 2. Close the Redis connection
	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
