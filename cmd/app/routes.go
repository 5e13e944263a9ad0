package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"countryfinance/internal/api"
	"countryfinance/internal/api/middleware"
	"countryfinance/internal/service"
)

func (app *App) initHTTP(financeService service.CountryFinanceServiceInterface) {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/countries/{country}/finance", api.HandleGetCountryFinance(financeService))
		r.Get("/rates/{code}", api.HandleGetRates(financeService))
		r.Get("/indices/{symbol}", api.HandleGetIndexValue(financeService))
		r.Get("/geocode", api.HandleGeocode(financeService))
	})

	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(app.rdbCache))
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// A report fans out to several sequential upstream calls; give the
		// whole chain room before cutting the response off.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
