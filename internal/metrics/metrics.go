// Package metrics defines Prometheus instrumentation for external fetches.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds counters and histograms for the external data fetch paths.
type Metrics struct {
	// Rate provider attempts by provider name and outcome (success/failure)
	RateProviderRequestsTotal *prometheus.CounterVec

	// Structured profile requests against the generative model by outcome
	ProfileRequestsTotal *prometheus.CounterVec

	// Wall time of each external fetch stage (profile, rates, index, geocode)
	ExternalFetchDuration *prometheus.HistogramVec
}

// New registers all metrics on the given registerer and returns the set.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_provider_requests_total",
				Help: "Rate provider fetch attempts by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		ProfileRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profile_requests_total",
				Help: "Country profile requests against the generative model by outcome",
			},
			[]string{"outcome"},
		),
		ExternalFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_fetch_duration_seconds",
				Help:    "Duration of external fetch stages",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}
