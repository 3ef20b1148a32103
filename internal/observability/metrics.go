package observability

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Metrics endpoint request rate, by route template.
	HTTPRequestsTotal *prometheus.CounterVec

	// Metrics endpoint latency.
	HTTPRequestDuration *prometheus.HistogramVec

	// OpenWeatherMap API call rate. Watch for: error vs success ratio.
	WeatherAPICallsTotal *prometheus.CounterVec

	// External API latency per request. There is no client timeout by default,
	// so a long tail here means users sitting at a frozen prompt.
	WeatherAPIDuration *prometheus.HistogramVec

	// Total weather lookups started from the prompt.
	WeatherQueriesTotal prometheus.Counter

	// Lookups by country code. Anything that is not a two-letter code goes to "other".
	WeatherQueriesByCountryTotal *prometheus.CounterVec

	// Failed lookups by error category.
	WeatherLookupErrorsTotal *prometheus.CounterVec

	// Rendered summaries by condition bucket and temperature band.
	SummariesRenderedTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests to the metrics endpoint",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "Metrics endpoint latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of OpenWeatherMap API calls",
		},
		[]string{"status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "OpenWeatherMap API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)
	WeatherQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "weatherQueriesTotal",
			Help: "Total number of weather lookups",
		},
	)
	WeatherQueriesByCountryTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherQueriesByCountryTotal",
			Help: "Weather lookups by country code (non two-letter input uses country=other)",
		},
		[]string{"country"},
	)
	WeatherLookupErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherLookupErrorsTotal",
			Help: "Failed weather lookups by error category",
		},
		[]string{"category"},
	)
	SummariesRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summariesRenderedTotal",
			Help: "Weather summaries printed, by condition bucket and temperature band",
		},
		[]string{"bucket", "band"},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration,
		WeatherAPICallsTotal, WeatherAPIDuration,
		WeatherQueriesTotal, WeatherQueriesByCountryTotal,
		WeatherLookupErrorsTotal, SummariesRenderedTotal,
	)
}

// RecordWeatherQuery records a lookup for the given country code.
func RecordWeatherQuery(countryCode string) {
	WeatherQueriesTotal.Inc()
	WeatherQueriesByCountryTotal.WithLabelValues(MetricCountryLabel(countryCode)).Inc()
}

// MetricCountryLabel returns the upper-cased code when it is two ASCII
// letters, else "other". Input is free text, so this bounds label cardinality.
func MetricCountryLabel(countryCode string) string {
	s := strings.ToUpper(strings.TrimSpace(countryCode))
	if len(s) != 2 {
		return "other"
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "other"
		}
	}
	return s
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
